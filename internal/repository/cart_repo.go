package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
)

var cartUserFields = FieldMap{
	"userId":   "u.id",
	"username": "u.username",
	"email":    "u.email",
}

// CartRepository reads and mutates cart lines. Queries always join back to
// products so the admin tables get denormalized line items in one round trip.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// SearchUsersWithCarts pages over users that have at least one cart line and
// hydrates each with its items.
func (r *CartRepository) SearchUsersWithCarts(ctx context.Context, q tabular.Query) ([]model.AdminUserCartData, int, error) {
	where, args := whereClause(q, cartUserFields, 1)
	cond := "EXISTS (SELECT 1 FROM cart_items ci WHERE ci.user_id = u.id)"
	if where != "" {
		cond += " AND " + strings.TrimPrefix(where, "WHERE ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users u WHERE %s`, cond)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cart users: %w", err)
	}

	limit, offset := clampPaging(q)
	dataQuery := fmt.Sprintf(
		`SELECT u.id, u.username, u.email FROM users u WHERE %s %s LIMIT $%d OFFSET $%d`,
		cond, orderClause(q, cartUserFields, "u.username ASC"), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search cart users: %w", err)
	}
	defer rows.Close()

	var users []model.AdminUserCartData
	for rows.Next() {
		var u model.AdminUserCartData
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email); err != nil {
			return nil, 0, fmt.Errorf("scan cart user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate cart users: %w", err)
	}

	for i := range users {
		items, err := r.ItemsForUser(ctx, users[i].UserID)
		if err != nil {
			return nil, 0, err
		}
		users[i].Cart = items
		for _, it := range items {
			users[i].CartTotalValue += it.Subtotal()
		}
	}
	return users, total, nil
}

// ItemsForUser returns the cart lines of one user, newest first.
func (r *CartRepository) ItemsForUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ci.product_id, p.name, p.price, p.stock_quantity, ci.quantity, ci.added_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.user_id = $1
		 ORDER BY ci.added_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.ProductPrice,
			&it.ProductStockQuantity, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddItem inserts a cart line or bumps the quantity when the product is
// already in the cart.
func (r *CartRepository) AddItem(ctx context.Context, userID string, in model.CartItemInput) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, in.ProductID, in.Quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

// SwapProduct replaces the product of an existing line in one transaction,
// used when an edit changes the selected product rather than the quantity.
func (r *CartRepository) SwapProduct(ctx context.Context, userID, oldProductID, newProductID string, quantity int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin swap: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, oldProductID)
	if err != nil {
		return fmt.Errorf("swap delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = EXCLUDED.quantity`,
		userID, newProductID, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("swap insert: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// UserWithCart loads a single user's cart record, for refresh after a
// child-row mutation.
func (r *CartRepository) UserWithCart(ctx context.Context, userID string) (*model.AdminUserCartData, error) {
	var u model.AdminUserCartData
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, userID).
		Scan(&u.UserID, &u.Username, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart user: %w", err)
	}

	items, err := r.ItemsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Cart = items
	for _, it := range items {
		u.CartTotalValue += it.Subtotal()
	}
	return &u, nil
}
