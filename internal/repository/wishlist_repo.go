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

var wishlistUserFields = FieldMap{
	"userId":   "u.id",
	"username": "u.username",
	"email":    "u.email",
}

type WishlistRepository struct {
	pool *pgxpool.Pool
}

func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// SearchUsersWithWishlists pages over users that have at least one wishlist
// entry and hydrates each with its items.
func (r *WishlistRepository) SearchUsersWithWishlists(ctx context.Context, q tabular.Query) ([]model.AdminUserWishlistData, int, error) {
	where, args := whereClause(q, wishlistUserFields, 1)
	cond := "EXISTS (SELECT 1 FROM wishlist_items wi WHERE wi.user_id = u.id)"
	if where != "" {
		cond += " AND " + strings.TrimPrefix(where, "WHERE ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users u WHERE %s`, cond)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wishlist users: %w", err)
	}

	limit, offset := clampPaging(q)
	dataQuery := fmt.Sprintf(
		`SELECT u.id, u.username, u.email FROM users u WHERE %s %s LIMIT $%d OFFSET $%d`,
		cond, orderClause(q, wishlistUserFields, "u.username ASC"), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search wishlist users: %w", err)
	}
	defer rows.Close()

	var users []model.AdminUserWishlistData
	for rows.Next() {
		var u model.AdminUserWishlistData
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wishlist users: %w", err)
	}

	for i := range users {
		items, err := r.ItemsForUser(ctx, users[i].UserID)
		if err != nil {
			return nil, 0, err
		}
		users[i].Wishlist = items
	}
	return users, total, nil
}

func (r *WishlistRepository) ItemsForUser(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT wi.product_id, p.name, p.price, wi.added_at
		 FROM wishlist_items wi
		 JOIN products p ON p.id = wi.product_id
		 WHERE wi.user_id = $1
		 ORDER BY wi.added_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist items: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var it model.WishlistItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.ProductPrice, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddItem inserts a wishlist entry. A product may appear at most once per
// user.
func (r *WishlistRepository) AddItem(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (user_id, product_id, added_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrWishlistDuplicate
	}
	return nil
}

func (r *WishlistRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrWishlistItemMissing
	}
	return nil
}

func (r *WishlistRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	return nil
}

func (r *WishlistRepository) UserWithWishlist(ctx context.Context, userID string) (*model.AdminUserWishlistData, error) {
	var u model.AdminUserWishlistData
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, userID).
		Scan(&u.UserID, &u.Username, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist user: %w", err)
	}

	items, err := r.ItemsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Wishlist = items
	return &u, nil
}
