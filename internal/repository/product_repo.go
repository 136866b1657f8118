package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

var productFields = FieldMap{
	"name":          "name",
	"description":   "description",
	"category":      "category",
	"price":         "price",
	"stockQuantity": "stock_quantity",
	"rating":        "rating",
	"active":        "active",
	"createdAt":     "created_at",
}

const productColumns = `id, name, description, price, stock_quantity, category, rating, image_url, active, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.Category, &p.Rating, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepository) Search(ctx context.Context, q tabular.Query) ([]model.Product, int, error) {
	where, args := whereClause(q, productFields, 1)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit, offset := clampPaging(q)
	dataQuery := fmt.Sprintf(`SELECT %s FROM products %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderClause(q, productFields, "created_at DESC"), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns), id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindSummaries(ctx context.Context, ids []string) (map[string]model.ProductSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, stock_quantity, image_url FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find product summaries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.ProductSummary, len(ids))
	for rows.Next() {
		var s model.ProductSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.StockQuantity, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product summary: %w", err)
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, stock_quantity, category, rating, image_url, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Description, p.Price, p.StockQuantity, p.Category, p.Rating, p.ImageURL, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, description = $3, price = $4, stock_quantity = $5,
		        category = $6, rating = $7, image_url = $8, active = $9, updated_at = $10
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.StockQuantity, p.Category, p.Rating, p.ImageURL, p.Active, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "product not found", p.ID, http.StatusNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "product not found", id, http.StatusNotFound)
	}
	return nil
}

// BulkDelete removes every listed product and reports the ids that were not
// found, so callers can surface partial failures.
func (r *ProductRepository) BulkDelete(ctx context.Context, ids []string) (int, []string, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM products WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("bulk delete products: %w", err)
	}
	defer rows.Close()

	deleted := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("scan deleted product id: %w", err)
		}
		deleted[id] = true
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	var failed []string
	for _, id := range ids {
		if !deleted[id] {
			failed = append(failed, id)
		}
	}
	return len(deleted), failed, nil
}
