package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
)

var contactFields = FieldMap{
	"id":      "id",
	"name":    "name",
	"email":   "email",
	"subject": "subject",
	"message": "message",
	"status":  "status",
	"date":    "created_at",
}

const contactColumns = "id, name, email, subject, message, status, created_at"

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Search(ctx context.Context, q tabular.Query) ([]model.ContactSubmission, int, error) {
	where, args := whereClause(q, contactFields, 1)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM contact_submissions %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	limit, offset := clampPaging(q)
	dataQuery := fmt.Sprintf(
		`SELECT %s FROM contact_submissions %s %s LIMIT $%d OFFSET $%d`,
		contactColumns, where, orderClause(q, contactFields, "created_at DESC"),
		len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, total, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*model.ContactSubmission, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM contact_submissions WHERE id = $1`, contactColumns), id)
	c, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *model.ContactSubmission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_submissions (id, name, email, subject, message, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.Subject, c.Message, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) BulkDelete(ctx context.Context, ids []string) (int, []string, error) {
	rows, err := r.pool.Query(ctx,
		`DELETE FROM contact_submissions WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("bulk delete contacts: %w", err)
	}
	defer rows.Close()

	removed := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("scan deleted contact id: %w", err)
		}
		removed[id] = true
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate deleted contacts: %w", err)
	}

	var failed []string
	for _, id := range ids {
		if !removed[id] {
			failed = append(failed, id)
		}
	}
	return len(removed), failed, nil
}

func scanContact(row pgx.Row) (model.ContactSubmission, error) {
	var c model.ContactSubmission
	var created time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Status, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("scan contact: %w", err)
	}
	c.CreatedAt = created
	return c, nil
}
