package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

var userFields = FieldMap{
	"username":  "username",
	"email":     "email",
	"role":      "role",
	"active":    "active",
	"createdAt": "created_at",
}

const userColumns = `id, username, email, password_hash, role, active, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) Search(ctx context.Context, q tabular.Query) ([]model.User, int, error) {
	where, args := whereClause(q, userFields, 1)

	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM users %s", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, offset := clampPaging(q)
	dataQuery := fmt.Sprintf(`SELECT %s FROM users %s %s LIMIT $%d OFFSET $%d`,
		userColumns, where, orderClause(q, userFields, "username ASC"), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE lower(username) = lower($1)`, userColumns),
		strings.TrimSpace(username)))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", username, http.StatusNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(username) = lower($1))`,
		strings.TrimSpace(username)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $2, role = $3, active = $4, updated_at = $5 WHERE id = $1`,
		u.ID, u.Email, u.Role, u.Active, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "user not found", u.ID, http.StatusNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "user not found", id, http.StatusNotFound)
	}
	return nil
}

func (r *UserRepository) BulkDelete(ctx context.Context, ids []string) (int, []string, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM users WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("bulk delete users: %w", err)
	}
	defer rows.Close()

	deleted := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("scan deleted user id: %w", err)
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

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
