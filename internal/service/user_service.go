package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	users, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return tabular.Page{}, err
	}

	rows := make([]tabular.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow(u))
	}
	return pageOf(rows, total, q), nil
}

func (s *UserService) Get(ctx context.Context, id string) (model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, row tabular.Row) (model.User, error) {
	username := strings.TrimSpace(rowString(row, "username"))
	password := rowString(row, "password")
	if username == "" || password == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}

	role := strings.ToLower(strings.TrimSpace(rowString(row, "role")))
	if role == "" {
		role = "customer"
	}
	if role != "admin" && role != "staff" && role != "customer" {
		return model.User{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apierror.New("ALREADY_EXISTS", "username already exists", username, http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now().UTC()
	u := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(rowString(row, "email"))),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, ok := row["active"]; ok {
		u.Active = rowBool(row, "active")
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, row tabular.Row) (model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if _, ok := row["username"]; ok {
		u.Username = strings.TrimSpace(rowString(row, "username"))
	}
	if _, ok := row["email"]; ok {
		u.Email = strings.ToLower(strings.TrimSpace(rowString(row, "email")))
	}
	if _, ok := row["role"]; ok {
		role := strings.ToLower(strings.TrimSpace(rowString(row, "role")))
		if role != "admin" && role != "staff" && role != "customer" {
			return model.User{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
		}
		u.Role = role
	}
	if _, ok := row["active"]; ok {
		u.Active = rowBool(row, "active")
	}
	if pw := rowString(row, "password"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), 12)
		if err != nil {
			return model.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if u.Username == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "username is required", "", http.StatusBadRequest)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) BulkDelete(ctx context.Context, ids []string) (tabular.BulkResult, error) {
	deleted, failed, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return tabular.BulkResult{}, err
	}
	return tabular.BulkResult{Deleted: deleted, Failed: failed}, nil
}
