package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	products, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return tabular.Page{}, err
	}

	rows := make([]tabular.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow(p))
	}
	return pageOf(rows, total, q), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Summaries resolves the product picker options shown inside cart and
// wishlist child editors.
func (s *ProductService) Summaries(ctx context.Context, ids []string) (map[string]model.ProductSummary, error) {
	return s.repo.FindSummaries(ctx, ids)
}

func (s *ProductService) Create(ctx context.Context, row tabular.Row) (model.Product, error) {
	name := strings.TrimSpace(rowString(row, "name"))
	if name == "" {
		return model.Product{}, apierror.New("BAD_REQUEST", "product name is required", "", http.StatusBadRequest)
	}
	price := rowFloat(row, "price")
	if price < 0 {
		return model.Product{}, apierror.New("BAD_REQUEST", "price must not be negative", "", http.StatusBadRequest)
	}

	now := time.Now().UTC()
	p := model.Product{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   rowString(row, "description"),
		Price:         price,
		StockQuantity: rowInt(row, "stockQuantity"),
		Category:      rowString(row, "category"),
		Rating:        rowFloat(row, "rating"),
		ImageURL:      rowString(row, "imageUrl"),
		Active:        rowBool(row, "active"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, ok := row["active"]; !ok {
		p.Active = true
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, row tabular.Row) (model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	if _, ok := row["name"]; ok {
		p.Name = strings.TrimSpace(rowString(row, "name"))
	}
	if _, ok := row["description"]; ok {
		p.Description = rowString(row, "description")
	}
	if _, ok := row["price"]; ok {
		p.Price = rowFloat(row, "price")
	}
	if _, ok := row["stockQuantity"]; ok {
		p.StockQuantity = rowInt(row, "stockQuantity")
	}
	if _, ok := row["category"]; ok {
		p.Category = rowString(row, "category")
	}
	if _, ok := row["rating"]; ok {
		p.Rating = rowFloat(row, "rating")
	}
	if _, ok := row["imageUrl"]; ok {
		p.ImageURL = rowString(row, "imageUrl")
	}
	if _, ok := row["active"]; ok {
		p.Active = rowBool(row, "active")
	}

	if p.Name == "" {
		return model.Product{}, apierror.New("BAD_REQUEST", "product name is required", "", http.StatusBadRequest)
	}
	if p.Price < 0 {
		return model.Product{}, apierror.New("BAD_REQUEST", "price must not be negative", "", http.StatusBadRequest)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) BulkDelete(ctx context.Context, ids []string) (tabular.BulkResult, error) {
	deleted, failed, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return tabular.BulkResult{}, err
	}
	return tabular.BulkResult{Deleted: deleted, Failed: failed}, nil
}
