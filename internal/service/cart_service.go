package service

import (
	"context"
	"net/http"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

// CartService manages user carts for the admin dashboard. Mutations validate
// against the product catalog before touching cart lines.
type CartService struct {
	carts    *repository.CartRepository
	products *repository.ProductRepository
}

func NewCartService(carts *repository.CartRepository, products *repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Search returns one page of users that currently have cart items, each with
// its nested line-item array.
func (s *CartService) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	users, total, err := s.carts.SearchUsersWithCarts(ctx, q)
	if err != nil {
		return tabular.Page{}, err
	}

	rows := make([]tabular.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, cartUserRow(u))
	}
	return pageOf(rows, total, q), nil
}

func (s *CartService) UserCart(ctx context.Context, userID string) (tabular.Row, error) {
	u, err := s.carts.UserWithCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartUserRow(*u), nil
}

func (s *CartService) AddItemToUserCart(ctx context.Context, userID string, in model.CartItemInput) error {
	if in.Quantity < 1 {
		return apierror.New("BAD_REQUEST", "quantity must be at least 1", "", http.StatusBadRequest)
	}

	p, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if p.StockQuantity < in.Quantity {
		return model.ErrInsufficientStock
	}

	return s.carts.AddItem(ctx, userID, in)
}

// UpdateUserCartItem applies an edited child row. When the edit changed the
// selected product the old line is swapped for the new one, otherwise only
// the quantity changes.
func (s *CartService) UpdateUserCartItem(ctx context.Context, userID, productID string, item tabular.Row) error {
	quantity := rowInt(item, "quantity")
	if quantity < 1 {
		return apierror.New("BAD_REQUEST", "quantity must be at least 1", "", http.StatusBadRequest)
	}

	newProductID := rowString(item, "productId")
	if newProductID == "" {
		newProductID = productID
	}

	p, err := s.products.FindByID(ctx, newProductID)
	if err != nil {
		return err
	}
	if p.StockQuantity < quantity {
		return model.ErrInsufficientStock
	}

	if newProductID != productID {
		return s.carts.SwapProduct(ctx, userID, productID, newProductID, quantity)
	}
	return s.carts.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *CartService) RemoveItemFromUserCart(ctx context.Context, userID, productID string) error {
	return s.carts.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearUserCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}
