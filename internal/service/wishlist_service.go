package service

import (
	"context"

	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/tabular"
)

type WishlistService struct {
	wishlists *repository.WishlistRepository
	products  *repository.ProductRepository
}

func NewWishlistService(wishlists *repository.WishlistRepository, products *repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

func (s *WishlistService) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	users, total, err := s.wishlists.SearchUsersWithWishlists(ctx, q)
	if err != nil {
		return tabular.Page{}, err
	}

	rows := make([]tabular.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, wishlistUserRow(u))
	}
	return pageOf(rows, total, q), nil
}

func (s *WishlistService) UserWishlist(ctx context.Context, userID string) (tabular.Row, error) {
	u, err := s.wishlists.UserWithWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wishlistUserRow(*u), nil
}

func (s *WishlistService) AddItemToUserWishlist(ctx context.Context, userID, productID string) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.wishlists.AddItem(ctx, userID, productID)
}

func (s *WishlistService) RemoveItemFromUserWishlist(ctx context.Context, userID, productID string) error {
	return s.wishlists.RemoveItem(ctx, userID, productID)
}

func (s *WishlistService) ClearUserWishlist(ctx context.Context, userID string) error {
	return s.wishlists.Clear(ctx, userID)
}
