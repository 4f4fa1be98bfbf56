package shop

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/api"
	"storefront/internal/models"
	"storefront/internal/notify"
)

type WishlistAction = api.WishlistAction

const (
	WishlistAdd    = api.WishlistAdd
	WishlistRemove = api.WishlistRemove
)

func (s *Store) UpdateWishlist(ctx context.Context, productID string, action WishlistAction, size models.Size) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	var message string
	var severity notify.Severity
	switch action {
	case WishlistAdd:
		message, severity = "Added to wishlist!", notify.Info
	case WishlistRemove:
		message, severity = "Removed from wishlist.", notify.Warning
	default:
		err := fmt.Errorf("%w: %s", ErrInvalidAction, action)
		s.fail("update wishlist", "Failed to update wishlist.", err)
		return fmt.Errorf("update wishlist: %w", err)
	}

	seq := s.begin(sliceWishlist)
	wishlist, err := s.client.UpdateWishlist(ctx, productID, size, action)
	if err != nil {
		s.fail("update wishlist", "Failed to update wishlist.", err)
		return fmt.Errorf("update wishlist: %w", err)
	}

	s.apply(sliceWishlist, seq, func(st *State) { st.Wishlist = wishlist })
	s.alert(message, severity)
	return nil
}

func (s *Store) ClearWishlist(ctx context.Context) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	seq := s.begin(sliceWishlist)
	wishlist, err := s.client.ClearWishlist(ctx)
	if err != nil {
		s.fail("clear wishlist", "Failed to clear wishlist.", err)
		return fmt.Errorf("clear wishlist: %w", err)
	}

	s.apply(sliceWishlist, seq, func(st *State) { st.Wishlist = wishlist })
	s.alert("Wishlist cleared.", notify.Warning)
	return nil
}

// MoveToCart moves a wishlist entry into the cart: cart ADD, then wishlist
// REMOVE. The wishlist entry stays when the cart add fails.
func (s *Store) MoveToCart(ctx context.Context, productID string, size models.Size) error {
	if err := s.UpdateCart(ctx, productID, CartAdd, size); err != nil {
		return err
	}
	return s.UpdateWishlist(ctx, productID, WishlistRemove, size)
}

func ParseWishlistAction(raw string) (WishlistAction, error) {
	a := WishlistAction(strings.ToUpper(strings.TrimSpace(raw)))
	if a != WishlistAdd && a != WishlistRemove {
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, raw)
	}
	return a, nil
}
