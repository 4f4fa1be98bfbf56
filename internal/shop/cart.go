package shop

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/api"
	"storefront/internal/models"
	"storefront/internal/notify"
)

type CartAction string

const (
	CartAdd       CartAction = "ADD"
	CartRemove    CartAction = "REMOVE"
	CartIncrement CartAction = "INCREMENT"
	CartDecrement CartAction = "DECREMENT"
)

// ParseCartAction accepts the action names case-insensitively.
func ParseCartAction(raw string) (CartAction, error) {
	a := CartAction(strings.ToUpper(strings.TrimSpace(raw)))
	switch a {
	case CartAdd, CartRemove, CartIncrement, CartDecrement:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, raw)
	}
}

func containsLine(cart []models.CartLine, key models.VariantKey) bool {
	for _, line := range cart {
		if line.Key() == key {
			return true
		}
	}
	return false
}

// UpdateCart performs one cart mutation and adopts the server's cart. Errors
// have already been reported as a notification when they are returned.
func (s *Store) UpdateCart(ctx context.Context, productID string, action CartAction, size models.Size) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	seq := s.begin(sliceCart)
	var (
		cart     []models.CartLine
		message  string
		severity notify.Severity
		err      error
	)

	switch action {
	case CartAdd:
		cart, err = s.client.AddToCart(ctx, productID, size)
		message, severity = "Item added to cart!", notify.Success
	case CartRemove:
		cart, err = s.client.RemoveFromCart(ctx, productID, size)
		message, severity = "Item removed from cart.", notify.Warning
	case CartIncrement:
		var update api.CartUpdate
		update, err = s.client.ChangeQuantity(ctx, productID, size, api.Increment)
		cart = update.Cart
		message, severity = "Quantity incremented.", notify.Info
	case CartDecrement:
		var update api.CartUpdate
		update, err = s.client.ChangeQuantity(ctx, productID, size, api.Decrement)
		cart = update.Cart
		removed := !containsLine(cart, models.VariantKey{ProductID: productID, Size: size})
		if update.LineRemoved != nil {
			removed = *update.LineRemoved
		}
		if removed {
			message, severity = "Item removed from cart.", notify.Warning
		} else {
			message, severity = "Quantity decremented.", notify.Info
		}
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	if err != nil {
		s.fail("update cart", "Failed to update cart.", err)
		return fmt.Errorf("update cart: %w", err)
	}

	s.apply(sliceCart, seq, func(st *State) { st.Cart = cart })
	s.alert(message, severity)
	return nil
}

func (s *Store) ClearCart(ctx context.Context) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	seq := s.begin(sliceCart)
	cart, err := s.client.ClearCart(ctx)
	if err != nil {
		s.fail("clear cart", "Failed to clear cart.", err)
		return fmt.Errorf("clear cart: %w", err)
	}

	s.apply(sliceCart, seq, func(st *State) { st.Cart = cart })
	s.alert("Your shopping cart has been emptied.", notify.Warning)
	return nil
}

// MoveToWishlist saves a cart line for later: wishlist ADD, then cart REMOVE.
func (s *Store) MoveToWishlist(ctx context.Context, productID string, size models.Size) error {
	if err := s.UpdateWishlist(ctx, productID, WishlistAdd, size); err != nil {
		return err
	}
	return s.UpdateCart(ctx, productID, CartRemove, size)
}
