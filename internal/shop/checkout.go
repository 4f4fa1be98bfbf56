package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront/internal/api"
	"storefront/internal/models"
	"storefront/internal/notify"
)

// PlaceOrder submits the checkout. Unlike the other actions its failure is
// meant for the caller: a nil result means no order exists and the caller
// must not move on to the confirmation. On success the cart and order
// history are refreshed concurrently.
func (s *Store) PlaceOrder(ctx context.Context, addressID string, total decimal.Decimal) (*models.CheckoutResult, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	addressID = strings.TrimSpace(addressID)
	switch {
	case addressID == "":
		s.alert("Please select a shipping address.", notify.Warning)
		return nil, fmt.Errorf("%w: no shipping address selected", ErrCheckoutNotReady)
	case !total.IsPositive():
		s.alert("Your cart is empty.", notify.Warning)
		return nil, fmt.Errorf("%w: order total is %s", ErrCheckoutNotReady, total.StringFixed(2))
	}

	res, err := s.client.Checkout(ctx, models.CheckoutRequest{
		SelectedAddressID: addressID,
		TotalAmount:       total,
	})
	if errors.Is(err, api.ErrMissingField) {
		err = ErrMissingOrderID
	}
	if err != nil {
		s.fail("place order", "Checkout failed.", err)
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.refreshAfterCheckout(ctx)

	message := strings.TrimSpace(res.Message)
	if message == "" {
		message = "Order placed successfully!"
	}
	s.alert(message, notify.Success)
	return res, nil
}

// refreshAfterCheckout refetches cart and orders. A failure here does not undo
// the placed order; it is only reported.
func (s *Store) refreshAfterCheckout(ctx context.Context) {
	var (
		g      errgroup.Group
		cart   = result[[]models.CartLine]{seq: s.begin(sliceCart)}
		orders = result[[]models.Order]{seq: s.begin(sliceOrders)}
	)
	fetchInto(ctx, &g, &cart, s.client.Cart)
	fetchInto(ctx, &g, &orders, s.client.Orders)
	_ = g.Wait()

	_ = applyResult(s, sliceCart, cart, func(st *State, v []models.CartLine) { st.Cart = v })
	_ = applyResult(s, sliceOrders, orders, func(st *State, v []models.Order) { st.Orders = v })
}
