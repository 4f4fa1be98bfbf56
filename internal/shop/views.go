package shop

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/notify"
)

// CartTotal is the sum of price x quantity over all lines.
func (st State) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range st.Cart {
		total = total.Add(line.Subtotal())
	}
	return total
}

// CartItemCount is the number of units in the cart, shown on the nav badge.
func (st State) CartItemCount() int {
	n := 0
	for _, line := range st.Cart {
		n += line.Quantity
	}
	return n
}

func (st State) FindCartLine(productID string, size models.Size) (models.CartLine, bool) {
	key := models.VariantKey{ProductID: productID, Size: size}
	for _, line := range st.Cart {
		if line.Key() == key {
			return line, true
		}
	}
	return models.CartLine{}, false
}

func (st State) InCart(productID string, size models.Size) bool {
	_, ok := st.FindCartLine(productID, size)
	return ok
}

func (st State) InWishlist(productID string, size models.Size) bool {
	key := models.VariantKey{ProductID: productID, Size: size}
	for _, entry := range st.Wishlist {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

// DefaultAddress is the address preselected at checkout.
func (st State) DefaultAddress() (models.Address, bool) {
	return st.Profile.DefaultAddress()
}

// ProductFilter is the client-side pass applied on top of the server filters.
// A zero MaxPrice means no upper bound.
type ProductFilter struct {
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	MinRating float64
}

func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price.LessThan(f.MinPrice) {
			continue
		}
		if f.MaxPrice.IsPositive() && p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		if p.Rating < f.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// StatusDisplay returns the label and badge colour for an order status.
func StatusDisplay(status models.OrderStatus) (string, notify.Severity) {
	status = status.Normalize()
	switch status {
	case models.OrderStatusDelivered:
		return string(status), notify.Success
	case models.OrderStatusShipped:
		return string(status), notify.Info
	case models.OrderStatusCanceled:
		return string(status), notify.Danger
	default:
		return string(status), notify.Warning
	}
}
