package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/models"
)

type QuantityAction string

const (
	Increment QuantityAction = "increment"
	Decrement QuantityAction = "decrement"
)

type WishlistAction string

const (
	WishlistAdd    WishlistAction = "ADD"
	WishlistRemove WishlistAction = "REMOVE"
)

// CartUpdate is the result of a quantity change. LineRemoved is nil when the
// server did not say whether the line was deleted.
type CartUpdate struct {
	Cart        []models.CartLine
	LineRemoved *bool
}

type cartEnvelope struct {
	Cart        []models.CartLine `json:"cart"`
	LineRemoved *bool             `json:"lineRemoved,omitempty"`
}

func (e cartEnvelope) lines() []models.CartLine {
	if e.Cart == nil {
		return []models.CartLine{}
	}
	return e.Cart
}

type variantBody struct {
	ProductID string      `json:"productId"`
	Size      models.Size `json:"size"`
	Action    string      `json:"action,omitempty"`
}

func (c *Client) Cart(ctx context.Context) ([]models.CartLine, error) {
	var resp cartEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/cart"}, &resp); err != nil {
		return nil, err
	}
	return resp.lines(), nil
}

// AddToCart adds one unit of the variant and returns the server's cart.
func (c *Client) AddToCart(ctx context.Context, productID string, size models.Size) ([]models.CartLine, error) {
	var resp cartEnvelope
	req := request{
		method: http.MethodPost,
		path:   "/cart",
		body:   variantBody{ProductID: productID, Size: size},
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.lines(), nil
}

// RemoveFromCart deletes the whole line. The size parameter is omitted for
// products without size variants.
func (c *Client) RemoveFromCart(ctx context.Context, productID string, size models.Size) ([]models.CartLine, error) {
	query := url.Values{}
	if v, ok := size.Value(); ok {
		query.Set("size", v)
	}

	var resp cartEnvelope
	req := request{
		method: http.MethodDelete,
		path:   "/cart/" + url.PathEscape(productID),
		query:  query,
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.lines(), nil
}

func (c *Client) ChangeQuantity(ctx context.Context, productID string, size models.Size, action QuantityAction) (CartUpdate, error) {
	if action != Increment && action != Decrement {
		return CartUpdate{}, fmt.Errorf("%w: quantity %q", ErrInvalidAction, action)
	}

	var resp cartEnvelope
	req := request{
		method: http.MethodPost,
		path:   "/cart/quantity",
		body:   variantBody{ProductID: productID, Size: size, Action: string(action)},
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return CartUpdate{}, err
	}
	return CartUpdate{Cart: resp.lines(), LineRemoved: resp.LineRemoved}, nil
}

func (c *Client) ClearCart(ctx context.Context) ([]models.CartLine, error) {
	var resp cartEnvelope
	if err := c.do(ctx, request{method: http.MethodDelete, path: "/cart/clear"}, &resp); err != nil {
		return nil, err
	}
	return resp.lines(), nil
}

type wishlistEnvelope struct {
	Wishlist []models.WishlistEntry `json:"wishlist"`
}

func (e wishlistEnvelope) entries() []models.WishlistEntry {
	if e.Wishlist == nil {
		return []models.WishlistEntry{}
	}
	return e.Wishlist
}

func (c *Client) Wishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	var resp wishlistEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/wishlist"}, &resp); err != nil {
		return nil, err
	}
	return resp.entries(), nil
}

func (c *Client) UpdateWishlist(ctx context.Context, productID string, size models.Size, action WishlistAction) ([]models.WishlistEntry, error) {
	action = WishlistAction(strings.ToUpper(string(action)))
	if action != WishlistAdd && action != WishlistRemove {
		return nil, fmt.Errorf("%w: wishlist %q", ErrInvalidAction, action)
	}

	var resp wishlistEnvelope
	req := request{
		method: http.MethodPost,
		path:   "/wishlist",
		body:   variantBody{ProductID: productID, Size: size, Action: string(action)},
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.entries(), nil
}

func (c *Client) ClearWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	var resp wishlistEnvelope
	if err := c.do(ctx, request{method: http.MethodDelete, path: "/wishlist/clear"}, &resp); err != nil {
		return nil, err
	}
	return resp.entries(), nil
}
