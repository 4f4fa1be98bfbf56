package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/models"
)

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/user/profile"}, &profile); err != nil {
		return nil, err
	}
	if profile.Addresses == nil {
		profile.Addresses = []models.Address{}
	}
	return &profile, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/user/orders"}, &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []models.Order{}
	}
	return resp.Orders, nil
}

// Order fetches one order and is the only call that sends the bearer token.
func (c *Client) Order(ctx context.Context, id string) (models.Order, error) {
	var resp struct {
		Order *models.Order `json:"order"`
	}
	req := request{
		method: http.MethodGet,
		path:   "/user/order/" + url.PathEscape(id),
		auth:   true,
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return models.Order{}, err
	}
	if resp.Order == nil {
		return models.Order{}, missingField("order")
	}
	return *resp.Order, nil
}

func (c *Client) AddAddress(ctx context.Context, in models.AddressInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/user/addresses", body: in}, nil)
}

func (c *Client) UpdateAddress(ctx context.Context, id string, in models.AddressInput) error {
	req := request{
		method: http.MethodPut,
		path:   "/user/addresses/" + url.PathEscape(id),
		body:   in,
	}
	return c.do(ctx, req, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/user/addresses/" + url.PathEscape(id)}, nil)
}

// Checkout places an order. A 2xx response without orderId is reported as
// ErrMissingField.
func (c *Client) Checkout(ctx context.Context, in models.CheckoutRequest) (*models.CheckoutResult, error) {
	var result models.CheckoutResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/checkout", body: in}, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.OrderID) == "" {
		return nil, missingField("orderId")
	}
	return &result, nil
}
