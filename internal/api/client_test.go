package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	opts = append([]Option{WithHTTPClient(ts.Client())}, opts...)
	return New(ts.URL+"/api/", opts...)
}

func TestProductQueryValues(t *testing.T) {
	q := ProductQuery{
		Search:     "  shirt ",
		Categories: []string{"Men", " ", "Summer"},
		MinRating:  4,
		Sort:       SortPriceHighToLow,
	}
	v := q.Values()
	assert.Equal(t, "shirt", v.Get("q"))
	assert.Equal(t, "Men,Summer", v.Get("category"))
	assert.Equal(t, "4", v.Get("rating"))
	assert.Equal(t, "priceHighToLow", v.Get("sort"))

	assert.Empty(t, ProductQuery{}.Values())
}

func TestProductsSendsQueryAndDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "tee", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"products":[{"_id":"p1","name":"Tee","price":199.5,"category":"Men","sizes":["M","L"],"rating":4}]}`)
	})

	products, err := c.Products(context.Background(), ProductQuery{Search: "tee"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("199.5")))
	assert.Equal(t, models.SizeOf("M"), products[0].DefaultSize())
}

func TestNon2xxUsesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"Out of stock"}`)
	})

	_, err := c.Cart(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Out of stock", Message(err))
	assert.Equal(t, KindHTTP, Classify(err))
}

func TestNon2xxWithoutMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>bad gateway</html>`)
	})

	_, err := c.Wishlist(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP error! Status: 502", Message(err))
}

func TestRemoveFromCartOmitsSizeForNone(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		queries = append(queries, r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"cart":[]}`)
	})

	_, err := c.RemoveFromCart(context.Background(), "p1", models.NoSize())
	require.NoError(t, err)
	_, err = c.RemoveFromCart(context.Background(), "p1", models.SizeOf("XL"))
	require.NoError(t, err)

	assert.Equal(t, []string{"", "size=XL"}, queries)
}

func TestAddToCartSendsNullSize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["productId"])
		size, present := body["size"]
		assert.True(t, present)
		assert.Nil(t, size)
		_, _ = io.WriteString(w, `{"cart":[{"product":{"_id":"p1","price":10},"size":"N/A","quantity":1}]}`)
	})

	cart, err := c.AddToCart(context.Background(), "p1", models.SizeOf("n/a"))
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.True(t, cart[0].Size.IsNone())
}

func TestChangeQuantityReportsLineRemoved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cart":[],"lineRemoved":true}`)
	})

	update, err := c.ChangeQuantity(context.Background(), "p1", models.NoSize(), Decrement)
	require.NoError(t, err)
	require.NotNil(t, update.LineRemoved)
	assert.True(t, *update.LineRemoved)
	assert.Empty(t, update.Cart)

	_, err = c.ChangeQuantity(context.Background(), "p1", models.NoSize(), "double")
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, KindInvalidAction, Classify(err))
}

func TestCheckoutWithoutOrderIDIsMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"Order placed"}`)
	})

	res, err := c.Checkout(context.Background(), models.CheckoutRequest{
		SelectedAddressID: "a1",
		TotalAmount:       decimal.NewFromInt(350),
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, KindMissingField, Classify(err))
}

func TestOrderSendsUsableBearerToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"order":{"_id":"o1","orderStatus":"Shipped","totalAmount":20}}`)
	}, WithToken(token))

	order, err := c.Order(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, got)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestTokenUsable(t *testing.T) {
	now := time.Now()
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.False(t, TokenUsable("", now))
	assert.False(t, TokenUsable(expired, now))
	assert.True(t, TokenUsable("opaque-session-token", now))
}

func TestTransportErrorClassified(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url)
	_, err := c.Orders(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, Classify(err))
	assert.NotEmpty(t, Message(err))
}
