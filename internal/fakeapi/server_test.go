package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, s *Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, BasePath+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type cartBody struct {
	Cart        []models.CartLine `json:"cart"`
	LineRemoved *bool             `json:"lineRemoved"`
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	s := New()
	s.Seed()

	rec := serve(t, s, http.MethodGet, "/products?category=Accessories,Kids&sort=priceHighToLow", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Products []models.Product `json:"products"`
	}](t, rec)
	require.Len(t, body.Products, 4)
	for i := 1; i < len(body.Products); i++ {
		assert.True(t, body.Products[i-1].Price.GreaterThanOrEqual(body.Products[i].Price))
	}

	rec = serve(t, s, http.MethodGet, "/products?q=scarf&rating=4", nil)
	body = decode[struct {
		Products []models.Product `json:"products"`
	}](t, rec)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Wool Scarf", body.Products[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	s := New()
	rec := serve(t, s, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())
}

func TestCartAddRequiresSizeForSizedProducts(t *testing.T) {
	s := New()
	tee := s.AddProduct(models.Product{Name: "Tee", Price: decimal.NewFromInt(100), Sizes: []string{"M"}})

	rec := serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": tee.ID, "size": nil})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": tee.ID, "size": "M"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": tee.ID, "size": "M"})
	body := decode[cartBody](t, rec)
	require.Len(t, body.Cart, 1)
	assert.Equal(t, 2, body.Cart[0].Quantity)
}

func TestCartDecrementRemovesLineAtOne(t *testing.T) {
	s := New()
	belt := s.AddProduct(models.Product{Name: "Belt", Price: decimal.NewFromInt(50)})

	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": belt.ID, "size": "N/A"})
	rec := serve(t, s, http.MethodPost, "/cart/quantity", map[string]any{"productId": belt.ID, "size": "", "action": "decrement"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[cartBody](t, rec)
	assert.Empty(t, body.Cart)
	require.NotNil(t, body.LineRemoved)
	assert.True(t, *body.LineRemoved)

	s.OmitLineRemoved(true)
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": belt.ID})
	rec = serve(t, s, http.MethodPost, "/cart/quantity", map[string]any{"productId": belt.ID, "action": "increment"})
	body = decode[cartBody](t, rec)
	assert.Nil(t, body.LineRemoved)
	assert.Equal(t, 2, body.Cart[0].Quantity)
}

func TestCartRemoveAndClearRoutes(t *testing.T) {
	s := New()
	tee := s.AddProduct(models.Product{Name: "Tee", Price: decimal.NewFromInt(100), Sizes: []string{"M", "L"}})
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": tee.ID, "size": "M"})
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": tee.ID, "size": "L"})

	rec := serve(t, s, http.MethodDelete, "/cart/"+tee.ID+"?size=M", nil)
	body := decode[cartBody](t, rec)
	require.Len(t, body.Cart, 1)
	assert.Equal(t, models.SizeOf("L"), body.Cart[0].Size)

	rec = serve(t, s, http.MethodDelete, "/cart/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartBody](t, rec).Cart)
	assert.Equal(t, 1, s.Calls(http.MethodDelete, "/cart/clear"))
	assert.Equal(t, 1, s.Calls(http.MethodDelete, "/cart/:productId"))
}

func TestFailureInjection(t *testing.T) {
	s := New()
	s.Fail(http.MethodGet, "/user/profile", http.StatusServiceUnavailable, "Profile service down")

	rec := serve(t, s, http.MethodGet, "/user/profile", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"Profile service down"}`, rec.Body.String())

	s.Fail(http.MethodGet, "/user/profile", http.StatusInternalServerError, "")
	rec = serve(t, s, http.MethodGet, "/user/profile", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())

	s.Heal(http.MethodGet, "/user/profile")
	rec = serve(t, s, http.MethodGet, "/user/profile", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, s.Calls(http.MethodGet, "/user/profile"))
}

func TestAddressDefaultReassignment(t *testing.T) {
	s := New()
	input := map[string]any{
		"fullName": "A", "street": "1 Main", "city": "Pune",
		"state": "MH", "zipCode": "411001", "phone": "1",
	}

	rec := serve(t, s, http.MethodPost, "/user/addresses", input)
	require.Equal(t, http.StatusCreated, rec.Code)
	input["isDefault"] = true
	rec = serve(t, s, http.MethodPost, "/user/addresses", input)
	require.Equal(t, http.StatusCreated, rec.Code)

	profile := decode[models.Profile](t, serve(t, s, http.MethodGet, "/user/profile", nil))
	require.Len(t, profile.Addresses, 2)
	assert.False(t, profile.Addresses[0].IsDefault)
	assert.True(t, profile.Addresses[1].IsDefault)

	rec = serve(t, s, http.MethodDelete, "/user/addresses/"+profile.Addresses[1].ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	delete(input, "city")
	rec = serve(t, s, http.MethodPut, "/user/addresses/"+profile.Addresses[0].ID, input)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	s := New()
	belt := s.AddProduct(models.Product{Name: "Belt", Price: decimal.NewFromInt(100)})
	addr := s.AddAddress(models.AddressInput{FullName: "A", Street: "S", City: "C", State: "ST", ZipCode: "1", Phone: "2"})
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": belt.ID})
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": belt.ID})

	rec := serve(t, s, http.MethodPost, "/checkout", map[string]any{"selectedAddressId": addr.ID, "totalAmount": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, s, http.MethodPost, "/checkout", map[string]any{"selectedAddressId": addr.ID, "totalAmount": 200})
	require.Equal(t, http.StatusCreated, rec.Code)
	result := decode[models.CheckoutResult](t, rec)
	require.NotEmpty(t, result.OrderID)

	assert.Empty(t, decode[cartBody](t, serve(t, s, http.MethodGet, "/cart", nil)).Cart)

	rec = serve(t, s, http.MethodGet, "/user/order/"+result.OrderID, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := s.IssueToken(time.Hour)
	require.NoError(t, err)
	rec = serve(t, s, http.MethodGet, "/user/order/"+result.OrderID, nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	order := decode[struct {
		Order models.Order `json:"order"`
	}](t, rec)
	assert.Equal(t, models.OrderStatusProcessing, order.Order.Status)
	assert.True(t, order.Order.TotalAmount.Equal(decimal.NewFromInt(200)))
}

func TestCheckoutOmitOrderID(t *testing.T) {
	s := New()
	belt := s.AddProduct(models.Product{Name: "Belt", Price: decimal.NewFromInt(10)})
	addr := s.AddAddress(models.AddressInput{FullName: "A", Street: "S", City: "C", State: "ST", ZipCode: "1", Phone: "2"})
	serve(t, s, http.MethodPost, "/cart", map[string]any{"productId": belt.ID})
	s.OmitOrderID(true)

	rec := serve(t, s, http.MethodPost, "/checkout", map[string]any{"selectedAddressId": addr.ID, "totalAmount": 10})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "orderId")
}

func TestWishlistToggle(t *testing.T) {
	s := New()
	scarf := s.AddProduct(models.Product{Name: "Scarf", Price: decimal.NewFromInt(10)})

	rec := serve(t, s, http.MethodPost, "/wishlist", map[string]any{"productId": scarf.ID, "action": "ADD"})
	body := decode[struct {
		Wishlist []models.WishlistEntry `json:"wishlist"`
	}](t, rec)
	require.Len(t, body.Wishlist, 1)

	rec = serve(t, s, http.MethodPost, "/wishlist", map[string]any{"productId": scarf.ID, "action": "TOGGLE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, s, http.MethodPost, "/wishlist", map[string]any{"productId": scarf.ID, "action": "REMOVE"})
	body = decode[struct {
		Wishlist []models.WishlistEntry `json:"wishlist"`
	}](t, rec)
	assert.Empty(t, body.Wishlist)
}

func TestListProductsPagination(t *testing.T) {
	s := New()
	s.Seed()

	rec := serve(t, s, http.MethodGet, "/products?sort=priceLowToHigh&page=2&limit=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Products []models.Product `json:"products"`
	}](t, rec)
	require.Len(t, body.Products, 3)
	assert.Equal(t, "Wool Scarf", body.Products[0].Name)

	rec = serve(t, s, http.MethodGet, "/products?page=9&limit=3", nil)
	body = decode[struct {
		Products []models.Product `json:"products"`
	}](t, rec)
	assert.Empty(t, body.Products)

	rec = serve(t, s, http.MethodGet, "/products?page=0&limit=3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
