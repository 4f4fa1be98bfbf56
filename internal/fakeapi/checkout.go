package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type checkoutRequest struct {
	SelectedAddressID string          `json:"selectedAddressId" binding:"required"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

// checkout turns the cart into an order and empties the cart. The submitted
// total must match the cart total.
func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Please select a shipping address")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.addressIndexLocked(strings.TrimSpace(req.SelectedAddressID))
	if index == -1 {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid shipping address")
		return
	}
	if len(s.cart) == 0 {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Your cart is empty")
		return
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(s.cart))
	for _, line := range s.cart {
		total = total.Add(line.Subtotal())
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
		})
	}
	if !total.Equal(req.TotalAmount) {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Cart total has changed. Please review your cart.")
		return
	}

	order := models.Order{
		ID:              primitive.NewObjectID().Hex(),
		Items:           items,
		ShippingAddress: s.profile.Addresses[index],
		TotalAmount:     total,
		Status:          models.OrderStatusProcessing,
		CreatedAt:       time.Now().UTC(),
	}
	s.orders = append(s.orders, order)
	s.cart = []models.CartLine{}

	body := gin.H{"message": "Order placed successfully!"}
	if !s.omitOrderID {
		body["orderId"] = order.ID
	}
	c.JSON(http.StatusCreated, body)
}
