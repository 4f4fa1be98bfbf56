package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

type variantRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Size      models.Size `json:"size"`
	Action    string      `json:"action"`
}

// resolveVariantLocked checks that the product exists and that size is one of
// its variants, or NoSize for products without any.
func (s *Server) resolveVariantLocked(productID string, size models.Size) (models.Product, int, string) {
	product, ok := s.findProductLocked(strings.TrimSpace(productID))
	if !ok {
		return models.Product{}, http.StatusNotFound, "Product not found"
	}

	options := product.SizeOptions()
	if len(options) == 0 {
		if !size.IsNone() {
			return models.Product{}, http.StatusBadRequest, "This product has no size options"
		}
		return product, 0, ""
	}
	for _, opt := range options {
		if opt == size {
			return product, 0, ""
		}
	}
	if size.IsNone() {
		return models.Product{}, http.StatusBadRequest, "Please select a size"
	}
	return models.Product{}, http.StatusBadRequest, "Invalid size for this product"
}

func (s *Server) cartLineLocked(key models.VariantKey) int {
	for i, line := range s.cart {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Server) cartSnapshotLocked() []models.CartLine {
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	cart := s.cartSnapshotLocked()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (s *Server) addToCart(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Product ID is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, status, message := s.resolveVariantLocked(req.ProductID, req.Size)
	if status != 0 {
		respondWithError(c, s.logger, status, route(c), message)
		return
	}

	key := models.VariantKey{ProductID: product.ID, Size: req.Size}
	if i := s.cartLineLocked(key); i >= 0 {
		s.cart[i].Quantity++
	} else {
		s.cart = append(s.cart, models.CartLine{Product: product, Size: req.Size, Quantity: 1})
	}

	c.JSON(http.StatusOK, gin.H{"cart": s.cartSnapshotLocked()})
}

func (s *Server) removeFromCart(c *gin.Context) {
	key := models.VariantKey{
		ProductID: strings.TrimSpace(c.Param("productId")),
		Size:      models.SizeOf(c.Query("size")),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartLineLocked(key)
	if i < 0 {
		respondWithError(c, s.logger, http.StatusNotFound, route(c), "Item not found in cart")
		return
	}
	s.cart = append(s.cart[:i], s.cart[i+1:]...)

	c.JSON(http.StatusOK, gin.H{"cart": s.cartSnapshotLocked()})
}

// changeQuantity deletes the line when a decrement would reach zero.
func (s *Server) changeQuantity(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Product ID is required")
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != "increment" && action != "decrement" {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid action")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VariantKey{ProductID: strings.TrimSpace(req.ProductID), Size: req.Size}
	i := s.cartLineLocked(key)
	if i < 0 {
		respondWithError(c, s.logger, http.StatusNotFound, route(c), "Item not found in cart")
		return
	}

	removed := false
	if action == "increment" {
		s.cart[i].Quantity++
	} else if s.cart[i].Quantity <= 1 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
		removed = true
	} else {
		s.cart[i].Quantity--
	}

	body := gin.H{"cart": s.cartSnapshotLocked()}
	if !s.omitLineRemoved {
		body["lineRemoved"] = removed
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) clearCart(c *gin.Context) {
	s.mu.Lock()
	s.cart = []models.CartLine{}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"cart": []models.CartLine{}})
}
