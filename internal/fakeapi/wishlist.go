package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

func (s *Server) wishlistSnapshotLocked() []models.WishlistEntry {
	out := make([]models.WishlistEntry, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

func (s *Server) getWishlist(c *gin.Context) {
	s.mu.Lock()
	wishlist := s.wishlistSnapshotLocked()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist})
}

// updateWishlist adds or removes one entry. Both actions are idempotent.
func (s *Server) updateWishlist(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Product ID is required")
		return
	}

	action := strings.ToUpper(strings.TrimSpace(req.Action))
	if action != "ADD" && action != "REMOVE" {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid action")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VariantKey{ProductID: strings.TrimSpace(req.ProductID), Size: req.Size}
	index := -1
	for i, entry := range s.wishlist {
		if entry.Key() == key {
			index = i
			break
		}
	}

	switch action {
	case "ADD":
		if index == -1 {
			product, status, message := s.resolveVariantLocked(req.ProductID, req.Size)
			if status != 0 {
				respondWithError(c, s.logger, status, route(c), message)
				return
			}
			s.wishlist = append(s.wishlist, models.WishlistEntry{Product: product, Size: req.Size})
		}
	case "REMOVE":
		if index >= 0 {
			s.wishlist = append(s.wishlist[:index], s.wishlist[index+1:]...)
		}
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": s.wishlistSnapshotLocked()})
}

func (s *Server) clearWishlist(c *gin.Context) {
	s.mu.Lock()
	s.wishlist = []models.WishlistEntry{}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"wishlist": []models.WishlistEntry{}})
}
