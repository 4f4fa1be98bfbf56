package fakeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

func (s *Server) profileSnapshotLocked() models.Profile {
	p := s.profile
	p.Addresses = make([]models.Address, len(s.profile.Addresses))
	copy(p.Addresses, s.profile.Addresses)
	return p
}

func (s *Server) getProfile(c *gin.Context) {
	s.mu.Lock()
	profile := s.profileSnapshotLocked()
	s.mu.Unlock()

	c.JSON(http.StatusOK, profile)
}

func (s *Server) addressIndexLocked(id string) int {
	for i, a := range s.profile.Addresses {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ensureDefaultLocked keeps exactly one default address when any exist.
func (s *Server) ensureDefaultLocked() {
	addrs := s.profile.Addresses
	if len(addrs) == 0 {
		return
	}
	for _, a := range addrs {
		if a.IsDefault {
			return
		}
	}
	addrs[0].IsDefault = true
}

func (s *Server) clearDefaultLocked() {
	for i := range s.profile.Addresses {
		s.profile.Addresses[i].IsDefault = false
	}
}

func applyAddressInput(a *models.Address, in models.AddressInput) {
	a.FullName = strings.TrimSpace(in.FullName)
	a.Street = strings.TrimSpace(in.Street)
	a.City = strings.TrimSpace(in.City)
	a.State = strings.TrimSpace(in.State)
	a.ZipCode = strings.TrimSpace(in.ZipCode)
	a.Phone = strings.TrimSpace(in.Phone)
	a.IsDefault = in.IsDefault
}

// AddAddress stores an address directly, bypassing HTTP.
func (s *Server) AddAddress(in models.AddressInput) models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAddressLocked(in)
}

func (s *Server) addAddressLocked(in models.AddressInput) models.Address {
	if in.IsDefault {
		s.clearDefaultLocked()
	}
	address := models.Address{ID: primitive.NewObjectID().Hex()}
	applyAddressInput(&address, in)
	s.profile.Addresses = append(s.profile.Addresses, address)
	s.ensureDefaultLocked()
	return s.profile.Addresses[len(s.profile.Addresses)-1]
}

func (s *Server) createAddress(c *gin.Context) {
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "All address fields are required")
		return
	}

	s.mu.Lock()
	address := s.addAddressLocked(req)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": address})
}

func (s *Server) updateAddress(c *gin.Context) {
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "All address fields are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.addressIndexLocked(strings.TrimSpace(c.Param("id")))
	if index == -1 {
		respondWithError(c, s.logger, http.StatusNotFound, route(c), "Address not found")
		return
	}

	if req.IsDefault {
		s.clearDefaultLocked()
	}
	applyAddressInput(&s.profile.Addresses[index], req)
	s.ensureDefaultLocked()

	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": s.profile.Addresses[index]})
}

func (s *Server) deleteAddress(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.addressIndexLocked(strings.TrimSpace(c.Param("id")))
	if index == -1 {
		respondWithError(c, s.logger, http.StatusNotFound, route(c), "Address not found")
		return
	}
	if s.profile.Addresses[index].IsDefault && len(s.profile.Addresses) > 1 {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Cannot delete default address")
		return
	}

	s.profile.Addresses = append(s.profile.Addresses[:index], s.profile.Addresses[index+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	s.mu.Unlock()

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.GetString(middleware.UserIDKey) != s.profile.ID {
		respondWithError(c, s.logger, http.StatusForbidden, route(c), "Order belongs to another user")
		return
	}
	for _, o := range s.orders {
		if o.ID == id {
			c.JSON(http.StatusOK, gin.H{"order": o})
			return
		}
	}
	respondWithError(c, s.logger, http.StatusNotFound, route(c), "Order not found")
}
