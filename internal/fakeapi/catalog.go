package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// AddProduct stores p in the catalog, assigning an ObjectID when p has no id.
func (s *Server) AddProduct(p models.Product) models.Product {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return p
}

func (s *Server) findProductLocked(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func matchesSearch(p models.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func matchesCategories(p models.Product, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if p.Category.Contains(c) {
			return true
		}
	}
	return false
}

func parseCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) listProducts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	categories := parseCategories(c.Query("category"))

	minRating := 0.0
	if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid rating filter")
			return
		}
		minRating = parsed
	}

	sortOrder := c.Query("sort")
	if sortOrder != "" && sortOrder != "priceLowToHigh" && sortOrder != "priceHighToLow" {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid sort order")
		return
	}

	page, limit, paged, err := parsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, route(c), "Invalid pagination params")
		return
	}

	s.mu.Lock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesSearch(p, term) && matchesCategories(p, categories) && p.Rating >= minRating {
			products = append(products, p)
		}
	}
	s.mu.Unlock()

	switch sortOrder {
	case "priceLowToHigh":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) })
	case "priceHighToLow":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) })
	}

	if paged {
		products = paginate(products, page, limit)
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) getProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	s.mu.Lock()
	product, ok := s.findProductLocked(id)
	s.mu.Unlock()

	if !ok {
		respondWithError(c, s.logger, http.StatusNotFound, route(c), "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
