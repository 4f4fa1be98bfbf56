package fakeapi

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

func seedProduct(name, description string, price int64, rating float64, categories models.StringList, sizes ...string) models.Product {
	return models.Product{
		Name:        name,
		Description: description,
		Price:       decimal.NewFromInt(price),
		Category:    categories,
		Sizes:       sizes,
		Rating:      rating,
	}
}

// Seed fills the catalog and the profile with demo data.
func (s *Server) Seed() {
	products := []models.Product{
		seedProduct("Classic Cotton Tee", "Everyday crew neck tee", 499, 4.3, models.StringList{"Men", "Casual"}, "S", "M", "L", "XL"),
		seedProduct("Slim Fit Chinos", "Stretch cotton chinos", 1299, 4.1, models.StringList{"Men"}, "30", "32", "34"),
		seedProduct("Floral Summer Dress", "Lightweight viscose dress", 1899, 4.6, models.StringList{"Women", "Summer"}, "XS", "S", "M"),
		seedProduct("Denim Jacket", "Washed denim trucker jacket", 2499, 4.4, models.StringList{"Women", "Winter"}, "S", "M", "L"),
		seedProduct("Kids Hoodie", "Fleece lined hoodie", 899, 3.9, models.StringList{"Kids"}, "4Y", "6Y", "8Y"),
		seedProduct("Leather Belt", "Genuine leather belt", 699, 4.0, models.StringList{"Accessories"}),
		seedProduct("Canvas Tote Bag", "Reusable canvas tote", 349, 3.6, models.StringList{"Accessories"}),
		seedProduct("Wool Scarf", "Merino wool scarf", 799, 4.8, models.StringList{"Accessories", "Winter"}),
	}
	for _, p := range products {
		s.AddProduct(p)
	}

	s.AddAddress(models.AddressInput{
		FullName:  "Guest Shopper",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		ZipCode:   "560001",
		Phone:     "9800000000",
		IsDefault: true,
	})
}

// Products returns a copy of the catalog.
func (s *Server) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}
