package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/models"
)

type SortOrder string

const (
	SortNone           SortOrder = ""
	SortPriceLowToHigh SortOrder = "priceLowToHigh"
	SortPriceHighToLow SortOrder = "priceHighToLow"
)

// ProductQuery holds the filters the server applies to the catalog.
type ProductQuery struct {
	Search     string
	Categories []string
	MinRating  int
	Sort       SortOrder
}

// Values encodes the query, leaving out every empty filter.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("q", s)
	}

	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	if len(cats) > 0 {
		v.Set("category", strings.Join(cats, ","))
	}

	if q.MinRating > 0 {
		v.Set("rating", strconv.Itoa(q.MinRating))
	}
	if q.Sort != SortNone {
		v.Set("sort", string(q.Sort))
	}
	return v
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/products", query: q.Values()}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []models.Product{}
	}
	return resp.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var resp struct {
		Product *models.Product `json:"product"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + url.PathEscape(id)}, &resp)
	if err != nil {
		return models.Product{}, err
	}
	if resp.Product == nil {
		return models.Product{}, missingField("product")
	}
	return *resp.Product, nil
}
