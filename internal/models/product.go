package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Category       StringList      `json:"category"`
	Sizes          []string        `json:"sizes,omitempty"`
	AvailableSizes []string        `json:"availableSizes,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Rating         float64         `json:"rating"`
}

// SizeOptions returns the configured size variants, preferring sizes over the
// legacy availableSizes field. Blank and sentinel entries are skipped.
func (p Product) SizeOptions() []Size {
	raw := p.Sizes
	if len(raw) == 0 {
		raw = p.AvailableSizes
	}
	out := make([]Size, 0, len(raw))
	for _, r := range raw {
		if s := SizeOf(r); !s.IsNone() {
			out = append(out, s)
		}
	}
	return out
}

// DefaultSize is the variant preselected on a product card: the first
// configured size, or NoSize when the product has none.
func (p Product) DefaultSize() Size {
	if opts := p.SizeOptions(); len(opts) > 0 {
		return opts[0]
	}
	return NoSize()
}
