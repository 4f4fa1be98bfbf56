package models

import "github.com/shopspring/decimal"

type CartLine struct {
	Product  Product `json:"product"`
	Size     Size    `json:"size"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Key() VariantKey {
	return VariantKey{ProductID: l.Product.ID, Size: l.Size}
}

// Subtotal is price x quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type WishlistEntry struct {
	Product Product `json:"product"`
	Size    Size    `json:"size"`
}

func (e WishlistEntry) Key() VariantKey {
	return VariantKey{ProductID: e.Product.ID, Size: e.Size}
}
