package models

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount shown to the user.
const CurrencySymbol = "₹"

func init() {
	// The storefront API exchanges prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatPrice renders an amount as "₹1234.50".
func FormatPrice(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}
