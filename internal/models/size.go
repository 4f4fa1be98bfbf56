package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// noSizeSentinel is the legacy placeholder some API responses use for
// products without size variants.
const noSizeSentinel = "N/A"

// Size is the size variant of a cart or wishlist line. The zero value means
// the product needs no size. Null, "" and "N/A" all decode to the zero value,
// so Size values can be compared with ==.
type Size struct {
	value string
}

// NoSize returns the "no size required" variant.
func NoSize() Size {
	return Size{}
}

// SizeOf normalises a raw size string.
func SizeOf(raw string) Size {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(v, noSizeSentinel) {
		return Size{}
	}
	return Size{value: v}
}

func (s Size) IsNone() bool {
	return s.value == ""
}

// Value returns the concrete size and false for NoSize.
func (s Size) Value() (string, bool) {
	return s.value, s.value != ""
}

func (s Size) String() string {
	if s.IsNone() {
		return "-"
	}
	return s.value
}

func (s Size) MarshalJSON() ([]byte, error) {
	if s.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

func (s *Size) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Size{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SizeOf(raw)
	return nil
}

// VariantKey identifies a distinct cart or wishlist line.
type VariantKey struct {
	ProductID string
	Size      Size
}

func (k VariantKey) String() string {
	return k.ProductID + "#" + k.Size.String()
}
