package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds a running total that always equals the sum of
// round(item.price * item.quantity, 2) over all items. The total is
// maintained incrementally on every mutation, never recomputed lazily.
// Version backs optimistic locking on save.
type Cart struct {
	ID        int64           `json:"id"`
	Total     decimal.Decimal `json:"total"`
	Version   int             `json:"-"`
	Items     []CartItem      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CartItem is one line in a cart. Two items are the same line when they
// reference the same product and the same variant (or both have none).
type CartItem struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Product  ProductRef      `json:"product"`
	Variant  *VariantRef     `json:"variant,omitempty"`
}

type ProductRef struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type VariantRef struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Price           decimal.Decimal   `json:"price"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

// SameLine reports whether the item matches the given (product, variant)
// identity. A variant must be present or absent on both sides.
func (it CartItem) SameLine(productID int64, variantID *int64) bool {
	if it.Product.ID != productID {
		return false
	}
	if it.Variant == nil {
		return variantID == nil
	}
	return variantID != nil && it.Variant.ID == *variantID
}

// LineTotal is the item's contribution to the cart total, rounded to two
// decimal places.
func (it CartItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
}
