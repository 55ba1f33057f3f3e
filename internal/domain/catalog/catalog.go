package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Category    string          `json:"category,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedBy   *int64          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Options     []Option        `json:"options,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
}

// Option is a named product attribute (e.g. Color) with an ordered list of
// selectable values.
type Option struct {
	ID        int64         `json:"id"`
	ProductID int64         `json:"product_id"`
	Name      string        `json:"name"`
	Position  int           `json:"position"`
	Values    []OptionValue `json:"values"`
}

type OptionValue struct {
	ID       int64  `json:"id"`
	OptionID int64  `json:"option_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Variant is one concrete combination of option values. Its name is the
// chosen value names joined with "/" in option order. Variants are created
// once and never mutated afterwards.
type Variant struct {
	ID              int64             `json:"id"`
	ProductID       int64             `json:"product_id"`
	Name            string            `json:"name"`
	Price           decimal.Decimal   `json:"price"`
	SelectedOptions map[string]string `json:"selected_options"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
