package domain

import "github.com/google/uuid"

// Category classifies a product listing.
type Category string

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryGrains     Category = "Grains"

	// CategoryAll is the filter wildcard, never a listing category.
	CategoryAll Category = "All"
)

// Categories lists the valid listing categories in display order.
func Categories() []Category {
	return []Category{CategoryFruits, CategoryVegetables, CategoryGrains}
}

// Valid reports whether c is a real listing category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFruits, CategoryVegetables, CategoryGrains:
		return true
	}
	return false
}

// Product represents a sellable listing in the catalog.
// Cart aggregation matches products by Name, not ID; the ID exists so a
// future cart design can switch to a stable key without a data migration.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	ListedBy    string    `json:"listed_by"`
}

// CartLine is one aggregated (product, quantity) pair in a cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns the line total (quantity times unit price).
func (l CartLine) Total() float64 {
	return l.Product.Price * float64(l.Quantity)
}
