package catalog

import (
	"errors"
	"strings"

	"farmer-hub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrListingIncomplete = errors.New("listing name and description are required")
	ErrNonPositivePrice  = errors.New("listing price must be greater than zero")
	ErrUnknownCategory   = errors.New("unknown listing category")
)

// Catalog holds the in-memory product listings in insertion order.
// Listings are immutable once added; there are no edit or delete operations.
type Catalog struct {
	logger   *zap.Logger
	products []domain.Product
}

// New creates an empty catalog.
func New(logger *zap.Logger) *Catalog {
	return &Catalog{logger: logger}
}

// Seed inserts the starter listings if the catalog is empty. The catalog is
// not persisted across runs, so every boot of an empty catalog reseeds the
// same six products.
func (c *Catalog) Seed() {
	if len(c.products) > 0 {
		return
	}

	starters := []struct {
		name, description string
		category          domain.Category
		price             float64
		listedBy          string
	}{
		{"Organic Apples", "Freshly picked Himalayan apples.", domain.CategoryFruits, 150.0, "vendor1"},
		{"Farm Tomatoes", "Juicy red tomatoes from local farm.", domain.CategoryVegetables, 35.0, "vendor2"},
		{"Basmati Rice (10kg)", "Aged Basmati rice, premium quality.", domain.CategoryGrains, 800.0, "vendor3"},
		{"Bananas (Dwarf Cavendish)", "Sweet and nutritious bananas.", domain.CategoryFruits, 60.0, "vendor1"},
		{"Spinach (Palak)", "Leafy green spinach, 1kg bundle.", domain.CategoryVegetables, 40.0, "vendor2"},
		{"Wheat Flour (Atta)", "Whole wheat atta, 5kg bag.", domain.CategoryGrains, 250.0, "vendor3"},
	}

	for _, s := range starters {
		c.products = append(c.products, domain.Product{
			ID:          uuid.New(),
			Name:        s.name,
			Description: s.description,
			Category:    s.category,
			Price:       s.price,
			ListedBy:    s.listedBy,
		})
	}

	c.logger.Info("Seeded catalog", zap.Int("products", len(c.products)))
}

// List returns the listings matching the category filter in insertion order.
// CategoryAll (or an empty filter) returns everything.
func (c *Catalog) List(filter domain.Category) []domain.Product {
	if filter == "" || filter == domain.CategoryAll {
		return append([]domain.Product(nil), c.products...)
	}

	var matched []domain.Product
	for _, p := range c.products {
		if p.Category == filter {
			matched = append(matched, p)
		}
	}
	return matched
}

// Add validates and appends a new listing. Names are not unique: two
// listings may share a name, and the cart deliberately merges them into one
// line.
func (c *Catalog) Add(name, description string, category domain.Category, price float64, listedBy string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" || description == "" {
		return nil, ErrListingIncomplete
	}
	if price <= 0 {
		return nil, ErrNonPositivePrice
	}
	if !category.Valid() {
		return nil, ErrUnknownCategory
	}

	product := domain.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		ListedBy:    listedBy,
	}
	c.products = append(c.products, product)

	c.logger.Info("Listed product",
		zap.String("name", product.Name),
		zap.String("category", string(product.Category)),
		zap.String("listed_by", product.ListedBy),
	)
	return &product, nil
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.products)
}
