package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
)

// Categories lists the selectable product categories. "All" is the search wildcard.
var Categories = []string{"All", "Food", "Drink", "Snack", "Merch", "Other"}

const CategoryAll = "All"

// Product is a sellable item. Line items copy Name and Price at first tap, so
// later edits never reach recorded sales.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Active   bool            `json:"active"`
}

// Validate trims the product in place and checks price > 0 and cost >= 0.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}

	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	}

	if p.Cost.IsNegative() {
		return fmt.Errorf("%w: cost cannot be negative", ErrInvalidProduct)
	}

	return nil
}

// Matches reports whether the product passes the live-screen filter:
// case-insensitive name substring and an exact category unless category is All or blank.
func (p Product) Matches(query, category string) bool {
	if category != "" && category != CategoryAll && p.Category != category {
		return false
	}

	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(query)))
}
