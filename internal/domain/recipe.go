// Package domain defines the core types and interfaces for the coffee maker.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// Ingredient is one of the fixed set of ingredients the machine stocks.
type Ingredient int

const (
	Coffee Ingredient = iota
	Milk
	Sugar
	Chocolate

	// NumIngredients is the size of the closed ingredient set.
	NumIngredients = int(Chocolate) + 1
)

// Ingredients lists every ingredient in report order.
var Ingredients = [NumIngredients]Ingredient{Coffee, Milk, Sugar, Chocolate}

// String returns the display name of an ingredient.
func (i Ingredient) String() string {
	switch i {
	case Coffee:
		return "Coffee"
	case Milk:
		return "Milk"
	case Sugar:
		return "Sugar"
	case Chocolate:
		return "Chocolate"
	default:
		return "unknown"
	}
}

// ParseIngredient converts a case-insensitive ingredient name.
func ParseIngredient(name string) (Ingredient, error) {
	for _, ing := range Ingredients {
		if strings.EqualFold(ing.String(), strings.TrimSpace(name)) {
			return ing, nil
		}
	}
	return 0, fmt.Errorf("ingredient %q: %w", name, ErrInvalidInput)
}

// Quantities holds one amount per ingredient. It is a value type: copying
// a Recipe copies its amounts.
type Quantities [NumIngredients]int

// Get returns the amount for an ingredient.
func (q Quantities) Get(i Ingredient) int {
	return q[i]
}

// NewQuantities builds a Quantities in report order.
func NewQuantities(coffee, milk, sugar, chocolate int) Quantities {
	return Quantities{coffee, milk, sugar, chocolate}
}

// Recipe is a named purchasable drink. Treat it as immutable: the recipe
// book stores and hands out copies.
type Recipe struct {
	Name    string
	Price   int
	Amounts Quantities
}

// Validate checks that the recipe has a name and no negative numbers.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidRecipe)
	}
	if r.Price < 0 {
		return fmt.Errorf("price %d is negative: %w", r.Price, ErrInvalidRecipe)
	}
	for _, ing := range Ingredients {
		if r.Amounts[ing] < 0 {
			return fmt.Errorf("%s amount %d is negative: %w", ing, r.Amounts[ing], ErrInvalidRecipe)
		}
	}
	return nil
}
