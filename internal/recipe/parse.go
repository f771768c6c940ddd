package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
)

// Parse builds a recipe from operator-entered strings. Every numeric
// field must be a non-negative base-10 integer.
func Parse(name, price, coffee, milk, sugar, chocolate string) (domain.Recipe, error) {
	r := domain.Recipe{Name: strings.TrimSpace(name)}

	var err error
	if r.Price, err = parseField("price", price); err != nil {
		return domain.Recipe{}, err
	}

	raw := [domain.NumIngredients]string{coffee, milk, sugar, chocolate}
	for _, ing := range domain.Ingredients {
		if r.Amounts[ing], err = parseField(ing.String(), raw[ing]); err != nil {
			return domain.Recipe{}, err
		}
	}

	if err := r.Validate(); err != nil {
		return domain.Recipe{}, err
	}
	return r, nil
}

func parseField(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", field, s, domain.ErrInvalidRecipe)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s %d must be non-negative: %w", field, n, domain.ErrInvalidRecipe)
	}
	return n, nil
}
