// Package inventory tracks ingredient stock.
package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

// DefaultLevel is the starting quantity of every ingredient.
const DefaultLevel = 15

// Compile-time interface check.
var _ domain.InventoryReader = (*Inventory)(nil)

// Option configures an Inventory.
type Option func(*Inventory)

// WithLevels replaces the default starting stock.
func WithLevels(q domain.Quantities) Option {
	return func(inv *Inventory) {
		inv.levels = q
	}
}

// Inventory holds non-negative stock for each ingredient. Safe for
// concurrent access.
type Inventory struct {
	mu     sync.RWMutex
	levels domain.Quantities
	log    *logger.Logger
}

// New creates an inventory with DefaultLevel of every ingredient.
func New(log *logger.Logger, opts ...Option) *Inventory {
	inv := &Inventory{
		levels: domain.NewQuantities(DefaultLevel, DefaultLevel, DefaultLevel, DefaultLevel),
		log:    log,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Restock adds the given amounts. All four must parse to non-negative
// integers; on any failure nothing is changed.
func (inv *Inventory) Restock(coffee, milk, sugar, chocolate string) error {
	raw := [domain.NumIngredients]string{coffee, milk, sugar, chocolate}

	var add domain.Quantities
	for _, ing := range domain.Ingredients {
		n, err := parseAmount(ing, raw[ing])
		if err != nil {
			inv.log.Warn("restock rejected: %v", err)
			return err
		}
		add[ing] = n
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, ing := range domain.Ingredients {
		if inv.levels[ing] > math.MaxInt-add[ing] {
			return fmt.Errorf("%s: adding %d overflows stock: %w", ing, add[ing], domain.ErrInvalidInput)
		}
	}
	for _, ing := range domain.Ingredients {
		inv.levels[ing] += add[ing]
	}

	inv.log.Info("restocked %v, now %v", add, inv.levels)
	return nil
}

// HasEnough reports whether every ingredient r needs is in stock.
func (inv *Inventory) HasEnough(r domain.Recipe) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.hasEnough(r)
}

// Consume deducts r's amounts. It refuses, changing nothing, when stock
// is short, so levels never go negative.
func (inv *Inventory) Consume(r domain.Recipe) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if !inv.hasEnough(r) {
		return fmt.Errorf("consume %s: %w", r.Name, domain.ErrInsufficientStock)
	}
	for _, ing := range domain.Ingredients {
		inv.levels[ing] -= r.Amounts[ing]
	}
	inv.log.Debug("consumed %s, now %v", r.Name, inv.levels)
	return nil
}

// Levels returns a snapshot of current stock.
func (inv *Inventory) Levels() domain.Quantities {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.levels
}

// Report renders stock one ingredient per line in fixed order.
func (inv *Inventory) Report() string {
	levels := inv.Levels()

	var b strings.Builder
	for _, ing := range domain.Ingredients {
		fmt.Fprintf(&b, "%s: %d\n", ing, levels[ing])
	}
	return b.String()
}

// hasEnough checks stock. Caller must hold the lock.
func (inv *Inventory) hasEnough(r domain.Recipe) bool {
	for _, ing := range domain.Ingredients {
		if inv.levels[ing] < r.Amounts[ing] {
			return false
		}
	}
	return true
}

func parseAmount(ing domain.Ingredient, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s amount %q is not a number: %w", ing, s, domain.ErrInvalidInput)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s amount %d must be non-negative: %w", ing, n, domain.ErrInvalidInput)
	}
	return n, nil
}
