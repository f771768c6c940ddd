// Package recipe provides the fixed-capacity recipe book.
package recipe

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

// Capacity is the number of recipe slots in a book.
const Capacity = 3

// Slot is a read-only view of one book position.
type Slot struct {
	Index  int
	Recipe *domain.Recipe // nil when the slot is empty
}

// Book holds up to Capacity recipes in stable slots. Deleting a recipe
// frees its slot without shifting the others. Safe for concurrent use.
type Book struct {
	mu    sync.RWMutex
	slots [Capacity]*domain.Recipe
	log   *logger.Logger
}

// NewBook creates an empty recipe book.
func NewBook(log *logger.Logger) *Book {
	return &Book{log: log}
}

// Len returns the number of occupied slots.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, r := range b.slots {
		if r != nil {
			n++
		}
	}
	return n
}

// Add stores a copy of r in the first free slot.
func (b *Book) Add(r domain.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indexOf(r.Name) >= 0 {
		return fmt.Errorf("recipe %q: %w", r.Name, domain.ErrDuplicateRecipe)
	}

	for i, slot := range b.slots {
		if slot == nil {
			b.slots[i] = &r
			b.log.Info("recipe added: %s (slot %d, price %d)", r.Name, i, r.Price)
			return nil
		}
	}

	b.log.Debug("recipe %s rejected, all %d slots taken", r.Name, Capacity)
	return fmt.Errorf("recipe %q: %w", r.Name, domain.ErrBookFull)
}

// Edit replaces the recipe at index and returns the previous name. It
// returns false if the index is out of range, the slot is empty, r is
// invalid, or r's name belongs to a different slot.
func (b *Book) Edit(index int, r domain.Recipe) (string, bool) {
	if err := r.Validate(); err != nil {
		b.log.Debug("edit slot %d rejected: %v", index, err)
		return "", false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.occupied(index)
	if !ok {
		return "", false
	}
	if i := b.indexOf(r.Name); i >= 0 && i != index {
		b.log.Debug("edit slot %d rejected: %q already in slot %d", index, r.Name, i)
		return "", false
	}

	b.slots[index] = &r
	b.log.Info("recipe edited: slot %d %s -> %s", index, prev.Name, r.Name)
	return prev.Name, true
}

// Delete frees the slot at index and returns the removed recipe's name.
func (b *Book) Delete(index int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.occupied(index)
	if !ok {
		return "", false
	}
	b.slots[index] = nil
	b.log.Info("recipe deleted: %s (slot %d)", prev.Name, index)
	return prev.Name, true
}

// Get returns a copy of the recipe at index.
func (b *Book) Get(index int) (domain.Recipe, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.occupied(index)
	if !ok {
		return domain.Recipe{}, false
	}
	return *r, true
}

// Slots returns every slot in index order, empty ones included.
func (b *Book) Slots() []Slot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Slot, Capacity)
	for i, r := range b.slots {
		out[i] = Slot{Index: i}
		if r != nil {
			cp := *r
			out[i].Recipe = &cp
		}
	}
	return out
}

// occupied returns the recipe at index. Caller must hold the lock.
func (b *Book) occupied(index int) (*domain.Recipe, bool) {
	if index < 0 || index >= Capacity || b.slots[index] == nil {
		b.log.Debug("no recipe at slot %d", index)
		return nil, false
	}
	return b.slots[index], true
}

// indexOf returns the slot holding name, or -1. Caller must hold the lock.
func (b *Book) indexOf(name string) int {
	for i, r := range b.slots {
		if r != nil && r.Name == name {
			return i
		}
	}
	return -1
}
