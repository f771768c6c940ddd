// Package engine implements the coffee maker: recipe management, restocking
// and the purchase state machine.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/inventory"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

// Option configures the engine.
type Option func(*Engine)

// WithNotifier sets where purchase outcomes are reported.
func WithNotifier(n domain.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// SalesSummary totals the purchases seen by an engine.
type SalesSummary struct {
	Completed int
	Refunded  int
	Revenue   int
}

// Engine is the coffee maker. One mutex covers every operation, so a
// purchase's funds check, stock check and decrement are never interleaved
// with another purchase, restock or recipe change.
type Engine struct {
	mu       sync.Mutex
	book     *recipe.Book
	inv      *inventory.Inventory
	notifier domain.Notifier
	log      *logger.Logger
	sales    SalesSummary
}

// New creates a coffee maker with the given dependencies and options.
func New(book *recipe.Book, inv *inventory.Inventory, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		book: book,
		inv:  inv,
		log:  log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddRecipe stores r in the first free slot. It returns false when the
// book is full, the name is taken, or r is invalid.
func (e *Engine) AddRecipe(ctx context.Context, r domain.Recipe) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.book.Add(r); err != nil {
		e.log.Warn("add recipe %q: %v", r.Name, err)
		return false
	}
	return true
}

// AddRecipeErr is AddRecipe with the rejection reason.
func (e *Engine) AddRecipeErr(ctx context.Context, r domain.Recipe) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Add(r)
}

// EditRecipe replaces the recipe at index and returns the previous name.
// It returns false if there is no recipe at index.
func (e *Engine) EditRecipe(ctx context.Context, index int, r domain.Recipe) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Edit(index, r)
}

// DeleteRecipe removes the recipe at index and returns its name. It
// returns false if there is no recipe at index.
func (e *Engine) DeleteRecipe(ctx context.Context, index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Delete(index)
}

// Recipes returns every slot in index order.
func (e *Engine) Recipes(ctx context.Context) []recipe.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Slots()
}

// AddInventory restocks all four ingredients or none of them.
func (e *Engine) AddInventory(ctx context.Context, coffee, milk, sugar, chocolate string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.inv.Restock(coffee, milk, sugar, chocolate); err != nil {
		return fmt.Errorf("adding inventory: %w", err)
	}
	return nil
}

// CheckInventory returns the stock report.
func (e *Engine) CheckInventory(ctx context.Context) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv.Report()
}

// Inventory exposes stock levels for read-only consumers.
func (e *Engine) Inventory() domain.InventoryReader {
	return e.inv
}

// MakeCoffee purchases the recipe at selection and returns the change.
// On any refund the full amountPaid is returned.
func (e *Engine) MakeCoffee(ctx context.Context, selection, amountPaid int) int {
	return e.Purchase(ctx, selection, amountPaid).Change
}

// Purchase runs one purchase to completion. It never fails: the result
// is either Completed with change paid-price, or Refunded with the full
// payment and a reason.
func (e *Engine) Purchase(ctx context.Context, selection, amountPaid int) domain.Receipt {
	e.mu.Lock()
	receipt := e.purchase(selection, amountPaid)
	if receipt.Completed() {
		e.sales.Completed++
		e.sales.Revenue += receipt.Paid - receipt.Change
	} else {
		e.sales.Refunded++
	}
	e.mu.Unlock()

	e.notify(ctx, receipt)
	return receipt
}

// purchase decides the outcome. Caller must hold the lock.
func (e *Engine) purchase(selection, paid int) domain.Receipt {
	receipt := domain.Receipt{
		ID:      newReceiptID(),
		Slot:    selection,
		Paid:    paid,
		Change:  paid,
		Outcome: domain.Refunded,
	}

	if paid < 0 {
		receipt.Reason = domain.ErrInvalidPayment
		return e.refund(receipt)
	}

	r, ok := e.book.Get(selection)
	if !ok {
		receipt.Reason = domain.ErrInvalidSelection
		return e.refund(receipt)
	}
	receipt.Recipe = r.Name

	if paid < r.Price {
		receipt.Reason = domain.ErrInsufficientFunds
		return e.refund(receipt)
	}

	if err := e.inv.Consume(r); err != nil {
		receipt.Reason = domain.ErrInsufficientStock
		return e.refund(receipt)
	}

	receipt.Outcome = domain.Completed
	receipt.Change = paid - r.Price
	e.log.Info("receipt %s: %s completed, paid %d, change %d", receipt.ID, r.Name, paid, receipt.Change)
	return receipt
}

func (e *Engine) refund(receipt domain.Receipt) domain.Receipt {
	e.log.Info("receipt %s: slot %d refunded %d (%v)", receipt.ID, receipt.Slot, receipt.Paid, receipt.Reason)
	return receipt
}

// Sales returns running purchase totals.
func (e *Engine) Sales(ctx context.Context) SalesSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sales
}

// notify reports a receipt. Delivery failures are logged only; they never
// change the outcome.
func (e *Engine) notify(ctx context.Context, r domain.Receipt) {
	if e.notifier == nil {
		return
	}

	var err error
	if r.Completed() {
		err = e.notifier.Notify(ctx, fmt.Sprintf("Enjoy your %s! Change: %d", r.Recipe, r.Change))
	} else {
		err = e.notifier.NotifyUrgent(ctx, fmt.Sprintf("Refunded %d: %v", r.Paid, r.Reason))
	}
	if err != nil {
		e.log.Error("notifying receipt %s: %v", r.ID, err)
	}
}
