package domain

import "context"

// Notifier delivers purchase outcomes and operator messages. Implementations
// can write to a terminal, play a chime, or both.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// CommandParser converts a raw console line into a structured intent.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// InventoryReader exposes current stock levels to read-only consumers
// such as the console status bar.
type InventoryReader interface {
	Levels() Quantities
}
