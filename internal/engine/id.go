package engine

import "github.com/google/uuid"

// newReceiptID returns a unique receipt identifier.
func newReceiptID() string {
	return uuid.NewString()
}
