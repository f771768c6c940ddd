package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
)

// ParsePayment validates a payment entered at the console or on the
// command line. Only non-negative base-10 integers are accepted; anything
// else is rejected here and never reaches the purchase logic.
func ParsePayment(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("payment %q is not a whole number: %w", s, domain.ErrInvalidPayment)
	}
	if n < 0 {
		return 0, fmt.Errorf("payment %d is negative: %w", n, domain.ErrInvalidPayment)
	}
	return n, nil
}

// ParseSlot converts a 1-based slot number typed by a person into a
// 0-based book index. Range is checked by the book, not here.
func ParseSlot(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("slot %q is not a number: %w", s, domain.ErrInvalidSelection)
	}
	return n - 1, nil
}
