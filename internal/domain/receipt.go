package domain

// Outcome is the terminal state of a purchase attempt.
type Outcome int

const (
	// Refunded means nothing was dispensed and the full payment is returned.
	Refunded Outcome = iota
	// Completed means stock was consumed and change is returned.
	Completed
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case Refunded:
		return "refunded"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Receipt records one purchase attempt.
type Receipt struct {
	ID      string
	Slot    int
	Recipe  string // empty when the slot did not resolve
	Paid    int
	Change  int
	Outcome Outcome
	Reason  error // nil when Completed
}

// Completed reports whether the purchase dispensed a drink.
func (r Receipt) Completed() bool {
	return r.Outcome == Completed
}
