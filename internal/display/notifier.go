package display

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
)

var _ domain.Notifier = (*LineNotifier)(nil)

// LineNotifier writes notifications to a plain writer, one styled line
// each, for commands that run without the console.
type LineNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineNotifier creates a notifier that writes to w.
func NewLineNotifier(w io.Writer) *LineNotifier {
	return &LineNotifier{w: w}
}

// Notify writes a completion line.
func (n *LineNotifier) Notify(ctx context.Context, message string) error {
	return n.write(chatStyle.Render(message))
}

// NotifyUrgent writes a refund or alert line.
func (n *LineNotifier) NotifyUrgent(ctx context.Context, message string) error {
	return n.write(urgentOutputStyle.Render(message))
}

func (n *LineNotifier) write(line string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintln(n.w, line); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}
