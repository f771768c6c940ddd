// Package monitor implements the background stock supervisor that watches
// ingredient levels and alerts the operator when one runs low.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

// DefaultThreshold is the level at or below which an ingredient is low.
const DefaultThreshold = 3

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor checks stock.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated alerts for
// the same ingredient.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets how many alerts an ingredient gets before the
// supervisor stops nagging until it is restocked.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithThreshold sets the low-stock level.
func WithThreshold(n int) Option {
	return func(s *Supervisor) {
		s.threshold = n
	}
}

// alert tracks the nagging state of one low ingredient.
type alert struct {
	escalation   int
	lastNotified time.Time
}

// Supervisor runs in the background and reports low stock.
type Supervisor struct {
	stock          domain.InventoryReader
	notifier       domain.Notifier
	log            *logger.Logger
	tickInterval   time.Duration
	notifyCooldown time.Duration
	maxEscalation  int
	threshold      int

	alerts map[domain.Ingredient]*alert

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stock supervisor with the given dependencies and options.
func New(stock domain.InventoryReader, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		stock:          stock,
		notifier:       notifier,
		log:            log,
		tickInterval:   5 * time.Second,
		notifyCooldown: 2 * time.Minute,
		maxEscalation:  3,
		threshold:      DefaultThreshold,
		alerts:         make(map[domain.Ingredient]*alert),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("stock supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(childCtx, s.done)

	s.log.Info("stock supervisor started (tick=%s, cooldown=%s, threshold=%d)", s.tickInterval, s.notifyCooldown, s.threshold)
}

// Stop shuts down the supervisor and waits for the loop to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false
	s.log.Info("stock supervisor stopped")
}

func (s *Supervisor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick runs one cycle. Only the loop goroutine (or a test) calls it, so
// alerts needs no lock.
func (s *Supervisor) tick(ctx context.Context, now time.Time) {
	levels := s.stock.Levels()

	for _, ing := range domain.Ingredients {
		level := levels[ing]
		a, tracked := s.alerts[ing]

		if level > s.threshold {
			if tracked {
				s.log.Debug("stock supervisor: %s back to %d", ing, level)
				delete(s.alerts, ing)
			}
			continue
		}

		if !tracked {
			a = &alert{}
			s.alerts[ing] = a
		}
		if a.escalation >= s.maxEscalation {
			continue // Stop nagging.
		}
		if !a.lastNotified.IsZero() && now.Sub(a.lastNotified) < s.notifyCooldown {
			continue // Cooldown active.
		}

		if err := s.notifier.NotifyUrgent(ctx, s.escalationMessage(ing, level, a.escalation)); err != nil {
			s.log.Error("stock supervisor: notifying low %s: %v", ing, err)
		}
		a.lastNotified = now
		a.escalation++
	}
}

// escalationMessage returns a message based on the escalation level.
func (s *Supervisor) escalationMessage(ing domain.Ingredient, level, escalation int) string {
	switch {
	case level == 0:
		return fmt.Sprintf("[Stock] %s is empty. Restock to keep brewing.", ing)
	case escalation == 0:
		return fmt.Sprintf("[Stock] %s is running low (%d left).", ing, level)
	default:
		return fmt.Sprintf("[Stock] %s still low (%d left).", ing, level)
	}
}
