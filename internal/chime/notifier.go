package chime

import (
	"context"
	"sync"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

// Speaker plays PCM audio. *Player and *NoOp implement it.
type Speaker interface {
	Play(pcm []byte) error
	Stop()
}

// Compile-time interface checks.
var (
	_ domain.Notifier = (*ChimingNotifier)(nil)
	_ Speaker         = (*Player)(nil)
)

// ChimingNotifier wraps a text notifier and plays a melody for each message.
// Messages are printed immediately; audio plays in the background and a new
// chime interrupts one still playing. At most one melody plays at a time.
type ChimingNotifier struct {
	text      domain.Notifier
	speaker   Speaker
	log       *logger.Logger
	completed []byte
	refund    []byte
	wg        sync.WaitGroup
	playMu    sync.Mutex // held for the whole of speaker.Play
}

// NewChimingNotifier creates a notifier that both prints and chimes.
func NewChimingNotifier(text domain.Notifier, speaker Speaker, log *logger.Logger) *ChimingNotifier {
	return &ChimingNotifier{
		text:      text,
		speaker:   speaker,
		log:       log,
		completed: Synthesize(CompletedMelody),
		refund:    Synthesize(RefundMelody),
	}
}

// Notify prints the message and plays the completion melody.
func (n *ChimingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.play(n.completed)
	return nil
}

// NotifyUrgent prints the message and plays the refund melody.
func (n *ChimingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.play(n.refund)
	return nil
}

// Wait blocks until queued chimes have finished.
func (n *ChimingNotifier) Wait() {
	n.wg.Wait()
}

func (n *ChimingNotifier) play(pcm []byte) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		// Cut short whatever is playing, then wait for it to return.
		n.speaker.Stop()
		n.playMu.Lock()
		defer n.playMu.Unlock()

		if err := n.speaker.Play(pcm); err != nil {
			n.log.Error("chime playback: %v", err)
		}
	}()
}
