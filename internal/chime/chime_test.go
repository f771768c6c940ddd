package chime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSynthesizeLength(t *testing.T) {
	tones := []Tone{
		{Frequency: 440, Duration: 100 * time.Millisecond, Volume: 0.5},
		{Frequency: 880, Duration: 50 * time.Millisecond, Volume: 0.5},
		{Frequency: 880, Duration: 0, Volume: 0.5},
	}
	pcm := Synthesize(tones)

	// 16-bit mono: two bytes per sample.
	assert.Len(t, pcm, (2400+1200)*2)
}

func TestSynthesizeFadesIn(t *testing.T) {
	pcm := Synthesize([]Tone{{Frequency: 1000, Duration: 10 * time.Millisecond, Volume: 1}})
	require.NotEmpty(t, pcm)
	assert.Equal(t, []byte{0, 0}, pcm[:2])
}

type fakeSpeaker struct {
	mu     sync.Mutex
	played [][]byte
	stops  int
	err    error
}

func (s *fakeSpeaker) Play(pcm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, pcm)
	return s.err
}

func (s *fakeSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
}

type textRecorder struct {
	normal, urgent []string
	err            error
}

func (r *textRecorder) Notify(ctx context.Context, message string) error {
	r.normal = append(r.normal, message)
	return r.err
}

func (r *textRecorder) NotifyUrgent(ctx context.Context, message string) error {
	r.urgent = append(r.urgent, message)
	return r.err
}

func TestChimingNotifier(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	text := &textRecorder{}
	speaker := &fakeSpeaker{}
	n := NewChimingNotifier(text, speaker, log)
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, "Enjoy your Latte!"))
	require.NoError(t, n.NotifyUrgent(ctx, "Refunded 20"))
	n.Wait()

	assert.Equal(t, []string{"Enjoy your Latte!"}, text.normal)
	assert.Equal(t, []string{"Refunded 20"}, text.urgent)
	assert.Len(t, speaker.played, 2)
	assert.Equal(t, 2, speaker.stops)
}

func TestChimingNotifierTextErrorSkipsChime(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	text := &textRecorder{err: errors.New("stdout closed")}
	speaker := &fakeSpeaker{}
	n := NewChimingNotifier(text, speaker, log)

	err := n.Notify(context.Background(), "hello")
	assert.Error(t, err)
	n.Wait()
	assert.Empty(t, speaker.played)
}

func TestChimingNotifierWithNoOp(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	n := NewChimingNotifier(&textRecorder{}, NewNoOp(log), log)

	assert.NoError(t, n.Notify(context.Background(), "ok"))
	n.Wait()
}

// overlapSpeaker records how many Play calls run at once.
type overlapSpeaker struct {
	mu      sync.Mutex
	playing int
	maxSeen int
	plays   int
}

func (s *overlapSpeaker) Play(pcm []byte) error {
	s.mu.Lock()
	s.playing++
	s.plays++
	if s.playing > s.maxSeen {
		s.maxSeen = s.playing
	}
	s.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	s.mu.Lock()
	s.playing--
	s.mu.Unlock()
	return nil
}

func (s *overlapSpeaker) Stop() {}

func TestChimingNotifierNeverOverlaps(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	speaker := &overlapSpeaker{}
	n := NewChimingNotifier(&lockedRecorder{}, speaker, log)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = n.Notify(ctx, "Enjoy your Coffee!")
			} else {
				_ = n.NotifyUrgent(ctx, "[Stock] Milk is running low (2 left).")
			}
		}()
	}
	wg.Wait()
	n.Wait()

	assert.Equal(t, 20, speaker.plays)
	assert.Equal(t, 1, speaker.maxSeen)
}

// lockedRecorder is a text notifier safe for concurrent callers.
type lockedRecorder struct {
	mu sync.Mutex
	n  int
}

func (r *lockedRecorder) Notify(ctx context.Context, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return nil
}

func (r *lockedRecorder) NotifyUrgent(ctx context.Context, message string) error {
	return r.Notify(ctx, message)
}
