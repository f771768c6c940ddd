// Package chime plays short audio cues when purchases finish.
package chime

import "github.com/hammamikhairi/coffeemaker/internal/logger"

// Compile-time interface check.
var _ Speaker = (*NoOp)(nil)

// NoOp is a speaker that plays nothing. Used when the chime is disabled
// or no audio device is available.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent speaker.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Play discards the audio.
func (n *NoOp) Play(pcm []byte) error {
	n.log.Debug("chime no-op: would play %d bytes", len(pcm))
	return nil
}

// Stop does nothing.
func (n *NoOp) Stop() {}
