package chime

import "time"

// Audio parameters for generated tones.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Tone is a single beep.
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	Volume    float64 // 0..1
}

// Default melodies. A completed purchase rises, a refund falls.
var (
	CompletedMelody = []Tone{
		{Frequency: 880, Duration: 120 * time.Millisecond, Volume: 0.3},
		{Frequency: 1320, Duration: 180 * time.Millisecond, Volume: 0.3},
	}
	RefundMelody = []Tone{
		{Frequency: 440, Duration: 150 * time.Millisecond, Volume: 0.3},
		{Frequency: 330, Duration: 200 * time.Millisecond, Volume: 0.3},
	}
)
