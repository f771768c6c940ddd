package chime

import (
	"encoding/binary"
	"math"
	"time"
)

// Synthesize renders tones as signed 16-bit little-endian mono PCM.
// Each tone gets a short linear fade so consecutive tones don't click.
func Synthesize(tones []Tone) []byte {
	var total int
	for _, t := range tones {
		total += samplesFor(t)
	}

	pcm := make([]byte, 0, total*2)
	for _, t := range tones {
		n := samplesFor(t)
		fade := n / 10
		vol := math.Max(0, math.Min(1, t.Volume))

		for i := 0; i < n; i++ {
			env := 1.0
			if fade > 0 {
				if i < fade {
					env = float64(i) / float64(fade)
				} else if i >= n-fade {
					env = float64(n-1-i) / float64(fade)
				}
			}
			v := math.Sin(2*math.Pi*t.Frequency*float64(i)/SampleRate) * vol * env
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(v*math.MaxInt16)))
		}
	}
	return pcm
}

func samplesFor(t Tone) int {
	if t.Duration <= 0 {
		return 0
	}
	return int(int64(t.Duration) * SampleRate / int64(time.Second))
}
