package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)

			log.Debug("brewing %s", "debug-line")
			log.Info("brewing %s", "info-line")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug-line")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info-line")))
			assert.Equal(t, tt.level, log.GetLevel())
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)

	log.Error("hidden")
	assert.Zero(t, buf.Len())

	log.SetLevel(LevelNormal)
	log.Error("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelOff, ParseLevel("quiet"))
	assert.Equal(t, LevelVerbose, ParseLevel(" Debug "))
	assert.Equal(t, LevelNormal, ParseLevel("info"))
	assert.Equal(t, LevelNormal, ParseLevel(""))
}
