package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		log       func(Logger)
		wantLevel string
		wantMsg   string
		shouldLog bool
	}{
		{"info at default verbosity", 0, func(l Logger) { l.Info("hello") }, "info", "hello", true},
		{"warn at default verbosity", 0, func(l Logger) { l.Warn("careful") }, "warn", "careful", true},
		{"error at default verbosity", 0, func(l Logger) { l.Error("broken") }, "error", "broken", true},
		{"debug hidden at default verbosity", 0, func(l Logger) { l.Debug("detail") }, "", "", false},
		{"debug shown at verbosity 1", 1, func(l Logger) { l.Debug("detail") }, "debug", "detail", true},
		{"trace hidden at verbosity 1", 1, func(l Logger) { l.Trace("tick") }, "", "", false},
		{"trace shown at verbosity 2", 2, func(l Logger) { l.Trace("tick") }, "debug", "TRACE: tick", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(Config{Verbosity: tt.verbosity, Output: &buf}))

			if !tt.shouldLog {
				assert.Empty(t, buf.String())
				return
			}

			var got entry
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})

	base.WithFields(Fields{"drawable": "abc", "frame": 3}).Info("drawn")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "abc", got["drawable"])
	assert.Equal(t, float64(3), got["frame"])
	assert.Equal(t, "drawn", got["message"])

	buf.Reset()
	base.Info("plain")
	assert.False(t, strings.Contains(buf.String(), "drawable"))
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	l.Info("ignored")
	l.WithFields(Fields{"k": "v"}).Trace("ignored")
}
