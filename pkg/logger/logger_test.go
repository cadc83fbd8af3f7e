package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.raw))
		})
	}
}

func TestNew_AddsEnvAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production")

	l.Info().Str("recipe_id", "abc").Msg("Recipe published")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "abc", entry["recipe_id"])
	assert.Equal(t, "Recipe published", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_WithoutEnv(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "")

	l.Warn().Msg("x")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "env")
}
