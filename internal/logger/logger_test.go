package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")

	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Msg("dropped")
	l.Warn().Str("call_id", "abc").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "abc", line["call_id"])
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "loud")

	var buf bytes.Buffer
	l := New(&buf)
	l.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestFormatLevel(t *testing.T) {
	assert.Contains(t, formatLevel("info"), "INF")
	assert.Contains(t, formatLevel("warn"), "WRN")
	assert.Contains(t, formatLevel("custom"), "CUS")
	assert.Equal(t, "???", formatLevel(nil))
}
