package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesServiceAndFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "cartd", Level: ParseLevel("debug"), Output: buf})

	log.Warn().Err(errors.New("boom")).Str("user_id", "u-1").Msg("remote cart push failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cartd", entry["service"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "warn", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestLoggerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "cartd", Level: zerolog.WarnLevel, Output: buf})

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}
