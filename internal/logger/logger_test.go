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

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestJSONLoggerWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", JSON: true, Out: &buf})

	log.Info("Catalog", "record created", map[string]interface{}{"id": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Catalog", entry["component"])
	assert.Equal(t, "record created", entry["message"])
	assert.EqualValues(t, 3, entry["id"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "error", JSON: true, Out: &buf})

	log.Debug("Catalog", "hidden", nil)
	log.Info("Catalog", "hidden", nil)
	log.Warning("Catalog", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("Catalog", errors.New("disk full"), nil)
	assert.Contains(t, buf.String(), "disk full")
}
