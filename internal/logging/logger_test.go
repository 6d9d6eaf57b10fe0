package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/logging"
)

func TestNew_StandardizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelInfo, logging.Options{Writer: &buf})

	logger.Info("halted", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNew_FanOutToFile(t *testing.T) {
	var text, file bytes.Buffer
	logger := logging.New(slog.LevelDebug, logging.Options{Writer: &text, File: &file})

	logger.Debug("step", "state", "q1")

	assert.Contains(t, text.String(), "state=q1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &record))
	assert.Equal(t, "step", record["msg"])
	assert.Equal(t, "q1", record["state"])
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelWarn, logging.Options{Writer: &buf})

	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = logging.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}
