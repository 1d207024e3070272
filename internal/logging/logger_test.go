package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("collector").Info(context.Background(), "resolving request", "name", "alpha")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "resolving request", record["msg"])
	assert.Equal(t, "collector", record["component"])
	assert.Equal(t, "alpha", record["name"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Format: "text", Output: &buf})

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	logger.Error(context.Background(), fmt.Errorf("boom"), "visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	scoped := logger.With("run", "7")
	scoped.Info(context.Background(), "started")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "7", record["run"])
}

func TestNewNop(t *testing.T) {
	// Must be safe to use everywhere a logger is optional.
	nop := NewNop()
	nop.Error(context.Background(), fmt.Errorf("x"), "discarded")
	nop.With("k", "v").WithComponent("c").Info(context.Background(), "discarded")
}
