package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSONHandler_PrettyPrint(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&b, &PrettyJSONHandlerOptions{PrettyPrint: true}))

	logger.Info("info", "key", "value")

	out := b.String()
	assert.True(t, strings.Contains(out, "\n"), "want indented output")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "value", got["key"])
}

func TestPrettyJSONHandler_Default(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&b, nil))

	logger.Info("info", "key", "value")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "value", got["key"])
}
