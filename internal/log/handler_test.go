package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/one-love/onelove/internal/middleware"
	"github.com/one-love/onelove/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsCorrelationID(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	ctx := middleware.NewContextWithCorrelationID(context.Background(), "some-id")
	logger.InfoContext(ctx, "info")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "some-id", got[middleware.RequestLoggerKeyCorrelationID])
}

func TestContextHandler_AddsUser(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	ctx := model.NewContextWithUser(context.Background(), &model.User{ID: 1, Email: "user@example.com"})
	logger.InfoContext(ctx, "info")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	user, ok := got[middleware.RequestLoggerKeyUser].(map[string]any)
	require.True(t, ok, "want log line to have key `user`")
	assert.Equal(t, "user@example.com", user["email"])
}

func TestContextHandler_NoContextValues(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	logger.Info("info")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	_, ok := got[middleware.RequestLoggerKeyCorrelationID]
	assert.False(t, ok)
	_, ok = got[middleware.RequestLoggerKeyUser]
	assert.False(t, ok)
}
