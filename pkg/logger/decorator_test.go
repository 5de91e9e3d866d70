package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/pkg/logger"
)

type ctxKey struct{}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("injects extracted attribute", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		extractor := func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(ctxKey{}).(string); ok {
				return slog.String("request_id", v), true
			}
			return slog.Attr{}, false
		}
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), extractor))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-123")
		log.InfoContext(ctx, "hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "req-123", entry["request_id"])
	})

	t.Run("skips attribute when extractor declines", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		extractor := func(ctx context.Context) (slog.Attr, bool) {
			return slog.Attr{}, false
		}
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), extractor))

		log.InfoContext(context.Background(), "hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.NotContains(t, entry, "request_id")
	})

	t.Run("ignores nil extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil))

		require.NotPanics(t, func() {
			log.InfoContext(context.Background(), "hello")
		})
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	require.NotPanics(t, func() {
		log.InfoContext(context.Background(), "discarded")
	})
}
