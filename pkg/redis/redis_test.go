package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := Connect(ctx, Config{})
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			url  string
		}{
			{"http scheme", "http://localhost:6379"},
			{"no scheme", "localhost:6379"},
			{"postgresql scheme", "postgresql://localhost:6379"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				client, err := Connect(ctx, Config{URL: tt.url})
				require.Nil(t, client)
				require.ErrorIs(t, err, ErrFailedToParseURL)
			})
		}
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			url  string
		}{
			{"invalid port", "redis://localhost:notaport"},
			{"invalid database", "redis://localhost:6379/notanumber"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				client, err := Connect(ctx, Config{URL: tt.url})
				require.Nil(t, client)
				require.ErrorIs(t, err, ErrFailedToParseURL)
			})
		}
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("reachable server", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client, err := Connect(context.Background(), Config{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("unreachable server exhausts retries", func(t *testing.T) {
		t.Parallel()

		client, err := Connect(context.Background(), Config{
			URL:           "redis://127.0.0.1:1",
			RetryAttempts: 1,
			RetryInterval: 10 * time.Millisecond,
			DialTimeout:   50 * time.Millisecond,
		})
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrConnectionFailed)
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	t.Run("zero values are filled", func(t *testing.T) {
		t.Parallel()

		cfg := Config{URL: "redis://localhost:6379"}.withDefaults()
		require.Equal(t, 10, cfg.PoolSize)
		require.Equal(t, 5, cfg.MinIdleConns)
		require.Equal(t, 10*time.Minute, cfg.MaxConnIdleTime)
		require.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
		require.Equal(t, 3, cfg.RetryAttempts)
		require.Equal(t, 5*time.Second, cfg.RetryInterval)
		require.Equal(t, 3*time.Second, cfg.ReadTimeout)
		require.Equal(t, 3*time.Second, cfg.WriteTimeout)
		require.Equal(t, 5*time.Second, cfg.DialTimeout)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			URL:           "redis://localhost:6379",
			PoolSize:      25,
			RetryAttempts: 7,
			RetryInterval: 2 * time.Second,
		}.withDefaults()
		require.Equal(t, 25, cfg.PoolSize)
		require.Equal(t, 7, cfg.RetryAttempts)
		require.Equal(t, 2*time.Second, cfg.RetryInterval)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()

		check := Healthcheck(nil)
		require.ErrorIs(t, check(context.Background()), ErrHealthcheckFailed)
	})

	t.Run("reachable server", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client, err := Connect(context.Background(), Config{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, Healthcheck(client)(context.Background()))
	})
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	t.Run("calls Close on the client", func(t *testing.T) {
		t.Parallel()

		closer := &mockCloser{}
		require.NoError(t, Shutdown(closer)(context.Background()))
		require.True(t, closer.closed)
	})

	t.Run("propagates Close error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("close error")
		closer := &mockCloser{err: expectedErr}
		require.Equal(t, expectedErr, Shutdown(closer)(context.Background()))
		require.True(t, closer.closed)
	})
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := wait(ctx, 10*time.Second)
		require.Equal(t, context.Canceled, err)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("timeout completes normally", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, wait(context.Background(), 50*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}

// mockCloser is a test double for io.Closer.
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

var _ io.Closer = (*mockCloser)(nil)
