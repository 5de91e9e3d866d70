package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/middlewares"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an id when none supplied", func(t *testing.T) {
		t.Parallel()

		var seen string
		app := internal.New(
			internal.WithMiddleware(middlewares.RequestID()),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/", func(c internal.Context) (*internal.Response, error) {
					seen = middlewares.GetRequestID(c)
					return nil, nil
				})
			})),
		)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("preserves upstream id", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithMiddleware(middlewares.RequestID()),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/", func(c internal.Context) (*internal.Response, error) {
					return internal.String(middlewares.GetRequestID(c)), nil
				})
			})),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-123")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, "upstream-123", rec.Body.String())
		require.Equal(t, "upstream-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithMiddleware(middlewares.RequestID(
				middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
				middlewares.WithRequestIDResponseHeader("X-Trace"),
			)),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/", func(c internal.Context) (*internal.Response, error) {
					return nil, nil
				})
			})),
		)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})

	t.Run("get without middleware returns empty", func(t *testing.T) {
		t.Parallel()

		var seen string
		app := internal.New(
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/", func(c internal.Context) (*internal.Response, error) {
					seen = middlewares.GetRequestID(c)
					return nil, nil
				})
			})),
		)

		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, seen)
	})
}
