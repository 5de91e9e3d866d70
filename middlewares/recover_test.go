package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes a 500", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/boom/", func(c internal.Context) (*internal.Response, error) {
					panic("kaboom")
				})
			})),
		)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("error handler sees the panic error", func(t *testing.T) {
		t.Parallel()

		var caught error
		app := internal.New(
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(c internal.Context, err error) *internal.Response {
				caught = err
				return internal.String("recovered").WithStatus(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/boom/", func(c internal.Context) (*internal.Response, error) {
					panic("kaboom")
				})
			})),
		)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))

		require.Equal(t, "recovered", rec.Body.String())
		require.True(t, middlewares.IsPanicError(caught))

		pe, ok := middlewares.AsPanicError(caught)
		require.True(t, ok)
		require.Equal(t, "kaboom", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()

		var caught error
		app := internal.New(
			internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverDisablePrintStack())),
			internal.WithErrorHandler(func(c internal.Context, err error) *internal.Response {
				caught = err
				return internal.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/boom/", func(c internal.Context) (*internal.Response, error) {
					panic("quiet")
				})
			})),
		)

		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom/", nil))

		pe, ok := middlewares.AsPanicError(caught)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("normal requests pass through", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithHandlers(routesFunc(func(r internal.Router) {
				r.GET("/ok/", func(c internal.Context) (*internal.Response, error) {
					return internal.String("fine"), nil
				})
			})),
		)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "fine", rec.Body.String())
	})
}
