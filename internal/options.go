package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anvilweb/anvil/pkg/cookie"
	"github.com/anvilweb/anvil/pkg/health"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/session"
	"github.com/anvilweb/anvil/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	anvil.New(
//	    anvil.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.FileServerFS(subFS)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error. The returned response
// replaces the default plain-text error output.
//
// Example:
//
//	anvil.WithErrorHandler(func(c anvil.Context, err error) *anvil.Response {
//	    return anvil.View("error", map[string]any{"error": err.Error()}).
//	        WithStatus(http.StatusInternalServerError)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	anvil.WithNotFoundHandler(func(c anvil.Context) (*anvil.Response, error) {
//	    return anvil.View("404", nil).WithStatus(http.StatusNotFound), nil
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("db", db.Healthcheck(conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, user_id).
//
// Example:
//
//	anvil.New(
//	    anvil.WithLogger("web", requestIDExtractor),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	anvil.New(
//	    anvil.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	anvil.New(
//	    anvil.WithCookieOptions(
//	        cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithSession enables server-side session management.
// The manager owns token issuance, lookup and the session cookie.
// Handlers read the current session via c.Session().
//
// Example:
//
//	store := session.NewGormStore(conn)
//	anvil.New(
//	    anvil.WithSession(session.NewManager(store)),
//	)
func WithSession(m *session.Manager) Option {
	return func(a *App) {
		a.sessionManager = m
	}
}

// WithViews sets the template renderer used for view responses.
// Responses carrying a view name are rendered through it before writing.
//
// Example:
//
//	//go:embed templates
//	var templates embed.FS
//
//	sub, _ := fs.Sub(templates, "templates")
//	engine := view.New(view.WithFS(sub))
//	anvil.New(
//	    anvil.WithViews(engine),
//	)
func WithViews(r view.Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}
