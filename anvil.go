package anvil

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/cookie"
	"github.com/anvilweb/anvil/pkg/health"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/session"
	"github.com/anvilweb/anvil/pkg/view"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Response describes what a handler wants written to the client.
	Response = internal.Response

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// HTTPError is an error with an associated HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption customizes an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// Session is a server-side session record.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store

	// SessionManager issues, resolves, and invalidates sessions.
	SessionManager = session.Manager

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// Extractor pulls a string value from a request, trying sources in order.
	Extractor = internal.Extractor

	// ExtractorSource is a single value source for an Extractor.
	ExtractorSource = internal.ExtractorSource
)

// MethodWildcard registers a handler for every HTTP method.
const MethodWildcard = internal.MethodWildcard

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    anvil.WithHandlers(
//	        handlers.NewPages(repo),
//	        adminEngine,
//	    ),
//	)
//
//	err := app.Run(":8080", anvil.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Responses

// String returns a plain text response.
func String(s string) *Response {
	return internal.String(s)
}

// HTML returns a text/html response with a literal body.
func HTML(s string) *Response {
	return internal.HTML(s)
}

// View returns a response rendered through the configured template engine.
// The current session, when one exists, is available to the template as
// .session.
func View(name string, data map[string]any) *Response {
	return internal.View(name, data)
}

// JSON returns an application/json response.
func JSON(v any) *Response {
	return internal.JSON(v)
}

// Redirect returns a 302 redirect to url.
func Redirect(url string) *Response {
	return internal.Redirect(url)
}

// RedirectWithStatus returns a redirect with an explicit status code.
func RedirectWithStatus(code int, url string) *Response {
	return internal.RedirectWithStatus(code, url)
}

// NoContent returns a bodyless response with the given status code.
func NoContent(code int) *Response {
	return internal.NoContent(code)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// ErrBadRequest returns a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized returns a 401 error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden returns a 403 error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound returns a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal returns a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithError attaches an underlying error to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithRequestID attaches a request id to an HTTPError.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError unwraps err to an HTTPError, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
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
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom handler for unmatched requests.
// A zero status on the returned response defaults to 404.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("database", db.Healthcheck(conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	anvil.New(
//	    anvil.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	anvil.New(
//	    anvil.WithCookieOptions(
//	        anvil.WithCookieSecret(os.Getenv("COOKIE_SECRET")),
//	        anvil.WithCookieSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithSession enables server-side session management.
//
// Example:
//
//	manager := session.NewManager(session.NewGormStore(conn))
//	anvil.New(
//	    anvil.WithSession(manager),
//	)
func WithSession(m *SessionManager) Option {
	return internal.WithSession(m)
}

// WithViews sets the template renderer used by View responses.
//
// Example:
//
//	anvil.New(
//	    anvil.WithViews(view.New(view.WithFS(templates), view.WithFS(admin.Templates))),
//	)
func WithViews(r view.Renderer) Option {
	return internal.WithViews(r)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run during server startup.
// Hooks are called in the order they were registered, before the server
// starts accepting connections. If any hook fails, startup aborts and
// Run returns the error.
//
// Example:
//
//	anvil.StartupHook(cleaner.StartFunc())
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	anvil.ShutdownHook(db.Shutdown(conn))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Cookie options

// WithCookieSecret sets the secret for cookie signing.
// Must be at least 32 bytes.
func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookiePath sets the cookie path.
func WithCookiePath(path string) CookieOption {
	return cookie.WithPath(path)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieHTTPOnly sets the HttpOnly flag.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return cookie.WithHTTPOnly(httpOnly)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// Cookie errors for checking return values.
var (
	ErrCookieNotFound = cookie.ErrNotFound
	ErrCookieNoSecret = cookie.ErrNoSecret
	ErrCookieBadSig   = cookie.ErrBadSig
)

// Session errors for checking return values.
var (
	ErrSessionNotConfigured = session.ErrNotConfigured
	ErrSessionNotFound      = session.ErrNotFound
	ErrSessionExpired       = session.ErrExpired
)

// Helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := anvil.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// ParamType constrains the typed parameter helpers.
type ParamType = internal.ParamType

// Param retrieves a typed path parameter.
// Returns the zero value of T if the parameter is missing or unparsable.
func Param[T ParamType](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
// Returns the zero value of T if the parameter is missing or unparsable.
func Query[T ParamType](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a fallback.
func QueryDefault[T ParamType](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// Extractors

// NewExtractor builds an Extractor that tries sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader extracts a value from a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery extracts a value from a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromCookie extracts a value from a cookie.
func FromCookie(name string) ExtractorSource {
	return internal.FromCookie(name)
}

// FromCookieSigned extracts a value from a signed cookie.
func FromCookieSigned(name string) ExtractorSource {
	return internal.FromCookieSigned(name)
}

// FromParam extracts a value from a path parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromForm extracts a value from a form field.
func FromForm(name string) ExtractorSource {
	return internal.FromForm(name)
}

// FromBearerToken extracts a bearer token from the Authorization header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}

// JSONErrorHandler returns an ErrorHandler that answers every handler error
// with a JSON body of the form {"error": message}. The status comes from the
// error when it is an HTTPError, 500 otherwise. Use for API-style apps where
// HTML error pages are unwanted.
//
// Example:
//
//	anvil.New(
//	    anvil.WithErrorHandler(anvil.JSONErrorHandler()),
//	)
func JSONErrorHandler() ErrorHandler {
	return func(c Context, err error) *Response {
		code := http.StatusInternalServerError
		message := "Internal Server Error"
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			code = httpErr.Code
			message = httpErr.Message
		}
		return internal.JSON(map[string]string{"error": message}).WithStatus(code)
	}
}

// API wraps a handler for JSON routes: any error from the handler is caught
// and converted to a 500 response with body {"error": message}, and never
// propagates to the app error handler. Responses without an explicit content
// type default to application/json.
//
// Example:
//
//	r.GET("/api/users/<id>/", anvil.API(h.getUser))
func API(h HandlerFunc) HandlerFunc {
	return func(c Context) (*Response, error) {
		resp, err := h(c)
		if err != nil {
			return internal.JSON(map[string]string{"error": err.Error()}).
				WithStatus(http.StatusInternalServerError), nil
		}
		if resp != nil && resp.ContentType == "" && resp.View == "" && resp.RedirectURL == "" {
			resp.ContentType = internal.ContentTypeJSON
		}
		return resp, nil
	}
}
