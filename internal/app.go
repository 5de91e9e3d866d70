package internal

import (
	"bytes"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/anvilweb/anvil/pkg/cookie"
	"github.com/anvilweb/anvil/pkg/health"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/session"
	"github.com/anvilweb/anvil/pkg/view"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// defaultTemplate is rendered for view responses that don't name one.
const defaultTemplate = "index"

// Baseline CORS headers attached to every response.
var corsBaseline = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Methods":     "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers":     "Content-Type",
	"Access-Control-Allow-Credentials": "true",
}

// App orchestrates the application lifecycle: route matching, middleware,
// response normalization, and graceful shutdown. App is immutable after
// creation; all configuration is done via New().
type App struct {
	routes          *routeTable
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	healthConfig    *healthConfig
	logger          *slog.Logger
	cookieManager   *cookie.Manager
	sessionManager  *session.Manager
	renderer        view.Renderer
	middlewares     []Middleware
	handlers        []Handler
	staticRoutes    []staticRoute
}

// staticRoute represents a plain http.Handler mount point.
type staticRoute struct {
	handler http.Handler
	prefix  string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithSession(sessionManager),
//	    anvil.WithHandlers(
//	        pages.New(store),
//	        admin.New(adminOpts...),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		routes:        newRouteTable(),
		logger:        logger.NewNope(), // Default: noop logger (before options)
		cookieManager: cookie.New(),     // Default: cookie manager (no secret)
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", anvil.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes registers health endpoints and handler routes.
func (a *App) setupRoutes() {
	if a.healthConfig != nil {
		a.mount(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mount(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{app: a, mw: a.middlewares}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// mount registers a plain http.Handler under a path prefix. Mounted
// handlers are consulted before the route table.
func (a *App) mount(prefix string, h http.Handler) {
	a.staticRoutes = append(a.staticRoutes, staticRoute{handler: h, prefix: prefix})
	// Longest prefix wins when mounts overlap.
	sort.SliceStable(a.staticRoutes, func(i, j int) bool {
		return len(a.staticRoutes[i].prefix) > len(a.staticRoutes[j].prefix)
	})
}

// ServeHTTP dispatches a request: the OPTIONS short-circuit first, then
// mounted handlers, then the route table.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Preflight requests answer 204 for every path, mounted or not,
	// and never reach a handler.
	if r.Method == http.MethodOptions {
		writeCORS(w.Header())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	for _, sr := range a.staticRoutes {
		if r.URL.Path == sr.prefix || strings.HasPrefix(r.URL.Path, strings.TrimSuffix(sr.prefix, "/")+"/") {
			sr.handler.ServeHTTP(w, r)
			return
		}
	}

	writeCORS(w.Header())

	h, params, ok := a.routes.match(r.Method, r.URL.Path)
	if !ok {
		a.serveNotFound(w, r)
		return
	}

	c := newContext(w, r, a, params)
	resp, err := h(c)
	if err != nil {
		a.handleError(c, err)
		return
	}
	a.write(c, resp)
}

// serveNotFound renders the configured not-found handler or the fixed
// 404 body.
func (a *App) serveNotFound(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a, nil)
	if a.notFoundHandler != nil {
		resp, err := a.notFoundHandler(c)
		if err != nil {
			a.handleError(c, err)
			return
		}
		if resp != nil && resp.Status == 0 {
			resp.Status = http.StatusNotFound
		}
		a.write(c, resp)
		return
	}
	a.write(c, String("404 Not Found").WithStatus(http.StatusNotFound))
}

// write normalizes and writes a handler response: zero status becomes
// 200, empty content type becomes text/html, and view responses are
// rendered through the template engine with the session injected.
func (a *App) write(c *requestContext, resp *Response) {
	if c.Written() {
		return
	}
	if resp == nil {
		c.response.WriteHeader(http.StatusNoContent)
		return
	}

	if resp.RedirectURL != "" {
		code := resp.Status
		if code == 0 {
			code = http.StatusFound
		}
		header := c.response.Header()
		for name, values := range resp.Headers {
			for _, v := range values {
				header.Add(name, v)
			}
		}
		http.Redirect(c.response, c.request, resp.RedirectURL, code)
		return
	}

	body := resp.Body
	contentType := resp.ContentType

	if resp.View != "" || resp.Data != nil {
		rendered, err := a.render(c, resp)
		if err != nil {
			a.handleError(c, err)
			return
		}
		body = rendered
		if contentType == "" {
			contentType = ContentTypeHTML
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if contentType == "" {
		contentType = ContentTypeHTML
	}

	header := c.response.Header()
	for name, values := range resp.Headers {
		for _, v := range values {
			header.Add(name, v)
		}
	}
	header.Set("Content-Type", contentType)

	c.response.WriteHeader(status)
	if len(body) > 0 {
		_, _ = c.response.Write(body)
	}
}

// render executes the response's template with the session injected
// under "session" when the handler didn't set one.
func (a *App) render(c *requestContext, resp *Response) ([]byte, error) {
	if a.renderer == nil {
		return nil, ErrInternal("no template engine configured")
	}

	name := resp.View
	if name == "" {
		name = defaultTemplate
	}

	data := resp.Data
	if data == nil {
		data = make(map[string]any)
	}
	if _, ok := data["session"]; !ok {
		if sess, err := c.Session(); err == nil {
			data["session"] = sess
		} else {
			data["session"] = nil
		}
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// handleError converts a handler error into a response using the
// configured error handler, falling back to a plain 500.
func (a *App) handleError(c *requestContext, err error) {
	if c.Written() {
		return
	}

	if a.errorHandler != nil {
		if resp := a.errorHandler(c, err); resp != nil {
			a.write(c, resp)
			return
		}
	}

	status := http.StatusInternalServerError
	if httpErr := AsHTTPError(err); httpErr != nil {
		status = httpErr.Code
	}
	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(c.Context(), "request failed",
			slog.String("path", c.request.URL.Path),
			slog.Any("error", err),
		)
	}
	http.Error(c.response, http.StatusText(status), status)
}

func writeCORS(h http.Header) {
	for name, value := range corsBaseline {
		h.Set(name, value)
	}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	anvil.WithReadinessCheck("db", db.Healthcheck(conn))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
