// Package internal provides the core types and implementation for the Anvil framework.
//
// This package is internal and should not be used directly. Import "github.com/anvilweb/anvil"
// instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, route matching, and graceful shutdown
//   - Context: Provides request/response access, session lookup, and helper methods
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for route handlers returning a *Response and an error
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - Response: The value handlers return; normalized before writing
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Routing
//
// Routes are path templates where <name> placeholders match a single path
// segment and bind it to name:
//
//	r.GET("/posts/<post_id>", h.show)
//
// Routes are tried in registration order. A route answers a request only
// when both its pattern matches the path and its method set contains the
// request method; otherwise matching falls through to later routes. A
// request matching no route gets a 404. Registering an existing pattern
// and method again replaces the handler without changing the match order.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context:
//
//	func (h *PagesHandler) show(c internal.Context) (*internal.Response, error) {
//	    post, err := h.store.Find(c, internal.Param[int](c, "post_id"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return internal.View("post", map[string]any{"post": post}), nil
//	}
//
// # Application Structure
//
// Create an application with New() and configure it using options:
//
//	app := internal.New(
//	    internal.WithHandlers(pagesHandler, adminHandler),
//	    internal.WithSession(sessionManager),
//	    internal.WithViews(engine),
//	)
//
// # Handler Pattern
//
// Handlers implement the Handler interface and declare routes:
//
//	type PagesHandler struct {
//	    store *content.Store
//	}
//
//	func (h *PagesHandler) Routes(r internal.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/posts/<post_id>", h.show)
//	}
//
// Handlers receive dependencies via constructor injection, not context helpers.
// This keeps handler logic explicit and testable.
//
// # Responses
//
// Handlers return a *Response built with the String, HTML, View, JSON,
// Redirect, or NoContent constructors. The dispatcher normalizes the
// result: a zero status becomes 200, an empty content type becomes
// text/html, and view responses are rendered through the configured
// template engine with the current session injected under "session".
// A nil response with a nil error writes 204 No Content.
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func LoggingMiddleware(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) (*internal.Response, error) {
//	        start := time.Now()
//	        resp, err := next(c)
//	        c.LogInfo("request processed", "duration", time.Since(start))
//	        return resp, err
//	    }
//	}
//
// Middleware can inspect the request, short-circuit processing by returning
// its own Response, or decorate the handler's Response. It can be global,
// group-scoped via Route(), or per-route.
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler:
//
//	func customErrorHandler(c internal.Context, err error) *internal.Response {
//	    if httpErr := internal.AsHTTPError(err); httpErr != nil {
//	        return internal.View("error", map[string]any{"error": httpErr.Message}).
//	            WithStatus(httpErr.Code)
//	    }
//	    c.LogError("unhandled error", "error", err)
//	    return internal.String("Internal Server Error").WithStatus(500)
//	}
//
// # Server Runtime
//
// Start the server with Run():
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.StartupHook(cleaner.Start),
//	    internal.ShutdownHook(db.Shutdown(conn)),
//	)
//
// Run blocks until SIGINT or SIGTERM, then shuts down gracefully: the
// HTTP server drains in-flight requests and shutdown hooks run in order.
//
// # Design Principles
//
//   - No magic: Explicit code, no reflection, no service containers
//   - Flat handlers: Business logic in handlers, extract to services only when shared
//   - Constructor injection: All dependencies visible in main.go
//   - Framework, not boilerplate: Provides utilities, not business logic
//
// See the anvil package documentation for the public API and usage examples.
package internal
