package internal

import (
	"net/http"
	"slices"
	"strings"
)

// Router is the interface handlers use to declare routes.
// Patterns are path templates where <name> placeholders match a single
// path segment and bind it to name.
type Router interface {
	// Handle registers a handler for the pattern and methods.
	// With no methods, the route answers GET and POST. Passing
	// MethodWildcard accepts any method.
	Handle(pattern string, h HandlerFunc, methods ...string)

	// GET registers a handler for GET requests.
	GET(pattern string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(pattern string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(pattern string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(pattern string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(pattern string, h HandlerFunc, mw ...Middleware)

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix and the
	// group's middleware.
	Route(prefix string, fn func(r Router))

	// Use appends middleware applied to every route registered after it
	// on this router or its groups.
	Use(mw ...Middleware)

	// Mount attaches a plain http.Handler under the given path prefix.
	// Use this for static file servers or third-party handlers.
	Mount(prefix string, h http.Handler)
}

// routerAdapter implements Router over the app's route table.
type routerAdapter struct {
	app    *App
	prefix string
	mw     []Middleware
}

func (r *routerAdapter) Handle(pattern string, h HandlerFunc, methods ...string) {
	r.register(pattern, h, nil, methods...)
}

func (r *routerAdapter) GET(pattern string, h HandlerFunc, mw ...Middleware) {
	r.register(pattern, h, mw, http.MethodGet)
}

func (r *routerAdapter) POST(pattern string, h HandlerFunc, mw ...Middleware) {
	r.register(pattern, h, mw, http.MethodPost)
}

func (r *routerAdapter) PUT(pattern string, h HandlerFunc, mw ...Middleware) {
	r.register(pattern, h, mw, http.MethodPut)
}

func (r *routerAdapter) PATCH(pattern string, h HandlerFunc, mw ...Middleware) {
	r.register(pattern, h, mw, http.MethodPatch)
}

func (r *routerAdapter) DELETE(pattern string, h HandlerFunc, mw ...Middleware) {
	r.register(pattern, h, mw, http.MethodDelete)
}

func (r *routerAdapter) Route(prefix string, fn func(Router)) {
	fn(&routerAdapter{
		app:    r.app,
		prefix: joinPattern(r.prefix, prefix),
		mw:     slices.Clone(r.mw),
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.mw = append(r.mw, mw...)
}

func (r *routerAdapter) Mount(prefix string, h http.Handler) {
	r.app.mount(joinPattern(r.prefix, prefix), h)
}

func (r *routerAdapter) register(pattern string, h HandlerFunc, mw []Middleware, methods ...string) {
	// Route middleware runs outside-in: first registered wraps the rest.
	chain := slices.Clone(r.mw)
	chain = append(chain, mw...)
	slices.Reverse(chain)
	for _, m := range chain {
		h = m(h)
	}

	if err := r.app.routes.add(joinPattern(r.prefix, pattern), h, methods...); err != nil {
		panic(err)
	}
}

func joinPattern(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(pattern, "/")
}
