// Package anvil is a small web application framework for server-rendered
// Go applications.
//
// It provides pattern-based HTTP routing, cookie sessions backed by a
// database, HTML template rendering, and a generated admin interface for
// managing application data.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log/slog"
//	    "os"
//
//	    "github.com/anvilweb/anvil"
//	    "github.com/anvilweb/anvil/middlewares"
//	)
//
//	type pages struct{}
//
//	func (pages) Routes(r anvil.Router) {
//	    r.GET("/", func(c anvil.Context) (*anvil.Response, error) {
//	        return anvil.HTML("<h1>hello</h1>"), nil
//	    })
//	    r.GET("/articles/<slug>/", func(c anvil.Context) (*anvil.Response, error) {
//	        return anvil.String(c.Param("slug")), nil
//	    })
//	}
//
//	func main() {
//	    log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//
//	    app := anvil.New(
//	        anvil.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	        anvil.WithHandlers(pages{}),
//	    )
//
//	    if err := app.Run(":8080", anvil.Logger(log)); err != nil {
//	        log.Error("server failed", slog.Any("error", err))
//	        os.Exit(1)
//	    }
//	}
//
// # Routing
//
// Route patterns are plain paths with named placeholders in angle brackets.
// A placeholder matches one path segment and is available through
// c.Param:
//
//	r.GET("/users/<id>/posts/<post_id>/", handler)
//
// Routes match in registration order; the first pattern whose methods
// include the request method wins. Registering the same pattern again
// replaces the handler in place.
//
// # Sessions and Auth
//
// Sessions are opaque tokens stored server-side (GORM or Redis) and
// delivered in a cookie. The auth package builds login, logout, and
// access guards on top of them.
//
// # Admin
//
// The admin package generates list, create, edit, and delete pages for
// any type implementing entity.Entity, with form decoding, password
// hashing, and reference fields handled by the framework.
//
// See the examples directory for a complete application.
package anvil
