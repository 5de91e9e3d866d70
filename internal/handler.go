package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    store *content.Store
//	}
//
//	func (h *PagesHandler) Routes(r anvil.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/posts/<post_id>", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// The returned Response is normalized and written by the dispatcher;
// a non-nil error triggers the app's error handler instead.
type HandlerFunc func(c Context) (*Response, error)

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing by
// returning its own Response, or decorate the handler's Response.
//
// Example:
//
//	func RequireSession(next anvil.HandlerFunc) anvil.HandlerFunc {
//	    return func(c anvil.Context) (*anvil.Response, error) {
//	        if _, err := c.Session(); err != nil {
//	            return anvil.Redirect("/admin/login/"), nil
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler converts a handler error into a Response.
// Returning nil falls back to a plain 500.
type ErrorHandler func(Context, error) *Response
