// Package middlewares provides HTTP middleware for Anvil applications.
//
// # Request ID
//
// RequestID middleware assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates new ones.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := anvil.New(
//	    anvil.WithLogger("web", middlewares.RequestIDExtractor()),
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover middleware catches panics and converts them to typed errors.
// The PanicError can be handled by the global ErrorHandler.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.Recover(),
//	    ),
//	    anvil.WithErrorHandler(func(c anvil.Context, err error) *anvil.Response {
//	        if middlewares.IsPanicError(err) {
//	            return anvil.String("Internal Server Error").WithStatus(500)
//	        }
//	        return nil
//	    }),
//	)
//
// # Recommended Middleware Order
//
//	anvil.WithMiddleware(
//	    middlewares.RequestID(), // First: assign ID for all subsequent logging
//	    middlewares.Recover(),   // Second: catch panics from handlers
//	)
package middlewares
