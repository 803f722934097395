// Package server provides HTTP routing, middleware, and JSON handlers for the grocery API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers "METHOD /path" patterns on [http.ServeMux],
// so path wildcards such as {id} are read with [http.Request.PathValue].
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
//	GET    /health
//	GET    /products            POST /products
//	GET    /products/{id}       PUT  /products/{id}    DELETE /products/{id}
//	GET    /items[?list=N]      POST /items
//	GET    /items/{id}          PUT  /items/{id}       DELETE /items/{id}
//	GET    /lists/{id}          grocery list joined with products, with totals
//
// # Middleware
//
// [RequestLogger] logs each request at debug level, [Recoverer] turns panics into 500 responses and
// [RateLimiter] answers 429 once a shared token bucket is empty.
//
// Missing rows map to 404, validation errors to 400 and unique constraint violations to 409.
package server
