// Package middleware provides the Fiber middlewares used by the bucketfs HTTP server.
//
// Each middleware declares a Priority value that determines its execution order:
//
//   - Recovery (1000): Catches panics in the middleware chain
//   - CORS (950): Answers preflight requests from browser clients
//   - Tracing (900): Creates spans for request tracing
//   - Metrics (850): Counts and times requests per route
//   - Timeout (800): Applies timeouts to request contexts, except for streaming routes
//   - MetaInject (700): Injects metadata into the request context
//   - Logger (500): Logs request and response details
//   - ErrorHandler (400): Converts errors to standardized responses
//
// Higher priority values are executed earlier in the request pipeline.
package middleware
