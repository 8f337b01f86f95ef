// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// authentication (JWT), role checks, request logging, CORS, rate
// limiting, and panic recovery.
package middleware
