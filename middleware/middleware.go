// Package middleware provides optional per-request wrappers for a protocol
// client connection: logging, opt-in retry, rate limiting, metrics.
//
// The core client never retries, logs, or throttles on its own; everything
// here is installed explicitly by the caller at construction time.
package middleware

import (
	"context"

	"tbv-rpc/message"
)

// HandlerFunc executes one request against the server and returns its
// response. The innermost handler is the connection's own exchange.
type HandlerFunc func(ctx context.Context, req *message.Request) *message.Response

// Middleware wraps a handler with additional behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares into one. Chain(A, B, C)(h) runs A outermost:
// A.before → B.before → C.before → h → C.after → B.after → A.after.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
