package client

import (
	"time"

	"github.com/rs/zerolog"

	"tbv-rpc/middleware"
	"tbv-rpc/transport"
)

// Option configures a Connection at construction time.
type Option func(*Connection, *[]middleware.Middleware)

// WithTimeout sets the per-request response budget.
func WithTimeout(d time.Duration) Option {
	return func(c *Connection, _ *[]middleware.Middleware) {
		c.timeout = d
	}
}

// WithLogger injects the event sink for lifecycle logging. The default is a
// no-op logger; the core never reports on its own.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Connection, _ *[]middleware.Middleware) {
		c.log = log
	}
}

// WithTransport substitutes the stream transport, e.g. a scripted one in
// tests or a borrowed pool connection. The caller keeps ownership: Close
// closes it, but a later Connect will not rebuild it from host/port.
func WithTransport(tr transport.Transport) Option {
	return func(c *Connection, _ *[]middleware.Middleware) {
		c.tr = tr
		c.ownTr = false
	}
}

// WithMiddleware installs request middlewares, outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(_ *Connection, chain *[]middleware.Middleware) {
		*chain = append(*chain, mws...)
	}
}
