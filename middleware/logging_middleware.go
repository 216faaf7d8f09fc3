package middleware

import (
	"context"

	"github.com/rs/zerolog"

	"tbv-rpc/message"
)

// Logging records every request with its round-trip time at debug level and
// failures at warn level. This replaces the original toolkit's global
// experiment event log with an injected sink.
func Logging(log zerolog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) *message.Response {
			resp := next(ctx, req)
			if resp.Err != nil {
				log.Warn().
					Str("request", req.Name).
					Dur("rt", resp.RT).
					Err(resp.Err).
					Msg("request failed")
				return resp
			}
			log.Debug().
				Str("request", req.Name).
				Dur("rt", resp.RT).
				Int("bytes", len(resp.Data)).
				Msg("request completed")
			return resp
		}
	}
}
