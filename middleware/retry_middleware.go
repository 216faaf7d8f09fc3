package middleware

import (
	"context"
	"errors"
	"time"

	"tbv-rpc/message"
	"tbv-rpc/protocol"
)

// Retry re-issues a request after a timeout, up to maxRetries times with
// exponential backoff. Only timeouts are retried: a RequestError means the
// request itself is wrong for this server, and after a DataError the stream
// can no longer be trusted, so both return immediately.
func Retry(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) *message.Response {
			resp := next(ctx, req)
			for i := 0; i < maxRetries; i++ {
				var te *protocol.TimeoutError
				if resp.Err == nil || !errors.As(resp.Err, &te) {
					return resp
				}
				select {
				case <-time.After(baseDelay * time.Duration(1<<i)):
				case <-ctx.Done():
					return resp
				}
				resp = next(ctx, req)
			}
			return resp
		}
	}
}
