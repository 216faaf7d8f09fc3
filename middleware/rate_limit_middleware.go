package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"tbv-rpc/message"
)

// ErrRateLimited is returned when a request is dropped by the RateLimit
// middleware.
var ErrRateLimited = errors.New("request rate limit exceeded")

// RateLimit drops requests beyond r per second (token bucket with the given
// burst). Stimulus scripts polling between volumes should not flood the
// analysis machine; dropping is preferable to queueing because a delayed
// poll reads a volume that is already stale.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) *message.Response {
			if !limiter.Allow() {
				return &message.Response{Err: ErrRateLimited}
			}
			return next(ctx, req)
		}
	}
}
