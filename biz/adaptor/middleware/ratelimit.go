package middleware

import (
	"context"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/redis"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
)

// RateLimit caps requests per client ip. Limiter failures let the request through.
func RateLimit(limiter redis.ILimiter) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		ok, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			log.CtxError(ctx, "rate limit check failed: %v", err)
		} else if !ok {
			adaptor.AbortWithErr(c, consts.ErrTooManyRequests)
			return
		}
		c.Next(ctx)
	}
}
