package redis

import (
	"context"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"

	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

type ILimiter interface {
	// Allow reports whether key still has quota in the current window.
	Allow(ctx context.Context, key string) (bool, error)
}

type Limiter struct {
	period *limit.PeriodLimit
}

func NewLimiter(config *config.Config) *Limiter {
	return NewLimiterWithRedis(GetRedis(config), config.RateLimit.Period, config.RateLimit.Quota)
}

func NewLimiterWithRedis(rds *redis.Redis, period, quota int) *Limiter {
	return &Limiter{
		period: limit.NewPeriodLimit(period, quota, rds, consts.RateLimitKeyPrefix),
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	code, err := l.period.TakeCtx(ctx, key)
	if err != nil {
		return false, err
	}
	return code != limit.OverQuota, nil
}
