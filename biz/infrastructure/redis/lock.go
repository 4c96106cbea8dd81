package redis

import (
	"context"

	"edu-platform/biz/infrastructure/config"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

type ILocker interface {
	// TryLock runs fn only if the lock on key was acquired.
	TryLock(ctx context.Context, key string, expireSeconds int, fn func(ctx context.Context) error) (bool, error)
}

type Locker struct {
	rds *redis.Redis
}

func NewLocker(config *config.Config) *Locker {
	return &Locker{rds: GetRedis(config)}
}

func NewLockerWithRedis(rds *redis.Redis) *Locker {
	return &Locker{rds: rds}
}

func (l *Locker) TryLock(ctx context.Context, key string, expireSeconds int, fn func(ctx context.Context) error) (bool, error) {
	lock := redis.NewRedisLock(l.rds, key)
	lock.SetExpire(expireSeconds)
	ok, err := lock.AcquireCtx(ctx)
	if err != nil || !ok {
		return false, err
	}
	defer func() {
		_, _ = lock.ReleaseCtx(context.Background())
	}()
	return true, fn(ctx)
}
