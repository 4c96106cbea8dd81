package redis

import (
	"sync"

	"edu-platform/biz/infrastructure/config"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

var instance *redis.Redis
var once sync.Once

// GetRedis returns the process-wide redis client.
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}
