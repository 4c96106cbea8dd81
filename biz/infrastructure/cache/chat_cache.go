package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	chatCachePrefix = "ai_chat"
	chatCacheExpire = 600
)

// IChatCache keeps upstream tutoring answers for repeated questions.
type IChatCache interface {
	Get(ctx context.Context, subject, message string) (string, bool)
	Set(ctx context.Context, subject, message, answer string) error
}

type ChatCache struct {
	rds *gozero_redis.Redis
}

func NewChatCache(config *config.Config) *ChatCache {
	return &ChatCache{
		rds: redis.GetRedis(config),
	}
}

func NewChatCacheWithRedis(rds *gozero_redis.Redis) *ChatCache {
	return &ChatCache{rds: rds}
}

func (m *ChatCache) Get(ctx context.Context, subject, message string) (string, bool) {
	answer, err := m.rds.GetCtx(ctx, m.buildCacheKey(subject, message))
	if err != nil || answer == "" {
		return "", false
	}
	return answer, true
}

func (m *ChatCache) Set(ctx context.Context, subject, message, answer string) error {
	return m.rds.SetexCtx(ctx, m.buildCacheKey(subject, message), answer, chatCacheExpire)
}

func (m *ChatCache) buildCacheKey(subject, message string) string {
	sum := sha256.Sum256([]byte(subject + "\x00" + message))
	return fmt.Sprintf("%s:%s", chatCachePrefix, hex.EncodeToString(sum[:]))
}
