package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/redis"
	"edu-platform/biz/infrastructure/relay"
	"edu-platform/biz/infrastructure/util/log"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	classHistoryPrefix = "class_chat"
	classHistoryLimit  = 100
	classHistoryExpire = 7 * 24 * 3600
)

// IClassHistory keeps the latest chat messages of each class.
type IClassHistory interface {
	Append(ctx context.Context, msg *relay.ChatMessage) error
	// Recent returns up to limit messages, oldest first.
	Recent(ctx context.Context, classID string, limit int) ([]*relay.ChatMessage, error)
}

type ClassHistory struct {
	rds *gozero_redis.Redis
}

func NewClassHistory(config *config.Config) *ClassHistory {
	return &ClassHistory{
		rds: redis.GetRedis(config),
	}
}

func NewClassHistoryWithRedis(rds *gozero_redis.Redis) *ClassHistory {
	return &ClassHistory{rds: rds}
}

func (h *ClassHistory) Append(ctx context.Context, msg *relay.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := h.buildCacheKey(msg.ClassID)
	if _, err = h.rds.LpushCtx(ctx, key, string(data)); err != nil {
		return err
	}
	if err = h.rds.LtrimCtx(ctx, key, 0, classHistoryLimit-1); err != nil {
		return err
	}
	return h.rds.ExpireCtx(ctx, key, classHistoryExpire)
}

func (h *ClassHistory) Recent(ctx context.Context, classID string, limit int) ([]*relay.ChatMessage, error) {
	if limit <= 0 || limit > classHistoryLimit {
		limit = classHistoryLimit
	}
	items, err := h.rds.LrangeCtx(ctx, h.buildCacheKey(classID), 0, limit-1)
	if err != nil {
		return nil, err
	}
	msgs := make([]*relay.ChatMessage, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var msg relay.ChatMessage
		if err := json.Unmarshal([]byte(items[i]), &msg); err != nil {
			log.CtxError(ctx, "class history: skip bad entry in %s: %v", classID, err)
			continue
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

func (h *ClassHistory) buildCacheKey(classID string) string {
	return fmt.Sprintf("%s:%s", classHistoryPrefix, classID)
}
