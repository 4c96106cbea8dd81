package cache

import (
	"context"
	"testing"
	"time"

	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/relay"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

func newClassHistory(t *testing.T) (*ClassHistory, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	return NewClassHistoryWithRedis(redis.MustNewRedis(redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType})), mr
}

func chatMessage(classID string, n int) *relay.ChatMessage {
	return &relay.ChatMessage{
		ClassID:   classID,
		From:      relay.Member{UserID: "u1", Name: "Ada", Role: consts.RoleStudent},
		Payload:   map[string]any{"classId": classID, "n": n},
		Timestamp: time.Date(2024, 3, 1, 10, n, 0, 0, time.UTC),
	}
}

func TestClassHistoryOldestFirst(t *testing.T) {
	h, mr := newClassHistory(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, h.Append(ctx, chatMessage("class-1", i)))
	}
	require.NoError(t, h.Append(ctx, chatMessage("class-2", 9)))

	msgs, err := h.Recent(ctx, "class-1", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.EqualValues(t, 1, msgs[0].Payload["n"])
	assert.EqualValues(t, 3, msgs[2].Payload["n"])
	assert.Equal(t, "Ada", msgs[0].From.Name)
	assert.True(t, mr.TTL("class_chat:class-1") > 0)

	latest, err := h.Recent(ctx, "class-1", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.EqualValues(t, 2, latest[0].Payload["n"])
}

func TestClassHistoryIsBounded(t *testing.T) {
	h, mr := newClassHistory(t)
	ctx := context.Background()

	for i := 0; i < classHistoryLimit+5; i++ {
		require.NoError(t, h.Append(ctx, chatMessage("class-1", i%60)))
	}
	list, err := mr.List("class_chat:class-1")
	require.NoError(t, err)
	assert.Len(t, list, classHistoryLimit)

	msgs, err := h.Recent(ctx, "class-1", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, classHistoryLimit)
}

func TestClassHistoryEmpty(t *testing.T) {
	h, _ := newClassHistory(t)
	msgs, err := h.Recent(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
