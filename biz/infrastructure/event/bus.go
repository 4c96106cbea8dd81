package event

import (
	"context"
	"encoding/json"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const outputBuffer = 256

type IBus interface {
	Publish(ctx context.Context, topic string, data any) error
	// Subscribe delivers decoded events to handler until ctx is done.
	Subscribe(ctx context.Context, topic string, handler func(ctx context.Context, e *Event) error) error
	Close() error
}

type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus(_ *config.Config) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: outputBuffer,
		}, NewLogger()),
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, data any) error {
	e, err := NewEvent(topic, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := message.NewMessage(e.ID, payload)
	msg.SetContext(ctx)
	return b.pubsub.Publish(topic, msg)
}

func (b *Bus) Subscribe(ctx context.Context, topic string, handler func(ctx context.Context, e *Event) error) error {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}
	for msg := range messages {
		var e Event
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			log.Error("event: drop undecodable message %s on %s: %v", msg.UUID, topic, err)
			msg.Ack()
			continue
		}
		if err := handler(ctx, &e); err != nil {
			log.CtxError(ctx, "event: handle %s on %s failed: %v", e.ID, topic, err)
		}
		msg.Ack()
	}
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
