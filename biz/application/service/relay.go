package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"edu-platform/biz/infrastructure/cache"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/event"
	"edu-platform/biz/infrastructure/relay"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
)

// Conn is the part of a websocket connection the relay uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type relayError struct {
	Message string `json:"message"`
}

type IRelayService interface {
	Serve(ctx context.Context, u *user.User, conn Conn)
	StartGradeForwarder(ctx context.Context) error
}

type RelayService struct {
	Hub     relay.IHub
	Bus     event.IBus
	History cache.IClassHistory
}

var RelayServiceSet = wire.NewSet(
	wire.Struct(new(RelayService), "*"),
	wire.Bind(new(IRelayService), new(*RelayService)),
)

// Serve runs one authenticated connection until the peer goes away. Reads
// happen here; a single writer goroutine drains the client's queue.
func (s *RelayService) Serve(ctx context.Context, u *user.User, conn Conn) {
	client := relay.NewClient(relay.Member{
		UserID: u.ID.Hex(),
		Name:   u.Name,
		Role:   u.Role,
	}, s.Hub.SendBuffer())
	s.Hub.Register(client)
	log.CtxInfo(ctx, "relay: %s connected as %s", u.ID.Hex(), client.ID)

	writerDone := make(chan struct{})
	gopool.Go(func() {
		defer close(writerDone)
		for {
			select {
			case f := <-client.Send():
				if err := conn.WriteJSON(f); err != nil {
					_ = conn.Close()
					return
				}
			case <-client.Done():
				return
			}
		}
	})

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			break
		}
		s.handle(ctx, client, &in)
	}

	s.Hub.Leave(client)
	<-writerDone
	_ = conn.Close()
	log.CtxInfo(ctx, "relay: %s disconnected", client.ID)
}

func (s *RelayService) handle(ctx context.Context, c *relay.Client, in *inbound) {
	switch in.Event {
	case relay.EventJoinClass:
		classID := parseClassID(in.Data)
		if classID == "" {
			c.Enqueue(errorFrame("classId is required"))
			return
		}
		s.Hub.Join(c, classID)
	case relay.EventChatMessage:
		var payload map[string]any
		if err := json.Unmarshal(in.Data, &payload); err != nil || payload == nil {
			c.Enqueue(errorFrame("chat-message data must be an object"))
			return
		}
		classID, _ := payload["classId"].(string)
		if classID == "" {
			c.Enqueue(errorFrame("classId is required"))
			return
		}
		msg, err := s.Hub.Broadcast(c, classID, payload)
		if err != nil {
			var errno *consts.Errno
			if errors.As(err, &errno) {
				c.Enqueue(errorFrame(errno.Error()))
				return
			}
			log.CtxError(ctx, "relay: broadcast to %s failed: %v", classID, err)
			return
		}
		if s.History != nil {
			if err = s.History.Append(ctx, msg); err != nil {
				log.CtxError(ctx, "relay: record message in %s failed: %v", classID, err)
			}
		}
	default:
		c.Enqueue(errorFrame("unknown event " + in.Event))
	}
}

// parseClassID accepts either "id" or {"classId": "id"}.
func parseClassID(data json.RawMessage) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return strings.TrimSpace(id)
	}
	var obj struct {
		ClassID string `json:"classId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return strings.TrimSpace(obj.ClassID)
	}
	return ""
}

func errorFrame(msg string) *relay.Frame {
	return &relay.Frame{Event: relay.EventError, Data: relayError{Message: msg}}
}

// StartGradeForwarder pushes grade notifications to the graded student's
// open connections.
func (s *RelayService) StartGradeForwarder(ctx context.Context) error {
	if s.Bus == nil {
		return nil
	}
	gopool.CtxGo(ctx, func() {
		err := s.Bus.Subscribe(ctx, event.TopicSubmissionGraded, func(ctx context.Context, e *event.Event) error {
			var data event.SubmissionGraded
			if err := json.Unmarshal(e.Data, &data); err != nil {
				return err
			}
			n := s.Hub.SendToUser(data.StudentID, &relay.Frame{Event: relay.EventGradePosted, Data: data})
			log.CtxInfo(ctx, "relay: grade for %s delivered to %d connections", data.SubmissionID, n)
			return nil
		})
		if err != nil {
			log.Error("relay: grade forwarder stopped: %v", err)
		}
	})
	return nil
}
