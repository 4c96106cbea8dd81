package relay

import (
	"sync"

	"edu-platform/biz/infrastructure/consts"

	"github.com/google/uuid"
)

const (
	EventJoinClass   = "join-class"
	EventChatMessage = "chat-message"
	EventUserJoined  = "user-joined"
	EventGradePosted = "grade-posted"
	EventError       = "error"
)

// Frame is the envelope of every message on the relay socket.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Member struct {
	UserID string      `json:"userId"`
	Name   string      `json:"name"`
	Role   consts.Role `json:"role"`
}

// Client is one authenticated connection. Frames queue in a bounded buffer
// drained by the connection's writer.
type Client struct {
	ID     string
	Member Member

	send      chan *Frame
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(member Member, buffer int) *Client {
	if buffer <= 0 {
		buffer = 1
	}
	return &Client{
		ID:     uuid.NewString(),
		Member: member,
		send:   make(chan *Frame, buffer),
		done:   make(chan struct{}),
	}
}

func (c *Client) Send() <-chan *Frame {
	return c.send
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Enqueue never blocks. It reports false when the frame was dropped.
func (c *Client) Enqueue(f *Frame) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
