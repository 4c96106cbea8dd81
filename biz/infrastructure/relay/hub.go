package relay

import (
	"sync"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"
)

type UserJoined struct {
	ClassID string `json:"classId"`
	Member
}

type ChatMessage struct {
	ClassID   string         `json:"classId"`
	From      Member         `json:"from"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type IHub interface {
	Register(c *Client)
	Join(c *Client, classID string) bool
	Broadcast(c *Client, classID string, payload map[string]any) (*ChatMessage, error)
	SendToUser(userID string, f *Frame) int
	Leave(c *Client)
	Members(classID string) int
	SendBuffer() int
}

// Hub maps class ids to the connections currently joined to them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[string]*Client
	clients  map[string]*Client
	joined   map[string]map[string]struct{}
	buffer   int
}

func NewHub(config *config.Config) *Hub {
	buffer := 0
	if config != nil {
		buffer = config.Relay.SendBuffer
	}
	return &Hub{
		channels: map[string]map[string]*Client{},
		clients:  map[string]*Client{},
		joined:   map[string]map[string]struct{}{},
		buffer:   buffer,
	}
}

func (h *Hub) SendBuffer() int {
	return h.buffer
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
	h.joined[c.ID] = map[string]struct{}{}
}

// Join adds c to classID. The other members are told about c and c is told
// about each of them, so every pair sees exactly one user-joined. Joining a
// class twice is a no-op and returns false.
func (h *Hub) Join(c *Client, classID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	classes, ok := h.joined[c.ID]
	if !ok {
		return false
	}
	if _, ok := classes[classID]; ok {
		return false
	}
	members := h.channels[classID]
	if members == nil {
		members = map[string]*Client{}
		h.channels[classID] = members
	}
	for _, other := range members {
		h.deliver(other, &Frame{Event: EventUserJoined, Data: UserJoined{ClassID: classID, Member: c.Member}})
		h.deliver(c, &Frame{Event: EventUserJoined, Data: UserJoined{ClassID: classID, Member: other.Member}})
	}
	members[c.ID] = c
	classes[classID] = struct{}{}
	return true
}

// Broadcast fans payload out to every member of classID except c and returns
// the message it sent.
func (h *Hub) Broadcast(c *Client, classID string, payload map[string]any) (*ChatMessage, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.channels[classID]
	if _, ok := members[c.ID]; !ok {
		return nil, consts.ErrNotClassMember
	}
	msg := &ChatMessage{
		ClassID:   classID,
		From:      c.Member,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	f := &Frame{Event: EventChatMessage, Data: *msg}
	for id, other := range members {
		if id == c.ID {
			continue
		}
		h.deliver(other, f)
	}
	return msg, nil
}

// SendToUser delivers f to every live connection of userID and returns how
// many accepted it.
func (h *Hub) SendToUser(userID string, f *Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, c := range h.clients {
		if c.Member.UserID == userID && c.Enqueue(f) {
			n++
		}
	}
	return n
}

// Leave removes c from every class and closes it. Safe to call twice.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for classID := range h.joined[c.ID] {
		members := h.channels[classID]
		delete(members, c.ID)
		if len(members) == 0 {
			delete(h.channels, classID)
		}
	}
	delete(h.joined, c.ID)
	delete(h.clients, c.ID)
	c.close()
}

func (h *Hub) Members(classID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[classID])
}

func (h *Hub) deliver(c *Client, f *Frame) {
	if !c.Enqueue(f) {
		log.Info("relay: drop %s for client %s, send buffer full", f.Event, c.ID)
	}
}
