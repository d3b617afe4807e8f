// Package websocket pushes presence changes to connected clients. The hub
// keeps one entry per connection so a user on two devices gets the event on
// both.
package websocket

import (
	"encoding/json"
	"sync"
)

type Hub struct {
	clients    map[string]*Client
	userConns  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// PresenceEvent is pushed to a user's friends when they check in or out.
// CafeID is nil on check-out.
type PresenceEvent struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	CafeID *string `json:"cafe_id"`
}

var HubInstance *Hub

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		userConns:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if h.userConns[client.UserID] == nil {
				h.userConns[client.UserID] = make(map[*Client]bool)
			}
			h.userConns[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				if h.userConns[client.UserID] != nil {
					delete(h.userConns[client.UserID], client)
					if len(h.userConns[client.UserID]) == 0 {
						delete(h.userConns, client.UserID)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// SendToUsers delivers msg to every open connection of the given users. The
// lock is held across the fan-out so a concurrent register or unregister
// cannot change the connection maps mid-iteration.
func (h *Hub) SendToUsers(userIDs []string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	for _, userID := range userIDs {
		clients := h.userConns[userID]
		for client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID]) > 0
}

// NotifyPresence fans a presence change out to the given friend ids.
// Fire-and-forget: friends without an open socket simply miss the event.
func (h *Hub) NotifyPresence(friendIDs []string, event PresenceEvent) {
	h.SendToUsers(friendIDs, &Message{Event: "presence", Data: event})
}

func InitHub() {
	HubInstance = NewHub()
	go HubInstance.Run()
}
