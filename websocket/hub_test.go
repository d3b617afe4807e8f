package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id, userID string) *Client {
	return &Client{ID: id, UserID: userID, Send: make(chan []byte, 4)}
}

func waitOnline(t *testing.T, h *Hub, userID string, want bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.IsOnline(userID) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("user %s online = %v, want %v", userID, h.IsOnline(userID), want)
}

func TestHubNotifyPresence(t *testing.T) {
	h := NewHub()
	go h.Run()

	bob := newTestClient("c1", "u2")
	h.register <- bob
	waitOnline(t, h, "u2", true)

	cafe := "42"
	h.NotifyPresence([]string{"u2", "u3"}, PresenceEvent{UserID: "u1", Name: "Alice", CafeID: &cafe})

	select {
	case raw := <-bob.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "presence", msg.Event)
		data := msg.Data.(map[string]any)
		assert.Equal(t, "u1", data["user_id"])
		assert.Equal(t, "42", data["cafe_id"])
	case <-time.After(time.Second):
		t.Fatal("no presence event delivered")
	}
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := newTestClient("c1", "u2")
	second := newTestClient("c2", "u2")
	h.register <- first
	h.register <- second
	waitOnline(t, h, "u2", true)

	h.NotifyPresence([]string{"u2"}, PresenceEvent{UserID: "u1", Name: "Alice"})
	for _, c := range []*Client{first, second} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatalf("client %s missed the message", c.ID)
		}
	}

	h.unregister <- first
	h.unregister <- second
	waitOnline(t, h, "u2", false)
}

func TestHubNotifyDuringChurn(t *testing.T) {
	h := NewHub()
	go h.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			c := newTestClient(string(rune('a'+i%26)), "u2")
			h.register <- c
			h.unregister <- c
		}
	}()

	for i := 0; i < 100; i++ {
		h.NotifyPresence([]string{"u2"}, PresenceEvent{UserID: "u1", Name: "Alice"})
	}
	<-done
}

func TestHubOfflineUserIsSkipped(t *testing.T) {
	h := NewHub()
	go h.Run()

	h.NotifyPresence([]string{"nobody"}, PresenceEvent{UserID: "u1", Name: "Alice"})
	assert.False(t, h.IsOnline("nobody"))
}
