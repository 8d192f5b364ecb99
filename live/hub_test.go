package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerClient(t *testing.T, hub *Hub, room string) *Client {
	t.Helper()
	client := NewClient(hub, nil, room)
	hub.Register <- client

	// Registration goes through the hub loop; wait until it lands.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.rooms[room][client]
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestBroadcastToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := registerClient(t, hub, RoomLeaderboard)

	hub.BroadcastToRoom(RoomLeaderboard, Message{
		Type:    EventLeaderboardUpdated,
		Payload: []string{"Ana", "Bruno"},
		RoomID:  RoomLeaderboard,
	})

	select {
	case raw := <-client.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventLeaderboardUpdated, msg.Type)
		assert.Equal(t, RoomLeaderboard, msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast frame")
	}
}

func TestBroadcastToRoom_OtherRoomsUnaffected(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscriber := registerClient(t, hub, RoomLeaderboard)
	bystander := registerClient(t, hub, "other")

	hub.BroadcastToRoom(RoomLeaderboard, Message{Type: EventLeaderboardUpdated})

	select {
	case <-subscriber.Send:
	case <-time.After(time.Second):
		t.Fatal("subscriber should have received the broadcast")
	}

	select {
	case <-bystander.Send:
		t.Fatal("bystander room received a leaderboard broadcast")
	default:
	}
}

func TestBroadcastToRoom_EmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()

	// No clients, no hub loop running: must not panic or block.
	hub.BroadcastToRoom(RoomLeaderboard, Message{Type: EventLeaderboardUpdated})
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := registerClient(t, hub, RoomLeaderboard)
	hub.Unregister <- client

	require.Eventually(t, func() bool {
		select {
		case _, open := <-client.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestTrySend_DropsWhenBufferFull(t *testing.T) {
	client := NewClient(nil, nil, RoomLeaderboard)

	for i := 0; i < cap(client.Send)+10; i++ {
		client.trySend([]byte("frame"))
	}

	// The overflow frames were dropped, not queued.
	assert.Len(t, client.Send, cap(client.Send))
}

func TestTrySend_AfterCloseIsNoop(t *testing.T) {
	client := NewClient(nil, nil, RoomLeaderboard)
	client.closeSend()

	// Must not panic on a closed channel.
	client.trySend([]byte("frame"))
}
