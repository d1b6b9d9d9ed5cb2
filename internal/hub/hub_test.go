package hub

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBroadcastReachesSubscribers(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(42, client)

	h.Broadcast(42, Event{Type: "new_post", Payload: map[string]string{"description": "hello"}})

	select {
	case msg := <-client:
		var event Event
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("failed to unmarshal event: %v", err)
		}
		if event.Type != "new_post" {
			t.Errorf("expected type 'new_post', got %q", event.Type)
		}
	default:
		t.Fatal("expected an event on the client channel")
	}
}

func TestBroadcastSkipsOtherUsers(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(42, client)

	h.Broadcast(43, Event{Type: "new_post"})

	select {
	case <-client:
		t.Fatal("client for user 42 must not receive user 43's events")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(42, client)
	h.Unsubscribe(42, client)

	if _, ok := <-client; ok {
		t.Error("expected channel to be closed after unsubscribe")
	}

	// A second unsubscribe is a no-op, not a double close.
	h.Unsubscribe(42, client)
}

func TestBroadcastDoesNotBlockOnFullClient(t *testing.T) {
	h := NewHub()
	client := make(Client) // unbuffered, nobody reading
	h.Subscribe(7, client)

	done := make(chan struct{})
	go func() {
		h.Broadcast(7, Event{Type: "new_post"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client")
	}
}
