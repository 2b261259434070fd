package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveCount(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case count, ok := <-ch:
		require.True(t, ok, "channel closed before a value arrived")
		return count
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a count")
		return 0
	}
}

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("gym-1")
	defer cancel()

	hub.Publish("gym-1", 3)
	assert.Equal(t, 3, receiveCount(t, ch))
}

func TestHubScopesDeliveryPerGym(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("gym-1")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("gym-2")
	defer cancel2()

	hub.Publish("gym-2", 7)

	assert.Equal(t, 7, receiveCount(t, ch2))
	select {
	case count := <-ch1:
		t.Fatalf("gym-1 subscriber received unrelated count %d", count)
	default:
	}
}

func TestHubCoalescesPendingUpdates(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("gym-1")
	defer cancel()

	// A slow subscriber only ever sees the latest value.
	hub.Publish("gym-1", 1)
	hub.Publish("gym-1", 2)
	hub.Publish("gym-1", 3)

	assert.Equal(t, 3, receiveCount(t, ch))
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("gym-1")
	cancel()

	_, ok := <-ch
	assert.False(t, ok, "cancel should close the subscription channel")

	// Publishing after cancel must not panic or block.
	hub.Publish("gym-1", 5)

	// Cancelling twice is safe.
	cancel()
}

func TestHubSubscribeAllSeesEveryGym(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.SubscribeAll()
	defer cancel()

	hub.Publish("gym-1", 1)
	hub.Publish("gym-2", 4)

	first := <-ch
	assert.Equal(t, Update{GymID: "gym-1", Count: 1}, first)
	second := <-ch
	assert.Equal(t, Update{GymID: "gym-2", Count: 4}, second)

	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Publish("gym-1", 1)
}
