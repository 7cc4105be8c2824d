package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishUserNilClient(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishUser(context.Background(), 1, Event{Type: EventFriendRequestReceived})
	assert.NoError(t, err)
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNotifier_RequestReceivedEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	n.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 1)
	channels := make(chan string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		channels <- channel
		events <- event
	}))

	require.NoError(t, n.RequestReceived(context.Background(), 2, 1, "Ann Chovey", 7))

	select {
	case event := <-events:
		assert.Equal(t, EventFriendRequestReceived, event.Type)
		assert.Equal(t, uint(1), event.ActorID)
		assert.Equal(t, "Ann Chovey", event.ActorName)
		assert.Equal(t, uint(7), event.RequestID)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), event.OccurredAt)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	assert.Equal(t, "notifications:user:2", <-channels)
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	require.NoError(t, n.StartPatternSubscriber(ctx, func(string, string) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.RequestAccepted(context.Background(), 5, 6, "Bo Vine", 9))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.RequestAccepted(context.Background(), 5, 6, "Bo Vine", 10))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) >= 2
	}, 200*time.Millisecond, 10*time.Millisecond)
}
