package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_ReachesSubscriber(t *testing.T) {
	bus := NewBus()

	events, unsubscribe := bus.Subscribe(2)
	defer unsubscribe()

	bus.Publish(Event{Type: EventProjectLiked, ActorID: 1, RecipientID: 2, ProjectID: 7})

	event := <-events
	assert.Equal(t, EventProjectLiked, event.Type)
	assert.Equal(t, uint(1), event.ActorID)
	assert.Equal(t, uint(7), event.ProjectID)
	assert.False(t, event.CreatedAt.IsZero(), "Publish should stamp CreatedAt")
}

func TestPublish_DropsSelfNotification(t *testing.T) {
	bus := NewBus()

	events, unsubscribe := bus.Subscribe(1)
	defer unsubscribe()

	bus.Publish(Event{Type: EventCommentAdded, ActorID: 1, RecipientID: 1})

	select {
	case event := <-events:
		t.Fatalf("self-notification should be dropped, got %+v", event)
	default:
	}
}

func TestPublish_DropsAnonymousRecipient(t *testing.T) {
	bus := NewBus()
	// No subscriber for user 0 exists, but the drop must happen regardless
	bus.Publish(Event{Type: EventCommentAdded, ActorID: 1, RecipientID: 0})
}

func TestPublish_NoSubscriberIsNoOp(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: EventProjectLiked, ActorID: 1, RecipientID: 42})
}

func TestSubscribe_MultipleConnectionsPerUser(t *testing.T) {
	bus := NewBus()

	first, unsubFirst := bus.Subscribe(2)
	second, unsubSecond := bus.Subscribe(2)
	defer unsubFirst()
	defer unsubSecond()

	bus.Publish(Event{Type: EventReplyAdded, ActorID: 1, RecipientID: 2})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestUnsubscribe_ClosesChannelAndStopsDelivery(t *testing.T) {
	bus := NewBus()

	events, unsubscribe := bus.Subscribe(2)
	unsubscribe()

	_, open := <-events
	assert.False(t, open, "unsubscribe should close the channel")

	// Publishing after unsubscribe must not panic on the closed channel
	bus.Publish(Event{Type: EventProjectLiked, ActorID: 1, RecipientID: 2})

	// Unsubscribing twice is safe
	unsubscribe()
}

func TestPublish_SlowSubscriberLosesEventsNotTheRequest(t *testing.T) {
	bus := NewBus()

	events, unsubscribe := bus.Subscribe(2)
	defer unsubscribe()

	// One more than the buffer; the overflowing event is dropped silently
	for i := 0; i < subscriberBuffer+1; i++ {
		bus.Publish(Event{Type: EventProjectLiked, ActorID: 1, RecipientID: 2, ProjectID: uint(i + 1)})
	}

	require.Len(t, events, subscriberBuffer)

	// The buffered events are the oldest ones, in order
	first := <-events
	assert.Equal(t, uint(1), first.ProjectID)
}
