package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string

	b.Subscribe(EventAfterNavigate, func(Fields) { order = append(order, "first") })
	b.Subscribe(EventAfterNavigate, func(Fields) { order = append(order, "second") })
	b.Subscribe(EventAfterNavigate, func(Fields) { order = append(order, "third") })

	b.Publish(EventAfterNavigate, Fields{"route": "asset.browser"})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPublishPassesFields(t *testing.T) {
	b := NewBus()
	var got Fields
	b.Subscribe(EventBeforeNavigate, func(fields Fields) { got = fields })

	b.Publish(EventBeforeNavigate, Fields{"route": "asset.browser", "params": map[string]any{"id": 7}})
	require.NotNil(t, got)
	assert.Equal(t, "asset.browser", got["route"])
}

func TestPublishToUnknownEventIsNoop(t *testing.T) {
	b := NewBus()
	assert.NotPanics(t, func() {
		b.Publish("never_subscribed", nil)
	})
}

func TestPanickingHandlerDoesNotStarveOthers(t *testing.T) {
	b := NewBus()
	var delivered []string

	b.Subscribe(EventAfterNavigate, func(Fields) { delivered = append(delivered, "a") })
	b.Subscribe(EventAfterNavigate, func(Fields) { panic("handler bug") })
	b.Subscribe(EventAfterNavigate, func(Fields) { delivered = append(delivered, "c") })

	assert.NotPanics(t, func() {
		b.Publish(EventAfterNavigate, nil)
	})
	assert.Equal(t, []string{"a", "c"}, delivered)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	var count int

	sub := b.Subscribe(EventBeforeClose, func(Fields) { count++ })
	b.Subscribe(EventBeforeClose, func(Fields) { count += 10 })
	require.Equal(t, 2, b.SubscriberCount(EventBeforeClose))

	b.Unsubscribe(sub)
	assert.Equal(t, 1, b.SubscriberCount(EventBeforeClose))

	b.Publish(EventBeforeClose, nil)
	assert.Equal(t, 10, count)

	// double unsubscribe and nil are no-ops
	b.Unsubscribe(sub)
	b.Unsubscribe(nil)
	assert.Equal(t, 1, b.SubscriberCount(EventBeforeClose))
}

func TestSameHandlerSubscribedTwice(t *testing.T) {
	b := NewBus()
	var count int
	handler := func(Fields) { count++ }

	first := b.Subscribe(EventAfterClose, handler)
	b.Subscribe(EventAfterClose, handler)

	b.Publish(EventAfterClose, nil)
	require.Equal(t, 2, count)

	// tokens distinguish identical handlers
	b.Unsubscribe(first)
	b.Publish(EventAfterClose, nil)
	assert.Equal(t, 3, count)
}

func TestReset(t *testing.T) {
	b := NewBus()
	b.Subscribe(EventAfterNavigate, func(Fields) {})
	b.Subscribe(EventNavigationFailed, func(Fields) {})

	b.Reset()
	assert.Equal(t, 0, b.SubscriberCount(EventAfterNavigate))
	assert.Equal(t, 0, b.SubscriberCount(EventNavigationFailed))
}
