package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	var a, b []Topic
	bus.Subscribe(func(e Event) { a = append(a, e.Topic) })
	bus.Subscribe(func(e Event) { b = append(b, e.Topic) })

	bus.Publish(Event{Topic: TopicProducts})
	bus.Publish(Event{Topic: TopicCart})

	assert.Equal(t, []Topic{TopicProducts, TopicCart}, a)
	assert.Equal(t, []Topic{TopicProducts, TopicCart}, b)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(Event{Topic: TopicOrders})
	})
}

func TestShopMutations_PublishEvents(t *testing.T) {
	sh, _, _ := newTestShop(t)

	var events []Event
	sh.Bus.Subscribe(func(e Event) { events = append(events, e) })

	id := seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)
	require.NoError(t, sh.Cart.Add(id, 1, "", ""))
	_, err := sh.Orders.Create(checkoutCustomer, "Douala", PaymentCard)
	require.NoError(t, err)

	byTopic := make(map[Topic]int)
	for _, e := range events {
		byTopic[e.Topic]++
	}

	assert.Equal(t, 1, byTopic[TopicCategories], "category add")
	// product add, checkout debit
	assert.Equal(t, 2, byTopic[TopicProducts])
	// cart add, cart clear after checkout
	assert.Equal(t, 2, byTopic[TopicCart])
	assert.Equal(t, 1, byTopic[TopicOrders])
	assert.Equal(t, 1, byTopic[TopicOrderCreated])
	assert.Zero(t, byTopic[TopicStockClamped])

	for _, e := range events {
		assert.Equal(t, testEpoch, e.At, "events carry the shop clock's time")
	}
}

func TestFailedMutation_PublishesNothing(t *testing.T) {
	sh, _, _ := newTestShop(t)
	seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)

	var events []Event
	sh.Bus.Subscribe(func(e Event) { events = append(events, e) })

	err := sh.Catalog.AddCategory("vetements", nil, "")
	require.Error(t, err)
	err = sh.Cart.Add("prod-404", 1, "", "")
	require.Error(t, err)

	assert.Empty(t, events, "events fire only after a successful persist")
}
