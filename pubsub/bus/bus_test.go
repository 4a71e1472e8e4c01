package bus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketservice/entity"
	"ticketservice/pubsub/bus"
)

func newPubSub(t *testing.T) *gochannel.GoChannel {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	t.Cleanup(func() {
		_ = pubSub.Close()
	})

	return pubSub
}

func receive(t *testing.T, messages <-chan *message.Message) *message.Message {
	select {
	case msg := <-messages:
		msg.Ack()
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("message not received")
		return nil
	}
}

func TestCommandBus_Send(t *testing.T) {
	ctx := context.Background()
	pubSub := newPubSub(t)

	commandBus, err := bus.NewCommandBus(pubSub)
	require.NoError(t, err)

	sent := entity.TakePayment{
		Header:    entity.NewEventHeaderWithIdempotencyKey("key-1"),
		AccountID: 123,
		Amount:    50,
	}
	require.NoError(t, commandBus.Send(ctx, &sent))

	messages, err := pubSub.Subscribe(ctx, "commands.TakePayment")
	require.NoError(t, err)

	msg := receive(t, messages)
	assert.Equal(t, "TakePayment", bus.Marshaler.NameFromMessage(msg))

	var received entity.TakePayment
	require.NoError(t, bus.Marshaler.Unmarshal(msg, &received))
	assert.Equal(t, sent.AccountID, received.AccountID)
	assert.Equal(t, sent.Amount, received.Amount)
	assert.Equal(t, sent.Header.IdempotencyKey, received.Header.IdempotencyKey)
}

func TestEventBus_Publish(t *testing.T) {
	ctx := context.Background()
	pubSub := newPubSub(t)

	eventBus, err := bus.NewEventBus(pubSub)
	require.NoError(t, err)

	require.NoError(t, eventBus.Publish(ctx, entity.SeatsReserved_v1{
		Header:        entity.NewEventHeader(),
		ReservationID: "reservation-1",
		AccountID:     7,
		Seats:         3,
	}))

	messages, err := pubSub.Subscribe(ctx, bus.EventsTopic)
	require.NoError(t, err)

	msg := receive(t, messages)
	assert.Equal(t, "SeatsReserved_v1", bus.Marshaler.NameFromMessage(msg))
	assert.Equal(t, "events.SeatsReserved_v1", bus.EventTopic(bus.Marshaler.NameFromMessage(msg)))
}
