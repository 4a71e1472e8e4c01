package pubsub

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"ticketservice/entity"
	"ticketservice/pubsub/bus"
	"ticketservice/pubsub/command"
	"ticketservice/pubsub/event"
)

type DataLake interface {
	StoreEvent(ctx context.Context, dataLakeEvent entity.DataLakeEvent) error
}

type RouterDeps struct {
	RedisPublisher message.Publisher

	// Consumed by events_splitter and store_to_data_lake. They need separate
	// consumer groups, otherwise each event reaches only one of them.
	SplitterSubscriber message.Subscriber
	DataLakeSubscriber message.Subscriber

	EventProcessorConfig   cqrs.EventProcessorConfig
	EventHandler           event.Handler
	OpsPaymentHandlers     event.OpsPaymentHandlers
	CommandProcessorConfig cqrs.CommandProcessorConfig
	CommandHandler         command.Handler

	DataLake DataLake

	Logger watermill.LoggerAdapter
}

func NewWatermillRouter(deps RouterDeps) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not create router: %w", err)
	}

	useMiddlewares(router, deps.Logger)

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, deps.EventProcessorConfig)
	if err != nil {
		return nil, fmt.Errorf("could not create event processor: %w", err)
	}

	err = eventProcessor.AddHandlers(
		deps.EventHandler.IssueReceiptHandler(),
		deps.EventHandler.AppendPaymentToTrackerHandler(),
		deps.EventHandler.AppendSeatsToTrackerHandler(),
		cqrs.NewEventHandler(
			"ops_read_model.OnPaymentTaken",
			deps.OpsPaymentHandlers.OnPaymentTaken,
		),
		cqrs.NewEventHandler(
			"ops_read_model.OnPaymentReceiptIssued",
			deps.OpsPaymentHandlers.OnPaymentReceiptIssued,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("could not add handlers to event processor: %w", err)
	}

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, deps.CommandProcessorConfig)
	if err != nil {
		return nil, fmt.Errorf("could not create command processor: %w", err)
	}

	err = commandProcessor.AddHandlers(
		deps.CommandHandler.TakePaymentHandler(),
		deps.CommandHandler.ReserveSeatsHandler(),
	)
	if err != nil {
		return nil, fmt.Errorf("could not add handlers to command processor: %w", err)
	}

	router.AddNoPublisherHandler(
		"events_splitter",
		bus.EventsTopic,
		deps.SplitterSubscriber,
		func(msg *message.Message) error {
			eventName := bus.Marshaler.NameFromMessage(msg)
			if eventName == "" {
				return fmt.Errorf("could not get event name from message %s", msg.UUID)
			}

			return deps.RedisPublisher.Publish(bus.EventTopic(eventName), msg)
		},
	)

	router.AddNoPublisherHandler(
		"store_to_data_lake",
		bus.EventsTopic,
		deps.DataLakeSubscriber,
		func(msg *message.Message) error {
			dataLakeEvent, err := toDataLakeEvent(msg)
			if err != nil {
				return err
			}

			return deps.DataLake.StoreEvent(msg.Context(), dataLakeEvent)
		},
	)

	return router, nil
}

func toDataLakeEvent(msg *message.Message) (entity.DataLakeEvent, error) {
	eventName := bus.Marshaler.NameFromMessage(msg)
	if eventName == "" {
		return entity.DataLakeEvent{}, fmt.Errorf("could not get event name from message %s", msg.UUID)
	}

	// only the header is needed, the payload is stored as is
	var event struct {
		Header entity.EventHeader `json:"header"`
	}
	if err := bus.Marshaler.Unmarshal(msg, &event); err != nil {
		return entity.DataLakeEvent{}, fmt.Errorf("could not unmarshal event: %w", err)
	}

	return entity.DataLakeEvent{
		ID:          event.Header.ID,
		PublishedAt: event.Header.PublishedAt,
		Name:        eventName,
		Payload:     msg.Payload,
	}, nil
}
