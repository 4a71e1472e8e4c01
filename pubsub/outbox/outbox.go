package outbox

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"

	"ticketservice/pubsub/bus"
	"ticketservice/tracing"
)

const outboxTopic = "events_to_forward"

// PublishInTx stores the event in the outbox table as part of tx.
// The forwarder moves it to the broker once tx is committed.
func PublishInTx(ctx context.Context, tx *sqlx.Tx, event any) error {
	logger := log.NewWatermill(log.FromContext(ctx))

	sqlPublisher, err := watermillSQL.NewPublisher(
		tx.Tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter: watermillSQL.DefaultPostgreSQLSchema{},
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("could not create sql publisher: %w", err)
	}

	var publisher message.Publisher
	publisher = forwarder.NewPublisher(sqlPublisher, forwarder.PublisherConfig{
		ForwarderTopic: outboxTopic,
	})
	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = tracing.PublisherDecorator{Publisher: publisher}

	eventBus, err := bus.NewEventBus(publisher)
	if err != nil {
		return fmt.Errorf("could not create outbox event bus: %w", err)
	}

	if err := eventBus.Publish(ctx, event); err != nil {
		return fmt.Errorf("could not publish event to outbox: %w", err)
	}

	return nil
}

func NewPostgresSubscriber(db *sqlx.DB, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	sub, err := watermillSQL.NewSubscriber(db, watermillSQL.SubscriberConfig{
		SchemaAdapter:  watermillSQL.DefaultPostgreSQLSchema{},
		OffsetsAdapter: watermillSQL.DefaultPostgreSQLOffsetsAdapter{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("could not create postgres subscriber: %w", err)
	}

	if err := sub.SubscribeInitialize(outboxTopic); err != nil {
		return nil, fmt.Errorf("could not initialize outbox topic: %w", err)
	}

	return sub, nil
}

// InitializeSchema creates the outbox tables without starting a subscription.
func InitializeSchema(db *sqlx.DB) error {
	sub, err := NewPostgresSubscriber(db, watermill.NopLogger{})
	if err != nil {
		return err
	}

	return sub.Close()
}

func NewForwarder(
	postgresSubscriber message.Subscriber,
	publisher message.Publisher,
	logger watermill.LoggerAdapter,
) (*forwarder.Forwarder, error) {
	f, err := forwarder.NewForwarder(postgresSubscriber, publisher, logger, forwarder.Config{
		ForwarderTopic: outboxTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create forwarder: %w", err)
	}

	return f, nil
}
