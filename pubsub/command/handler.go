package command

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"ticketservice/entity"
	"ticketservice/pubsub/bus"
)

type PaymentsRepository interface {
	Store(ctx context.Context, payment entity.Payment) error
}

type SeatsRepository interface {
	Store(ctx context.Context, reservation entity.SeatReservation) error
}

type Handler struct {
	paymentsRepo PaymentsRepository
	seatsRepo    SeatsRepository
}

func NewHandler(
	paymentsRepo PaymentsRepository,
	seatsRepo SeatsRepository,
) Handler {
	if paymentsRepo == nil {
		panic("missing paymentsRepo")
	}
	if seatsRepo == nil {
		panic("missing seatsRepo")
	}

	return Handler{
		paymentsRepo: paymentsRepo,
		seatsRepo:    seatsRepo,
	}
}

func NewProcessorConfig(rdb *redis.Client, logger watermill.LoggerAdapter) cqrs.CommandProcessorConfig {
	return cqrs.CommandProcessorConfig{
		SubscriberConstructor: func(params cqrs.CommandProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        rdb,
				ConsumerGroup: "svc-tickets.commands." + params.HandlerName,
			}, logger)
		},
		GenerateSubscribeTopic: func(params cqrs.CommandProcessorGenerateSubscribeTopicParams) (string, error) {
			return bus.CommandTopic(params.CommandName), nil
		},
		Marshaler: bus.Marshaler,
		Logger:    logger,
	}
}
