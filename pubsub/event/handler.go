package event

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

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type ReceiptsService interface {
	IssueReceipt(ctx context.Context, request entity.IssueReceiptRequest) (entity.IssueReceiptResponse, error)
}

type SpreadsheetsAPI interface {
	AppendRow(ctx context.Context, sheetName string, row []string) error
}

type Handler struct {
	eventBus            EventPublisher
	receiptsService     ReceiptsService
	spreadsheetsService SpreadsheetsAPI
	currency            string
}

func NewHandler(
	eventBus EventPublisher,
	receiptsService ReceiptsService,
	spreadsheetsService SpreadsheetsAPI,
	currency string,
) Handler {
	if eventBus == nil {
		panic("missing eventBus")
	}
	if receiptsService == nil {
		panic("missing receiptsService")
	}
	if spreadsheetsService == nil {
		panic("missing spreadsheetsService")
	}
	if currency == "" {
		panic("missing currency")
	}

	return Handler{
		eventBus:            eventBus,
		receiptsService:     receiptsService,
		spreadsheetsService: spreadsheetsService,
		currency:            currency,
	}
}

func NewProcessorConfig(rdb *redis.Client, logger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        rdb,
				ConsumerGroup: "svc-tickets." + params.HandlerName,
			}, logger)
		},
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return bus.EventTopic(params.EventName), nil
		},
		Marshaler: bus.Marshaler,
		Logger:    logger,
	}
}
