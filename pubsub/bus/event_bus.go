package bus

import (
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventsTopic receives every published event. The router stores it in the data
// lake and forwards it to the per-event topic.
const EventsTopic = "events"

func EventTopic(eventName string) string {
	return EventsTopic + "." + eventName
}

var Marshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

func NewEventBus(pub message.Publisher) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(pub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return EventsTopic, nil
		},
		Marshaler: Marshaler,
	})
}
