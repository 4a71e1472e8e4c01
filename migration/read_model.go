package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"ticketservice/entity"
)

type EventStore interface {
	GetEvents(ctx context.Context) ([]entity.DataLakeEvent, error)
}

type OpsPaymentsProjection interface {
	OnPaymentTaken(ctx context.Context, event *entity.PaymentTaken_v1) error
	OnPaymentReceiptIssued(ctx context.Context, event *entity.PaymentReceiptIssued_v1) error
}

// MigrateOpsPaymentsReadModel replays the data lake into the ops payments read model.
// Events the read model does not project are skipped.
func MigrateOpsPaymentsReadModel(ctx context.Context, store EventStore, projection OpsPaymentsProjection) error {
	logger := log.FromContext(ctx)

	events, err := store.GetEvents(ctx)
	if err != nil {
		return fmt.Errorf("could not get events from data lake: %w", err)
	}

	logger.WithField("events_count", len(events)).Info("Migrating ops payments read model")

	migrated := 0
	for _, event := range events {
		start := time.Now()

		ok, err := migrateEvent(ctx, event, projection)
		if err != nil {
			return fmt.Errorf("could not migrate event %s (%s): %w", event.ID, event.Name, err)
		}
		if !ok {
			continue
		}
		migrated++

		logger.WithFields(logrus.Fields{
			"event_name": event.Name,
			"event_id":   event.ID,
			"duration":   time.Since(start),
		}).Debug("Event migrated")
	}

	logger.WithField("migrated_count", migrated).Info("Ops payments read model migrated")

	return nil
}

func migrateEvent(ctx context.Context, event entity.DataLakeEvent, projection OpsPaymentsProjection) (bool, error) {
	switch event.Name {
	case "PaymentTaken_v1":
		paymentTaken, err := unmarshalDataLakeEvent[entity.PaymentTaken_v1](event)
		if err != nil {
			return false, err
		}

		return true, projection.OnPaymentTaken(ctx, paymentTaken)
	case "PaymentReceiptIssued_v1":
		receiptIssued, err := unmarshalDataLakeEvent[entity.PaymentReceiptIssued_v1](event)
		if err != nil {
			return false, err
		}

		return true, projection.OnPaymentReceiptIssued(ctx, receiptIssued)
	default:
		return false, nil
	}
}

func unmarshalDataLakeEvent[T any](event entity.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	if err := json.Unmarshal(event.Payload, eventInstance); err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.Name, err)
	}

	return eventInstance, nil
}
