package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"

	"ticketservice/entity"
	"ticketservice/pubsub/outbox"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	if db == nil {
		panic("db is nil")
	}

	return &PostgresRepository{db: db}
}

// Store saves the payment and publishes PaymentTaken_v1 in the same transaction.
// A payment with an already used idempotency key is ignored.
func (r *PostgresRepository) Store(ctx context.Context, payment entity.Payment) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
			return
		}
		err = tx.Commit()
	}()

	res, err := tx.NamedExecContext(ctx, `
		INSERT INTO 
		    payments (payment_id, account_id, amount, idempotency_key, taken_at) 
		VALUES (:payment_id, :account_id, :amount, :idempotency_key, :taken_at)
		ON CONFLICT (idempotency_key) DO NOTHING
		`, payment)
	if err != nil {
		return fmt.Errorf("could not add payment: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		log.FromContext(ctx).WithField("idempotency_key", payment.IdempotencyKey).Info("Payment already taken")
		return nil
	}

	err = outbox.PublishInTx(ctx, tx, entity.PaymentTaken_v1{
		Header:    entity.NewEventHeaderWithIdempotencyKey(payment.IdempotencyKey),
		PaymentID: payment.PaymentID,
		AccountID: payment.AccountID,
		Amount:    payment.Amount,
		TakenAt:   payment.TakenAt,
	})
	if err != nil {
		return fmt.Errorf("could not publish PaymentTaken_v1: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByAccountID(ctx context.Context, accountID int64) ([]entity.Payment, error) {
	payments := []entity.Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT payment_id, account_id, amount, idempotency_key, taken_at
		FROM payments
		WHERE account_id = $1
		ORDER BY taken_at ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not get payments of account %d: %w", accountID, err)
	}

	return payments, nil
}
