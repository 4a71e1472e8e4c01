package read_model_ops_payments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"ticketservice/entity"
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

// FindAll returns all payments. When receiptIssueDate (YYYY-MM-DD) is set, only
// payments with a receipt issued that day are returned.
func (r PostgresRepository) FindAll(ctx context.Context, receiptIssueDate string) ([]entity.OpsPayment, error) {
	query := `SELECT payload FROM read_model_ops_payments`
	var args []any
	if receiptIssueDate != "" {
		query += ` WHERE (payload->>'receipt_issued_at')::date = $1::date`
		args = append(args, receiptIssueDate)
	}
	query += ` ORDER BY payload->>'taken_at' ASC`

	var paymentsData [][]byte
	if err := r.db.SelectContext(ctx, &paymentsData, query, args...); err != nil {
		return nil, fmt.Errorf("could not get payment read models: %w", err)
	}

	payments := make([]entity.OpsPayment, 0, len(paymentsData))
	for _, data := range paymentsData {
		var payment entity.OpsPayment
		if err := json.Unmarshal(data, &payment); err != nil {
			return nil, fmt.Errorf("could not unmarshal payment read model: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r PostgresRepository) Get(ctx context.Context, paymentID string) (entity.OpsPayment, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `
		SELECT payload 
		FROM read_model_ops_payments 
		WHERE payment_id = $1
		`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.OpsPayment{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.OpsPayment{}, fmt.Errorf("could not get payment read model: %w", err)
	}

	var payment entity.OpsPayment
	if err = json.Unmarshal(payload, &payment); err != nil {
		return entity.OpsPayment{}, fmt.Errorf("could not unmarshal payment read model: %w", err)
	}

	return payment, nil
}

// Upsert applies update to the stored read model, or to an empty one when the
// payment is not known yet. Events can arrive in any order.
func (r PostgresRepository) Upsert(ctx context.Context, paymentID string, update func(payment *entity.OpsPayment) error) error {
	return updateInTx(ctx, r.db, sql.LevelRepeatableRead, func(ctx context.Context, tx *sqlx.Tx) error {
		payment, err := r.getForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}

		if err := update(&payment); err != nil {
			return err
		}
		payment.PaymentID = paymentID
		payment.LastUpdate = time.Now().UTC()

		payload, err := json.Marshal(payment)
		if err != nil {
			return err
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO 
			    read_model_ops_payments (payment_id, payload) 
			VALUES (:payment_id, :payload)
			ON CONFLICT (payment_id) DO UPDATE SET payload = EXCLUDED.payload
			`, map[string]any{
			"payment_id": paymentID,
			"payload":    payload,
		})
		if err != nil {
			return fmt.Errorf("could not upsert payment read model: %w", err)
		}

		return nil
	})
}

func (r PostgresRepository) getForUpdate(ctx context.Context, tx *sqlx.Tx, paymentID string) (entity.OpsPayment, error) {
	var payload []byte
	err := tx.GetContext(ctx, &payload, `
		SELECT payload 
		FROM read_model_ops_payments 
		WHERE payment_id = $1
		FOR UPDATE
		`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.OpsPayment{}, nil
	}
	if err != nil {
		return entity.OpsPayment{}, fmt.Errorf("could not get payment read model: %w", err)
	}

	var payment entity.OpsPayment
	if err = json.Unmarshal(payload, &payment); err != nil {
		return entity.OpsPayment{}, fmt.Errorf("could not unmarshal payment read model: %w", err)
	}

	return payment, nil
}

func updateInTx(
	ctx context.Context,
	db *sqlx.DB,
	isolation sql.IsolationLevel,
	fn func(ctx context.Context, tx *sqlx.Tx) error,
) (err error) {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, rollbackErr)
			}
			return
		}

		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
