package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			payment_id UUID PRIMARY KEY,
			account_id BIGINT NOT NULL,
			amount INTEGER NOT NULL,
			idempotency_key VARCHAR(255) NOT NULL UNIQUE,
			taken_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS payments_account_id_idx ON payments (account_id);

		CREATE TABLE IF NOT EXISTS seat_reservations (
			reservation_id UUID PRIMARY KEY,
			account_id BIGINT NOT NULL,
			seats INTEGER NOT NULL,
			idempotency_key VARCHAR(255) NOT NULL UNIQUE,
			reserved_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS seat_reservations_account_id_idx ON seat_reservations (account_id);

		CREATE TABLE IF NOT EXISTS events (
			event_id UUID PRIMARY KEY,
			published_at TIMESTAMP NOT NULL,
			event_name VARCHAR(255) NOT NULL,
			event_payload JSONB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS read_model_ops_payments (
			payment_id UUID PRIMARY KEY,
			payload JSONB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}

	return nil
}
