package seats

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

// Store saves the reservation and publishes SeatsReserved_v1 in the same transaction.
// A reservation with an already used idempotency key is ignored.
func (r *PostgresRepository) Store(ctx context.Context, reservation entity.SeatReservation) (err error) {
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
		    seat_reservations (reservation_id, account_id, seats, idempotency_key, reserved_at) 
		VALUES (:reservation_id, :account_id, :seats, :idempotency_key, :reserved_at)
		ON CONFLICT (idempotency_key) DO NOTHING
		`, reservation)
	if err != nil {
		return fmt.Errorf("could not add seat reservation: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		log.FromContext(ctx).WithField("idempotency_key", reservation.IdempotencyKey).Info("Seats already reserved")
		return nil
	}

	err = outbox.PublishInTx(ctx, tx, entity.SeatsReserved_v1{
		Header:        entity.NewEventHeaderWithIdempotencyKey(reservation.IdempotencyKey),
		ReservationID: reservation.ReservationID,
		AccountID:     reservation.AccountID,
		Seats:         reservation.Seats,
		ReservedAt:    reservation.ReservedAt,
	})
	if err != nil {
		return fmt.Errorf("could not publish SeatsReserved_v1: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByAccountID(ctx context.Context, accountID int64) ([]entity.SeatReservation, error) {
	reservations := []entity.SeatReservation{}
	err := r.db.SelectContext(ctx, &reservations, `
		SELECT reservation_id, account_id, seats, idempotency_key, reserved_at
		FROM seat_reservations
		WHERE account_id = $1
		ORDER BY reserved_at ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not get seat reservations of account %d: %w", accountID, err)
	}

	return reservations, nil
}

func (r *PostgresRepository) CountReservedSeats(ctx context.Context, accountID int64) (int, error) {
	var seats int
	err := r.db.GetContext(ctx, &seats, `
		SELECT COALESCE(SUM(seats), 0)
		FROM seat_reservations
		WHERE account_id = $1
	`, accountID)
	if err != nil {
		return 0, fmt.Errorf("could not count reserved seats of account %d: %w", accountID, err)
	}

	return seats, nil
}
