package purchase_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketservice/entity"
	"ticketservice/purchase"
)

type collaboratorCall struct {
	Collaborator string
	AccountID    int64
	Value        int
}

type collaboratorsMock struct {
	mu    sync.Mutex
	calls []collaboratorCall

	PaymentErr     error
	ReservationErr error
}

func (m *collaboratorsMock) MakePayment(ctx context.Context, accountID int64, amountToPay int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, collaboratorCall{"payment", accountID, amountToPay})
	return m.PaymentErr
}

func (m *collaboratorsMock) ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, collaboratorCall{"seats", accountID, totalSeatsToAllocate})
	return m.ReservationErr
}

func (m *collaboratorsMock) Calls() []collaboratorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]collaboratorCall(nil), m.calls...)
}

func adult(n int) entity.TicketRequest  { return entity.MustNewTicketRequest(entity.TicketKindAdult, n) }
func child(n int) entity.TicketRequest  { return entity.MustNewTicketRequest(entity.TicketKindChild, n) }
func infant(n int) entity.TicketRequest { return entity.MustNewTicketRequest(entity.TicketKindInfant, n) }

func TestService_PurchaseTickets(t *testing.T) {
	testCases := []struct {
		name      string
		accountID int64
		requests  []entity.TicketRequest

		expectedErr   error
		expectedCalls []collaboratorCall
	}{
		{
			name:      "adults_and_child",
			accountID: 123,
			requests:  []entity.TicketRequest{adult(2), child(1)},
			expectedCalls: []collaboratorCall{
				{"payment", 123, 50},
				{"seats", 123, 3},
			},
		},
		{
			name:      "infant_is_free_and_takes_no_seat",
			accountID: 123,
			requests:  []entity.TicketRequest{adult(1), infant(1)},
			expectedCalls: []collaboratorCall{
				{"payment", 123, 20},
				{"seats", 123, 1},
			},
		},
		{
			name:      "exactly_twenty_tickets",
			accountID: 7,
			requests:  []entity.TicketRequest{adult(10), child(5), infant(5)},
			expectedCalls: []collaboratorCall{
				{"payment", 7, 250},
				{"seats", 7, 15},
			},
		},
		{
			name:      "same_kind_in_several_requests",
			accountID: 1,
			requests:  []entity.TicketRequest{child(2), adult(1), child(3)},
			expectedCalls: []collaboratorCall{
				{"payment", 1, 70},
				{"seats", 1, 6},
			},
		},
		{
			name:        "negative_account_id",
			accountID:   -1,
			requests:    []entity.TicketRequest{adult(2), child(1)},
			expectedErr: entity.ErrInvalidAccountID,
		},
		{
			name:        "zero_account_id",
			accountID:   0,
			requests:    []entity.TicketRequest{adult(1)},
			expectedErr: entity.ErrInvalidAccountID,
		},
		{
			name:        "invalid_account_id_wins_over_other_rules",
			accountID:   -5,
			requests:    []entity.TicketRequest{child(21)},
			expectedErr: entity.ErrInvalidAccountID,
		},
		{
			name:        "more_than_twenty_tickets",
			accountID:   123,
			requests:    []entity.TicketRequest{adult(21)},
			expectedErr: entity.ErrTooManyTickets,
		},
		{
			name:        "more_than_twenty_tickets_across_requests",
			accountID:   123,
			requests:    []entity.TicketRequest{adult(10), child(10), infant(1)},
			expectedErr: entity.ErrTooManyTickets,
		},
		{
			name:        "huge_count_wrapping_the_sum",
			accountID:   123,
			requests:    []entity.TicketRequest{adult(math.MaxInt), adult(1)},
			expectedErr: entity.ErrTooManyTickets,
		},
		{
			name:        "counts_summing_past_max_int",
			accountID:   123,
			requests:    []entity.TicketRequest{adult(1), child(math.MaxInt - 5), infant(math.MaxInt - 5)},
			expectedErr: entity.ErrTooManyTickets,
		},
		{
			name:        "too_many_tickets_checked_before_adult",
			accountID:   123,
			requests:    []entity.TicketRequest{child(21)},
			expectedErr: entity.ErrTooManyTickets,
		},
		{
			name:        "child_without_adult",
			accountID:   123,
			requests:    []entity.TicketRequest{child(1)},
			expectedErr: entity.ErrAdultTicketRequired,
		},
		{
			name:        "infant_without_adult",
			accountID:   123,
			requests:    []entity.TicketRequest{infant(2), child(1)},
			expectedErr: entity.ErrAdultTicketRequired,
		},
		{
			name:        "no_requests",
			accountID:   123,
			requests:    nil,
			expectedErr: entity.ErrAdultTicketRequired,
		},
		{
			name:        "zero_value_request",
			accountID:   123,
			requests:    []entity.TicketRequest{adult(1), {}},
			expectedErr: entity.ErrInvalidTicketRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			collaborators := &collaboratorsMock{}
			svc := purchase.NewService(collaborators, collaborators)

			err := svc.PurchaseTickets(context.Background(), tc.accountID, tc.requests...)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, tc.expectedErr.Error(), err.Error())

				var rejected entity.PurchaseRejectedError
				assert.ErrorAs(t, err, &rejected)

				assert.Empty(t, collaborators.Calls())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedCalls, collaborators.Calls())
		})
	}
}

func TestService_PurchaseTickets_payment_error(t *testing.T) {
	paymentErr := errors.New("card declined")
	collaborators := &collaboratorsMock{PaymentErr: paymentErr}
	svc := purchase.NewService(collaborators, collaborators)

	err := svc.PurchaseTickets(context.Background(), 123, adult(1))
	assert.Same(t, paymentErr, err)

	assert.Equal(t, []collaboratorCall{{"payment", 123, 20}}, collaborators.Calls())
}

func TestService_PurchaseTickets_reservation_error(t *testing.T) {
	reservationErr := errors.New("venue full")
	collaborators := &collaboratorsMock{ReservationErr: reservationErr}
	svc := purchase.NewService(collaborators, collaborators)

	err := svc.PurchaseTickets(context.Background(), 123, adult(1))
	assert.Same(t, reservationErr, err)

	// no refund is attempted
	assert.Equal(
		t,
		[]collaboratorCall{{"payment", 123, 20}, {"seats", 123, 1}},
		collaborators.Calls(),
	)
}

func TestService_Purchase(t *testing.T) {
	collaborators := &collaboratorsMock{}
	svc := purchase.NewService(collaborators, collaborators)

	err := svc.Purchase(context.Background(), entity.PurchaseInstruction{
		AccountID: 42,
		Requests:  []entity.TicketRequest{adult(1), child(2), infant(1)},
	})
	require.NoError(t, err)

	assert.Equal(
		t,
		[]collaboratorCall{{"payment", 42, 40}, {"seats", 42, 3}},
		collaborators.Calls(),
	)
}

func TestNewService_missing_collaborators(t *testing.T) {
	collaborators := &collaboratorsMock{}

	assert.Panics(t, func() { purchase.NewService(nil, collaborators) })
	assert.Panics(t, func() { purchase.NewService(collaborators, nil) })
}
