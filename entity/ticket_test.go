package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketservice/entity"
)

func TestParseTicketKind(t *testing.T) {
	testCases := []struct {
		in   string
		want entity.TicketKind
	}{
		{in: "ADULT", want: entity.TicketKindAdult},
		{in: "child", want: entity.TicketKindChild},
		{in: " Infant ", want: entity.TicketKindInfant},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			kind, err := entity.ParseTicketKind(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}

	_, err := entity.ParseTicketKind("SENIOR")
	assert.ErrorIs(t, err, entity.ErrUnknownTicketKind)
}

func TestTicketKind_prices(t *testing.T) {
	assert.Equal(t, 20, entity.TicketKindAdult.UnitPrice())
	assert.Equal(t, 10, entity.TicketKindChild.UnitPrice())
	assert.Equal(t, 0, entity.TicketKindInfant.UnitPrice())

	assert.True(t, entity.TicketKindAdult.Chargeable())
	assert.True(t, entity.TicketKindChild.Chargeable())
	assert.False(t, entity.TicketKindInfant.Chargeable())
}

func TestNewTicketRequest(t *testing.T) {
	req, err := entity.NewTicketRequest(entity.TicketKindChild, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketKindChild, req.Kind())
	assert.Equal(t, 3, req.Count())
	assert.True(t, req.Valid())

	for _, count := range []int{0, -1} {
		_, err := entity.NewTicketRequest(entity.TicketKindAdult, count)
		assert.ErrorIs(t, err, entity.ErrInvalidTicketCount)
	}

	_, err = entity.NewTicketRequest(entity.TicketKind("VIP"), 1)
	assert.ErrorIs(t, err, entity.ErrUnknownTicketKind)

	assert.False(t, entity.TicketRequest{}.Valid())
	assert.Panics(t, func() {
		entity.MustNewTicketRequest(entity.TicketKindAdult, 0)
	})
}

func TestPurchaseRejectedError(t *testing.T) {
	var err error = entity.ErrTooManyTickets

	var rejected entity.PurchaseRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Cannot purchase more than 20 tickets at a time", rejected.Reason)
	assert.ErrorIs(t, err, entity.ErrTooManyTickets)
	assert.NotErrorIs(t, err, entity.ErrAdultTicketRequired)
}
