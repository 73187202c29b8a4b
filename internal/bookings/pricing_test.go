package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSeatPrice_TariffTable(t *testing.T) {
	tests := []struct {
		ticketType TicketType
		want       int
	}{
		{TicketGeneral, 1800},
		{TicketStudent, 1600},
		{TicketYouth, 1400},
		{TicketChild, 1000},
	}

	for _, tt := range tests {
		price, err := ResolveSeatPrice(nil, tt.ticketType)
		require.NoError(t, err)
		assert.Equal(t, tt.want, price)
	}
}

func TestResolveSeatPrice_UniformOverridesEveryType(t *testing.T) {
	uniform := 1200
	for _, ticketType := range []TicketType{TicketGeneral, TicketStudent, TicketYouth, TicketChild} {
		price, err := ResolveSeatPrice(&uniform, ticketType)
		require.NoError(t, err)
		assert.Equal(t, 1200, price)
	}
}

func TestResolveSeatPrice_UnknownType(t *testing.T) {
	_, err := ResolveSeatPrice(nil, TicketType("SENIOR"))
	assert.ErrorIs(t, err, ErrInvalidTicketType)
}

func TestResolveTotal_MixedTickets(t *testing.T) {
	// 2 GENERAL + 1 CHILD + 1 STUDENT = 1800*2 + 1000 + 1600
	prices, total, err := ResolveTotal(nil, []TicketType{
		TicketGeneral, TicketGeneral, TicketChild, TicketStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1800, 1800, 1000, 1600}, prices)
	assert.Equal(t, 6200, total)
}

func TestResolveTotal_UniformPrice(t *testing.T) {
	uniform := 1200
	prices, total, err := ResolveTotal(&uniform, []TicketType{
		TicketGeneral, TicketChild, TicketYouth,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1200, 1200, 1200}, prices)
	assert.Equal(t, 3600, total)
}

func TestResolveTotal_FailsOnAnyBadType(t *testing.T) {
	_, _, err := ResolveTotal(nil, []TicketType{TicketGeneral, TicketType("")})
	assert.ErrorIs(t, err, ErrInvalidTicketType)
}
