package bookings

import "fmt"

// ResolveSeatPrice returns the price in yen for one seat. A showing-level
// uniform price overrides the tariff table for every seat.
func ResolveSeatPrice(uniformPrice *int, ticketType TicketType) (int, error) {
	if uniformPrice != nil {
		return *uniformPrice, nil
	}

	price, ok := DefaultPrices[ticketType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTicketType, ticketType)
	}
	return price, nil
}

// ResolveTotal prices every seat and returns the per-seat prices in input
// order plus their sum. Any unpriceable seat fails the whole resolution.
func ResolveTotal(uniformPrice *int, ticketTypes []TicketType) ([]int, int, error) {
	prices := make([]int, len(ticketTypes))
	total := 0
	for i, t := range ticketTypes {
		price, err := ResolveSeatPrice(uniformPrice, t)
		if err != nil {
			return nil, 0, err
		}
		prices[i] = price
		total += price
	}
	return prices, total, nil
}
