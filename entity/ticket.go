package entity

import (
	"strings"
)

type TicketKind string

const (
	TicketKindAdult  TicketKind = "ADULT"
	TicketKindChild  TicketKind = "CHILD"
	TicketKindInfant TicketKind = "INFANT"
)

var ticketPrices = map[TicketKind]int{
	TicketKindAdult:  20,
	TicketKindChild:  10,
	TicketKindInfant: 0,
}

func ParseTicketKind(s string) (TicketKind, error) {
	kind := TicketKind(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", ErrUnknownTicketKind
	}

	return kind, nil
}

func (k TicketKind) Valid() bool {
	_, ok := ticketPrices[k]
	return ok
}

// UnitPrice returns the price of a single ticket, in whole currency units.
func (k TicketKind) UnitPrice() int {
	return ticketPrices[k]
}

// Chargeable reports whether a ticket of this kind takes a seat.
// Infants sit on an adult's lap.
func (k TicketKind) Chargeable() bool {
	return k != TicketKindInfant
}

func (k TicketKind) String() string {
	return string(k)
}

// TicketRequest asks for count tickets of a single kind.
// Use NewTicketRequest; the zero value is not a valid request.
type TicketRequest struct {
	kind  TicketKind
	count int
}

func NewTicketRequest(kind TicketKind, count int) (TicketRequest, error) {
	if !kind.Valid() {
		return TicketRequest{}, ErrUnknownTicketKind
	}
	if count < 1 {
		return TicketRequest{}, ErrInvalidTicketCount
	}

	return TicketRequest{kind: kind, count: count}, nil
}

// MustNewTicketRequest is like NewTicketRequest but panics on invalid input.
func MustNewTicketRequest(kind TicketKind, count int) TicketRequest {
	req, err := NewTicketRequest(kind, count)
	if err != nil {
		panic(err)
	}

	return req
}

func (r TicketRequest) Kind() TicketKind {
	return r.kind
}

func (r TicketRequest) Count() int {
	return r.count
}

// Valid is false for requests that were not built with NewTicketRequest.
func (r TicketRequest) Valid() bool {
	return r.kind.Valid() && r.count >= 1
}
