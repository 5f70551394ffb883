package events

import (
	"context"
	"fmt"
)

// Event is any domain event with a name identifier.
type Event interface {
	EventName() string
}

// Handler processes a published event.
type Handler func(ctx context.Context, e Event) error

// Publisher accepts events for asynchronous delivery after the
// publishing operation has committed. Delivery is best-effort and must
// never fail the operation that raised the event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Message is an event that carries human-readable notification text.
type Message interface {
	Event
	Text() string
}

const (
	NameRentalOpened    = "rental.opened"
	NameRentalClosed    = "rental.closed"
	NamePaymentReceived = "payment.received"
)

type RentalOpened struct {
	RentalID uint
	CarModel string
}

func (RentalOpened) EventName() string { return NameRentalOpened }

func (e RentalOpened) Text() string {
	return "New lease created: Auto: " + e.CarModel
}

type RentalClosed struct {
	RentalID uint
	CarModel string
}

func (RentalClosed) EventName() string { return NameRentalClosed }

func (e RentalClosed) Text() string {
	return "Rental completed: Auto: " + e.CarModel + " returned"
}

type PaymentReceived struct {
	PaymentID uint
	RentalID  uint
	Amount    float64
}

func (PaymentReceived) EventName() string { return NamePaymentReceived }

func (e PaymentReceived) Text() string {
	return fmt.Sprintf("Payment received: %.2f for rental #%d", e.Amount, e.RentalID)
}
