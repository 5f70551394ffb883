package payments

import (
	"context"
	"fmt"

	"car-sharing-app/internal/domain/events"
	"car-sharing-app/internal/domain/rentals"
)

// Session is the gateway's view of one checkout attempt.
type Session struct {
	ID  string
	URL string
}

// Checkout is the external payment gateway.
type Checkout interface {
	CreateSession(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (Session, error)
	ExpireSession(ctx context.Context, sessionID string) error
}

type Store interface {
	Transact(ctx context.Context, fn func(tx Store) error) error
	RentalWithCar(ctx context.Context, rentalID uint) (*rentals.Rental, error)
	BySessionID(ctx context.Context, sessionID string) (*Payment, error)
	Save(ctx context.Context, p *Payment) error
	ListByUser(ctx context.Context, userID uint, page, size int) ([]Payment, int64, error)
}

type CreateInput struct {
	RentalID uint
	Type     Type
	Amount   *float64
}

type Service struct {
	store    Store
	checkout Checkout
	events   events.Publisher
	appURL   string
}

func NewService(store Store, checkout Checkout, pub events.Publisher, appURL string) *Service {
	return &Service{store: store, checkout: checkout, events: pub, appURL: appURL}
}

// CreateSession prices the request, opens a checkout session with the
// gateway and persists a PENDING payment carrying the session handle.
// The gateway call happens outside the storage transaction; if the
// local record cannot be persisted afterwards, the upstream session is
// expired so it cannot be paid against a lost record.
func (s *Service) CreateSession(ctx context.Context, in CreateInput) (*Payment, error) {
	rental, err := s.store.RentalWithCar(ctx, in.RentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Active() {
		return nil, ErrRentalCompleted
	}

	var amount float64
	if in.Type == TypePayment {
		amount, err = Price(rental, rental.Car.DailyFee)
		if err != nil {
			return nil, err
		}
	} else if in.Amount == nil || *in.Amount <= 0 {
		return nil, ErrInvalidAmount
	} else {
		amount = *in.Amount
	}

	sess, err := s.checkout.CreateSession(ctx, "Car Rental Payment", Cents(amount),
		s.appURL+"/payments/success?session_id={CHECKOUT_SESSION_ID}",
		s.appURL+"/payments/cancel?session_id={CHECKOUT_SESSION_ID}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if sess.ID == "" || sess.URL == "" {
		return nil, fmt.Errorf("%w: gateway returned incomplete session", ErrGateway)
	}

	payment := &Payment{
		Status:      StatusPending,
		Type:        in.Type,
		RentalID:    rental.ID,
		SessionID:   sess.ID,
		SessionURL:  sess.URL,
		AmountToPay: amount,
	}
	if err := s.store.Save(ctx, payment); err != nil {
		_ = s.checkout.ExpireSession(ctx, sess.ID)
		return nil, fmt.Errorf("persist payment: %w", err)
	}
	payment.Rental = *rental
	return payment, nil
}

// HandleSuccess settles the payment the gateway redirected back for.
func (s *Service) HandleSuccess(ctx context.Context, sessionID string) (*Payment, error) {
	var payment *Payment
	err := s.store.Transact(ctx, func(tx Store) error {
		p, err := tx.BySessionID(ctx, sessionID)
		if err != nil {
			return err
		}
		p.MarkPaid()
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.PaymentReceived{
		PaymentID: payment.ID,
		RentalID:  payment.RentalID,
		Amount:    payment.AmountToPay,
	})
	return payment, nil
}

// HandleCancel acknowledges a cancel redirect. The payment stays
// PENDING; the customer may retry the same session from its URL.
func (s *Service) HandleCancel(ctx context.Context, sessionID string) (string, error) {
	if _, err := s.store.BySessionID(ctx, sessionID); err != nil {
		return "", err
	}
	return "Payment was cancelled.", nil
}

func (s *Service) ListByUser(ctx context.Context, userID uint, page, size int) ([]Payment, int64, error) {
	return s.store.ListByUser(ctx, userID, page, size)
}
