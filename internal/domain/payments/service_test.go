package payments_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"car-sharing-app/internal/domain/cars"
	"car-sharing-app/internal/domain/events"
	"car-sharing-app/internal/domain/payments"
	"car-sharing-app/internal/domain/rentals"
)

type fakeStore struct {
	rentals  map[uint]rentals.Rental
	payments map[uint]payments.Payment
	nextID   uint

	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rentals:  make(map[uint]rentals.Rental),
		payments: make(map[uint]payments.Payment),
	}
}

func (f *fakeStore) Transact(ctx context.Context, fn func(tx payments.Store) error) error {
	snap := make(map[uint]payments.Payment, len(f.payments))
	for k, v := range f.payments {
		snap[k] = v
	}
	if err := fn(f); err != nil {
		f.payments = snap
		return err
	}
	return nil
}

func (f *fakeStore) RentalWithCar(ctx context.Context, rentalID uint) (*rentals.Rental, error) {
	rental, ok := f.rentals[rentalID]
	if !ok {
		return nil, rentals.ErrNotFound
	}
	return &rental, nil
}

func (f *fakeStore) BySessionID(ctx context.Context, sessionID string) (*payments.Payment, error) {
	for _, p := range f.payments {
		if p.SessionID == sessionID {
			p := p
			return &p, nil
		}
	}
	return nil, payments.ErrNotFound
}

func (f *fakeStore) Save(ctx context.Context, p *payments.Payment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	}
	f.payments[p.ID] = *p
	return nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID uint, page, size int) ([]payments.Payment, int64, error) {
	var out []payments.Payment
	for _, p := range f.payments {
		r, ok := f.rentals[p.RentalID]
		if ok && r.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type checkoutMock struct {
	createFn func(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error)
	expired  []string
}

func (m *checkoutMock) CreateSession(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
	return m.createFn(ctx, name, amountCents, successURL, cancelURL)
}

func (m *checkoutMock) ExpireSession(ctx context.Context, sessionID string) error {
	m.expired = append(m.expired, sessionID)
	return nil
}

type pubMock struct {
	published []events.Event
}

func (p *pubMock) Publish(ctx context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

func okCheckout() *checkoutMock {
	return &checkoutMock{
		createFn: func(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
			return payments.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}, nil
		},
	}
}

func seed(store *fakeStore) {
	start := date(2025, time.March, 1)
	planned := date(2025, time.March, 5)
	store.rentals[1] = rentals.Rental{
		ID:         1,
		RentalDate: start,
		ReturnDate: &planned,
		CarID:      7,
		Car:        cars.Car{ID: 7, Model: "Model 3", DailyFee: 25.00},
		UserID:     2,
	}
}

const appURL = "http://localhost:8080"

func TestCreateSession_PaymentTypeComputesAmount(t *testing.T) {
	store := newFakeStore()
	seed(store)
	checkout := okCheckout()

	var gotCents int64
	var gotSuccess string
	inner := checkout.createFn
	checkout.createFn = func(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
		gotCents = amountCents
		gotSuccess = successURL
		return inner(ctx, name, amountCents, successURL, cancelURL)
	}

	svc := payments.NewService(store, checkout, &pubMock{}, appURL)

	ignored := 999.0
	p, err := svc.CreateSession(context.Background(), payments.CreateInput{
		RentalID: 1,
		Type:     payments.TypePayment,
		Amount:   &ignored,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if p.AmountToPay != 100.00 {
		t.Errorf("amount = %v; want 100.00 (4 days x 25.00), caller amount ignored", p.AmountToPay)
	}
	if gotCents != 10000 {
		t.Errorf("gateway cents = %d; want 10000", gotCents)
	}
	if p.Status != payments.StatusPending {
		t.Errorf("status = %s; want PENDING", p.Status)
	}
	if p.SessionID != "cs_test_123" || p.SessionURL == "" {
		t.Errorf("session not carried onto payment: %+v", p)
	}
	if !strings.Contains(gotSuccess, "{CHECKOUT_SESSION_ID}") {
		t.Errorf("success URL missing session placeholder: %q", gotSuccess)
	}
}

func TestCreateSession_FineRequiresPositiveAmount(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	zero := 0.0
	negative := -5.0
	for _, amount := range []*float64{nil, &zero, &negative} {
		_, err := svc.CreateSession(context.Background(), payments.CreateInput{
			RentalID: 1,
			Type:     payments.TypeFine,
			Amount:   amount,
		})
		if !errors.Is(err, payments.ErrInvalidAmount) {
			t.Fatalf("amount %v: got %v; want ErrInvalidAmount", amount, err)
		}
	}
}

func TestCreateSession_FineStoresExactAmount(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	fine := 13.37
	p, err := svc.CreateSession(context.Background(), payments.CreateInput{
		RentalID: 1,
		Type:     payments.TypeFine,
		Amount:   &fine,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if p.AmountToPay != fine {
		t.Errorf("amount = %v; want exactly %v, no day-based calculation", p.AmountToPay, fine)
	}
	if p.Type != payments.TypeFine {
		t.Errorf("type = %s; want FINE", p.Type)
	}
}

func TestCreateSession_RentalNotFound(t *testing.T) {
	store := newFakeStore()
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 404, Type: payments.TypePayment})
	if !errors.Is(err, rentals.ErrNotFound) {
		t.Fatalf("got %v; want rentals.ErrNotFound", err)
	}
}

func TestCreateSession_CompletedRentalRejected(t *testing.T) {
	store := newFakeStore()
	seed(store)
	returned := date(2025, time.March, 4)
	r := store.rentals[1]
	r.ActualReturnDate = &returned
	store.rentals[1] = r

	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	for _, typ := range []payments.Type{payments.TypePayment, payments.TypeFine} {
		fine := 10.0
		_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: typ, Amount: &fine})
		if !errors.Is(err, payments.ErrRentalCompleted) {
			t.Fatalf("type %s: got %v; want ErrRentalCompleted", typ, err)
		}
	}
}

func TestCreateSession_OpenEndedRentalCannotBePriced(t *testing.T) {
	store := newFakeStore()
	seed(store)
	r := store.rentals[1]
	r.ReturnDate = nil
	store.rentals[1] = r

	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if !errors.Is(err, payments.ErrMissingReturnDate) {
		t.Fatalf("got %v; want ErrMissingReturnDate", err)
	}
}

func TestCreateSession_GatewayFailure(t *testing.T) {
	store := newFakeStore()
	seed(store)
	checkout := &checkoutMock{
		createFn: func(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
			return payments.Session{}, errors.New("boom")
		},
	}
	svc := payments.NewService(store, checkout, &pubMock{}, appURL)

	_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if !errors.Is(err, payments.ErrGateway) {
		t.Fatalf("got %v; want ErrGateway", err)
	}
	if len(store.payments) != 0 {
		t.Error("no payment should be persisted on gateway failure")
	}
}

func TestCreateSession_IncompleteSessionRejected(t *testing.T) {
	store := newFakeStore()
	seed(store)
	checkout := &checkoutMock{
		createFn: func(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
			return payments.Session{ID: "cs_test_123"}, nil // no URL
		},
	}
	svc := payments.NewService(store, checkout, &pubMock{}, appURL)

	_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if !errors.Is(err, payments.ErrGateway) {
		t.Fatalf("got %v; want ErrGateway for incomplete session", err)
	}
}

func TestCreateSession_PersistFailureExpiresSession(t *testing.T) {
	store := newFakeStore()
	seed(store)
	store.saveErr = errors.New("db down")
	checkout := okCheckout()
	svc := payments.NewService(store, checkout, &pubMock{}, appURL)

	_, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if len(checkout.expired) != 1 || checkout.expired[0] != "cs_test_123" {
		t.Fatalf("expired sessions = %v; want the orphaned session expired", checkout.expired)
	}
}

func TestHandleSuccess(t *testing.T) {
	store := newFakeStore()
	seed(store)
	pub := &pubMock{}
	svc := payments.NewService(store, okCheckout(), pub, appURL)

	created, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	settled, err := svc.HandleSuccess(context.Background(), created.SessionID)
	if err != nil {
		t.Fatalf("HandleSuccess: %v", err)
	}
	if settled.Status != payments.StatusPaid {
		t.Errorf("status = %s; want PAID", settled.Status)
	}
	if stored := store.payments[settled.ID]; stored.Status != payments.StatusPaid {
		t.Errorf("stored status = %s; want PAID", stored.Status)
	}
	last := pub.published[len(pub.published)-1]
	if _, ok := last.(events.PaymentReceived); !ok {
		t.Errorf("last event is %T; want PaymentReceived", last)
	}
}

func TestHandleSuccess_UnknownSession(t *testing.T) {
	store := newFakeStore()
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	_, err := svc.HandleSuccess(context.Background(), "cs_unknown")
	if !errors.Is(err, payments.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestHandleCancel_DoesNotMutate(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	created, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	msg, err := svc.HandleCancel(context.Background(), created.SessionID)
	if err != nil {
		t.Fatalf("HandleCancel: %v", err)
	}
	if msg != "Payment was cancelled." {
		t.Errorf("message = %q", msg)
	}
	if stored := store.payments[created.ID]; stored.Status != payments.StatusPending {
		t.Errorf("cancel mutated status to %s; want still PENDING", stored.Status)
	}

	if _, err := svc.HandleCancel(context.Background(), "cs_unknown"); !errors.Is(err, payments.ErrNotFound) {
		t.Fatalf("unknown session: got %v; want ErrNotFound", err)
	}
}

func TestListByUser(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := payments.NewService(store, okCheckout(), &pubMock{}, appURL)

	if _, err := svc.CreateSession(context.Background(), payments.CreateInput{RentalID: 1, Type: payments.TypePayment}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	rows, total, err := svc.ListByUser(context.Background(), 2, 0, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("rows=%d total=%d; want 1 and 1", len(rows), total)
	}

	rows, total, err = svc.ListByUser(context.Background(), 3, 0, 10)
	if err != nil {
		t.Fatalf("ListByUser other user: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("other user rows=%d total=%d; want 0 and 0", len(rows), total)
	}
}
