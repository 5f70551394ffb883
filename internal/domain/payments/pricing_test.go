package payments_test

import (
	"errors"
	"testing"
	"time"

	"car-sharing-app/internal/domain/payments"
	"car-sharing-app/internal/domain/rentals"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPrice_PlannedReturn(t *testing.T) {
	start := date(2025, time.March, 1)
	end := date(2025, time.March, 5)
	r := &rentals.Rental{RentalDate: start, ReturnDate: &end}

	got, err := payments.Price(r, 25.00)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got != 100.00 {
		t.Fatalf("amount = %v; want 100.00", got)
	}
}

func TestPrice_SameDayChargesOneDay(t *testing.T) {
	day := date(2025, time.March, 1)
	r := &rentals.Rental{RentalDate: day, ReturnDate: &day}

	got, err := payments.Price(r, 42.50)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got != 42.50 {
		t.Fatalf("amount = %v; want the daily fee 42.50", got)
	}
}

func TestPrice_ActualReturnWins(t *testing.T) {
	start := date(2025, time.March, 1)
	planned := date(2025, time.March, 10)
	actual := date(2025, time.March, 3)
	r := &rentals.Rental{RentalDate: start, ReturnDate: &planned, ActualReturnDate: &actual}

	got, err := payments.Price(r, 10.00)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got != 20.00 {
		t.Fatalf("amount = %v; want 20.00 (2 days to actual return)", got)
	}
}

func TestPrice_NoEndDate(t *testing.T) {
	r := &rentals.Rental{RentalDate: date(2025, time.March, 1)}

	_, err := payments.Price(r, 10.00)
	if !errors.Is(err, payments.ErrMissingReturnDate) {
		t.Fatalf("got %v; want ErrMissingReturnDate", err)
	}
}

func TestCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{100.00, 10000},
		{42.50, 4250},
		{29.99, 2999},
		{0.01, 1},
	}
	for _, tc := range cases {
		if got := payments.Cents(tc.amount); got != tc.want {
			t.Errorf("Cents(%v) = %d; want %d", tc.amount, got, tc.want)
		}
	}
}
