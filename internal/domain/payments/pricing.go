package payments

import (
	"errors"
	"math"
	"time"

	"car-sharing-app/internal/domain/rentals"
)

var ErrMissingReturnDate = errors.New("return date is required to calculate price")

// Price computes the amount owed for a rental span: the daily fee times
// the number of days between the rental date and the actual return date
// (planned return when the rental is still open), never less than one
// day so a same-day rental still pays for a full day.
func Price(r *rentals.Rental, dailyFee float64) (float64, error) {
	start := rentals.DateOnly(r.RentalDate)

	end := r.ActualReturnDate
	if end == nil {
		end = r.ReturnDate
	}
	if end == nil {
		return 0, ErrMissingReturnDate
	}

	days := daysBetween(start, rentals.DateOnly(*end))
	if days <= 0 {
		days = 1
	}
	return dailyFee * float64(days), nil
}

// Cents converts a decimal amount to the integer minor-currency units
// the gateway requires. Rounding to the nearest cent keeps binary
// float artifacts out of the gateway amount.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func daysBetween(a, b time.Time) int64 {
	return int64(b.Sub(a).Hours() / 24)
}
