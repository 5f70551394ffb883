package rentals

import (
	"errors"
	"time"

	"car-sharing-app/internal/domain/cars"
	"car-sharing-app/internal/domain/users"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("rental not found")
	ErrFutureDate      = errors.New("rental date cannot be in the future")
	ErrAlreadyReturned = errors.New("the car has already been returned")
)

// Rental is active while ActualReturnDate is unset. ReturnDate is the
// planned return and may be left open at creation.
type Rental struct {
	ID               uint       `gorm:"primaryKey"`
	RentalDate       time.Time  `gorm:"type:date;not null"`
	ReturnDate       *time.Time `gorm:"type:date"`
	ActualReturnDate *time.Time `gorm:"type:date"`

	CarID  uint `gorm:"not null;index"`
	Car    cars.Car
	UserID uint `gorm:"not null;index"`
	User   users.User

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (r *Rental) Active() bool {
	return r.ActualReturnDate == nil
}

// Close is the only Active -> Closed transition; a closed rental never
// reopens.
func (r *Rental) Close(on time.Time) error {
	if r.ActualReturnDate != nil {
		return ErrAlreadyReturned
	}
	d := DateOnly(on)
	r.ActualReturnDate = &d
	return nil
}

// DateOnly strips the time-of-day; rental dates are calendar dates.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
