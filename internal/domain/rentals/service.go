package rentals

import (
	"context"
	"time"

	"car-sharing-app/internal/domain/cars"
	"car-sharing-app/internal/domain/events"
	"car-sharing-app/internal/domain/users"
)

// Store is the persistence boundary for the rental lifecycle. Transact
// must give the callback single-writer semantics for the car row it
// touches (row lock or equivalent); the service itself is written as if
// execution were serial.
type Store interface {
	Transact(ctx context.Context, fn func(tx Store) error) error
	CarForUpdate(ctx context.Context, id uint) (*cars.Car, error)
	SaveCar(ctx context.Context, car *cars.Car) error
	UserByID(ctx context.Context, id uint) (*users.User, error)
	RentalByID(ctx context.Context, id uint) (*Rental, error)
	SaveRental(ctx context.Context, r *Rental) error
	ListByUserAndStatus(ctx context.Context, userID uint, active bool, page, size int) ([]Rental, int64, error)
}

type CreateInput struct {
	CarID      uint
	UserID     uint
	RentalDate time.Time
	ReturnDate *time.Time
}

type Service struct {
	store  Store
	events events.Publisher
	now    func() time.Time
}

func NewService(store Store, pub events.Publisher) *Service {
	return &Service{store: store, events: pub, now: time.Now}
}

// Create opens a rental and takes one unit of the car's inventory in
// the same transaction. The requested rental date is validated against
// today but the stored rental always starts today.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Rental, error) {
	today := DateOnly(s.now())

	var rental *Rental
	err := s.store.Transact(ctx, func(tx Store) error {
		car, err := tx.CarForUpdate(ctx, in.CarID)
		if err != nil {
			return err
		}
		if !car.Available() {
			return cars.ErrNoInventory
		}
		if DateOnly(in.RentalDate).After(today) {
			return ErrFutureDate
		}
		if err := car.Debit(); err != nil {
			return err
		}
		if err := tx.SaveCar(ctx, car); err != nil {
			return err
		}

		user, err := tx.UserByID(ctx, in.UserID)
		if err != nil {
			return err
		}

		var planned *time.Time
		if in.ReturnDate != nil {
			d := DateOnly(*in.ReturnDate)
			planned = &d
		}
		r := &Rental{
			RentalDate: today,
			ReturnDate: planned,
			CarID:      car.ID,
			UserID:     user.ID,
		}
		if err := tx.SaveRental(ctx, r); err != nil {
			return err
		}
		r.Car = *car
		r.User = *user
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort; a failed notification never fails the rental.
	_ = s.events.Publish(ctx, events.RentalOpened{RentalID: rental.ID, CarModel: rental.Car.Model})
	return rental, nil
}

// Close sets the actual return date and gives the unit back to the
// car's inventory. Closing twice fails with ErrAlreadyReturned.
func (s *Service) Close(ctx context.Context, rentalID uint) (*Rental, error) {
	var rental *Rental
	err := s.store.Transact(ctx, func(tx Store) error {
		r, err := tx.RentalByID(ctx, rentalID)
		if err != nil {
			return err
		}
		car, err := tx.CarForUpdate(ctx, r.CarID)
		if err != nil {
			return err
		}
		if err := r.Close(s.now()); err != nil {
			return err
		}
		car.Credit()
		if err := tx.SaveCar(ctx, car); err != nil {
			return err
		}
		if err := tx.SaveRental(ctx, r); err != nil {
			return err
		}
		r.Car = *car
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.RentalClosed{RentalID: rental.ID, CarModel: rental.Car.Model})
	return rental, nil
}

func (s *Service) GetByID(ctx context.Context, rentalID uint) (*Rental, error) {
	return s.store.RentalByID(ctx, rentalID)
}

// ListByUserAndStatus returns the active or the closed partition of a
// user's rentals; a rental is in exactly one of the two.
func (s *Service) ListByUserAndStatus(ctx context.Context, userID uint, active bool, page, size int) ([]Rental, int64, error) {
	return s.store.ListByUserAndStatus(ctx, userID, active, page, size)
}
