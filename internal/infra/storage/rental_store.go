package storage

import (
	"context"
	"errors"

	"car-sharing-app/internal/domain/cars"
	"car-sharing-app/internal/domain/rentals"
	"car-sharing-app/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RentalStore backs rentals.Store with gorm. CarForUpdate takes a row
// lock, so inside Transact the debit/credit of a car's inventory is
// single-writer: two racing creates against the last unit serialize and
// the second one sees zero.
type RentalStore struct {
	db *gorm.DB
}

func NewRentalStore(db *gorm.DB) *RentalStore {
	return &RentalStore{db: db}
}

func (s *RentalStore) Transact(ctx context.Context, fn func(tx rentals.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RentalStore{db: tx})
	})
}

func (s *RentalStore) CarForUpdate(ctx context.Context, id uint) (*cars.Car, error) {
	var car cars.Car
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&car, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cars.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (s *RentalStore) SaveCar(ctx context.Context, car *cars.Car) error {
	return s.db.WithContext(ctx).Save(car).Error
}

func (s *RentalStore) UserByID(ctx context.Context, id uint) (*users.User, error) {
	var user users.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RentalStore) RentalByID(ctx context.Context, id uint) (*rentals.Rental, error) {
	var rental rentals.Rental
	err := s.db.WithContext(ctx).Preload("Car").First(&rental, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rentals.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (s *RentalStore) SaveRental(ctx context.Context, r *rentals.Rental) error {
	return s.db.WithContext(ctx).Omit("Car", "User").Save(r).Error
}

func (s *RentalStore) ListByUserAndStatus(ctx context.Context, userID uint, active bool, page, size int) ([]rentals.Rental, int64, error) {
	q := s.db.WithContext(ctx).Model(&rentals.Rental{}).Where("user_id = ?", userID)
	if active {
		q = q.Where("actual_return_date IS NULL")
	} else {
		q = q.Where("actual_return_date IS NOT NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []rentals.Rental
	err := q.Order("id").Offset(page * size).Limit(size).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
