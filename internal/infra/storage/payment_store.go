package storage

import (
	"context"
	"errors"

	"car-sharing-app/internal/domain/payments"
	"car-sharing-app/internal/domain/rentals"

	"gorm.io/gorm"
)

type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Transact(ctx context.Context, fn func(tx payments.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentStore{db: tx})
	})
}

func (s *PaymentStore) RentalWithCar(ctx context.Context, rentalID uint) (*rentals.Rental, error) {
	var rental rentals.Rental
	err := s.db.WithContext(ctx).Preload("Car").First(&rental, rentalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rentals.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (s *PaymentStore) BySessionID(ctx context.Context, sessionID string) (*payments.Payment, error) {
	var payment payments.Payment
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payments.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentStore) Save(ctx context.Context, p *payments.Payment) error {
	return s.db.WithContext(ctx).Omit("Rental").Save(p).Error
}

// ListByUser joins through the rental because payments reference the
// user only via their rental.
func (s *PaymentStore) ListByUser(ctx context.Context, userID uint, page, size int) ([]payments.Payment, int64, error) {
	q := s.db.WithContext(ctx).Model(&payments.Payment{}).
		Joins("JOIN rentals ON rentals.id = payments.rental_id").
		Where("rentals.user_id = ? AND rentals.deleted_at IS NULL", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []payments.Payment
	err := q.Order("payments.id").Offset(page * size).Limit(size).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
