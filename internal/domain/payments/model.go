package payments

import (
	"errors"
	"time"

	"car-sharing-app/internal/domain/rentals"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("payment not found")
	ErrRentalCompleted = errors.New("rental completed")
	ErrInvalidAmount   = errors.New("fine amount must be provided and greater than 0")
	ErrGateway         = errors.New("payment gateway failure")
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

type Type string

const (
	TypePayment Type = "PAYMENT"
	TypeFine    Type = "FINE"
)

func (t Type) Valid() bool {
	return t == TypePayment || t == TypeFine
}

// Payment records one checkout session for a rental. Many payments may
// reference the same rental over time.
type Payment struct {
	ID     uint   `gorm:"primaryKey"`
	Status Status `gorm:"type:varchar(20);not null"`
	Type   Type   `gorm:"type:varchar(20);not null"`

	RentalID uint `gorm:"not null;index"`
	Rental   rentals.Rental

	SessionID   string  `gorm:"not null;uniqueIndex:idx_payments_session_id"`
	SessionURL  string  `gorm:"not null"`
	AmountToPay float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// MarkPaid moves PENDING to PAID. PAID is terminal; success redirects
// may be replayed, so re-marking a paid payment is a no-op.
func (p *Payment) MarkPaid() {
	p.Status = StatusPaid
}
