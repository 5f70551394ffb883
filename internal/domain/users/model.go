package users

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email is already in use")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleManager
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"not null;uniqueIndex:idx_users_email"`
	FirstName string
	LastName  string
	Password  string `gorm:"not null"`
	Role      Role   `gorm:"type:varchar(20);not null;default:'customer'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
