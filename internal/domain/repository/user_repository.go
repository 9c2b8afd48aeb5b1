package repository

import (
	"errors"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the unique email index rejects
// the insert.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the interface for user-related database operations.
// The store must guarantee read-your-writes within a single request; the
// services do not cache user records.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	SetPremium(id string) error
	Delete(id string) error
}
