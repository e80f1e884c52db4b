package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Add when the unique email index rejects the insert.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the persistence operations for users. Implementations
// must enforce uniqueness of the normalized email themselves; it is the only
// guard against two concurrent sign-ups for the same address.
type UserRepository interface {
	GetByEmail(ctx context.Context, email vo.Email) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetAll returns every user in the store's enumeration order.
	GetAll(ctx context.Context) ([]*entity.User, error)
	Add(ctx context.Context, u *entity.User) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) (*entity.User, error)
}
