package application

import (
	"time"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
)

// UserView is the part of a user that is safe to hand back to callers.
type UserView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewUserView(u *entity.User) UserView {
	return UserView{
		ID:          u.ID(),
		Email:       u.Email().String(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
}

// AuthData is returned by SignUp and Login.
type AuthData struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// ProfileData is returned by UpdateProfile. UpdatedAt is always set.
type ProfileData struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}
