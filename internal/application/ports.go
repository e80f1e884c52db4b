package application

import (
	"context"
	"time"
)

const (
	EventUserSignedUp       = "user.signed_up"
	EventUserLoggedIn       = "user.logged_in"
	EventUserProfileUpdate  = "user.profile_updated"
	EventUserPasswordChange = "user.password_changed"
	EventUserActivated      = "user.activated"
	EventUserDeactivated    = "user.deactivated"
)

// UserEvent is emitted after a user change has been persisted.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers user lifecycle events. Delivery is best-effort:
// a failure is logged and never changes a use case outcome.
type EventPublisher interface {
	Publish(ctx context.Context, ev UserEvent) error
}

// UserIndex is a searchable projection of public user views.
type UserIndex interface {
	Index(ctx context.Context, v UserView) error
	Search(ctx context.Context, q string, size int) ([]UserView, error)
}
