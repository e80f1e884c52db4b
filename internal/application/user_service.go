package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	repo "github.com/oksasatya/go-identity-service/internal/domain/repository"
	"github.com/oksasatya/go-identity-service/internal/domain/security"
)

// Service orchestrates the identity use cases. It holds no per-request state;
// every call works on its own transient aggregate.
type Service struct {
	Repo   repo.UserRepository
	Hasher security.PasswordHasher
	Tokens security.TokenIssuer
	Logger *logrus.Logger
	Events EventPublisher
	Index  UserIndex
}

type Option func(*Service)

// WithEventPublisher publishes user lifecycle events after each write.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.Events = p }
}

// WithUserIndex keeps a search projection in sync and enables SearchUsers.
func WithUserIndex(idx UserIndex) Option {
	return func(s *Service) { s.Index = idx }
}

func NewService(repo repo.UserRepository, hasher security.PasswordHasher, tokens security.TokenIssuer, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &Service{
		Repo:   repo,
		Hasher: hasher,
		Tokens: tokens,
		Logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// internal logs an unexpected fault and hides it behind the generic message.
func internal[T any](s *Service, op string, err error, fields logrus.Fields) Result[T] {
	s.Logger.WithFields(fields).WithError(err).WithField("op", op).Error("use case failed")
	return fail[T](KindInternal, MsgInternal)
}

// recoverInternal converts a panic inside a use case into an internal failure.
func recoverInternal[T any](s *Service, op string, res *Result[T]) {
	if r := recover(); r != nil {
		*res = internal[T](s, op, fmt.Errorf("panic: %v", r), nil)
	}
}

// afterWrite fans a persisted change out to the optional event and index
// sinks. Failures are logged only.
func (s *Service) afterWrite(ctx context.Context, event string, u *entity.User) {
	if s.Events != nil {
		ev := UserEvent{Type: event, UserID: u.ID(), Email: u.Email().String(), OccurredAt: time.Now().UTC()}
		if err := s.Events.Publish(ctx, ev); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).WithField("event", event).Warn("publish user event failed")
		}
	}
	if s.Index != nil && event != EventUserLoggedIn && event != EventUserPasswordChange {
		if err := s.Index.Index(ctx, NewUserView(u)); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Warn("index user failed")
		}
	}
}
