package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	repo "github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

// loadUser fetches a user by id, folding a missing row into UserNotFound.
func loadUser[T any](ctx context.Context, s *Service, op, id string) (*entity.User, *Result[T]) {
	user, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && user == nil) {
		r := fail[T](KindUserNotFound, MsgUserNotFound)
		return nil, &r
	}
	if err != nil {
		r := internal[T](s, op, err, logrus.Fields{"user_id": id})
		return nil, &r
	}
	return user, nil
}

// persist writes u back, mapping a vanished row to UserNotFound.
func persist[T any](ctx context.Context, s *Service, op string, u *entity.User) (*entity.User, *Result[T]) {
	updated, err := s.Repo.Update(ctx, u)
	if errors.Is(err, repo.ErrNotFound) {
		r := fail[T](KindUserNotFound, MsgUserNotFound)
		return nil, &r
	}
	if err != nil {
		r := internal[T](s, op, err, logrus.Fields{"user_id": u.ID()})
		return nil, &r
	}
	if updated == nil {
		updated = u
	}
	return updated, nil
}

// UpdateProfile replaces the user's first and last name.
func (s *Service) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (res Result[ProfileData]) {
	defer recoverInternal(s, "update_profile", &res)

	user, failure := loadUser[ProfileData](ctx, s, "update_profile.load", cmd.UserID)
	if failure != nil {
		return *failure
	}
	if err := entity.CheckNamesPresent(cmd.FirstName, cmd.LastName); err != nil {
		return invalid[ProfileData](err)
	}
	if err := user.UpdateProfile(cmd.FirstName, cmd.LastName); err != nil {
		return invalid[ProfileData](err)
	}

	updated, failure := persist[ProfileData](ctx, s, "update_profile.update", user)
	if failure != nil {
		return *failure
	}
	s.afterWrite(ctx, EventUserProfileUpdate, updated)

	updatedAt := time.Now().UTC()
	if t := updated.UpdatedAt(); t != nil {
		updatedAt = *t
	}
	return ok(ProfileData{
		ID:        updated.ID(),
		Email:     updated.Email().String(),
		FirstName: updated.FirstName(),
		LastName:  updated.LastName(),
		IsActive:  updated.IsActive(),
		UpdatedAt: updatedAt,
	})
}

// GetUser returns the public view of one user.
func (s *Service) GetUser(ctx context.Context, id string) (res Result[UserView]) {
	defer recoverInternal(s, "get_user", &res)

	user, failure := loadUser[UserView](ctx, s, "get_user.load", id)
	if failure != nil {
		return *failure
	}
	return ok(NewUserView(user))
}

// SetActive activates or deactivates an account. Repeating the same state is
// harmless.
func (s *Service) SetActive(ctx context.Context, cmd SetActiveCommand) (res Result[UserView]) {
	defer recoverInternal(s, "set_active", &res)

	user, failure := loadUser[UserView](ctx, s, "set_active.load", cmd.UserID)
	if failure != nil {
		return *failure
	}
	event := EventUserDeactivated
	if cmd.Active {
		user.Activate()
		event = EventUserActivated
	} else {
		user.Deactivate()
	}

	updated, failure := persist[UserView](ctx, s, "set_active.update", user)
	if failure != nil {
		return *failure
	}
	s.afterWrite(ctx, event, updated)
	return ok(NewUserView(updated))
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) (res Result[UserView]) {
	defer recoverInternal(s, "change_password", &res)

	user, failure := loadUser[UserView](ctx, s, "change_password.load", cmd.UserID)
	if failure != nil {
		return *failure
	}

	match, err := s.Hasher.Verify(ctx, cmd.CurrentPassword, user.Password().String())
	if err != nil {
		return internal[UserView](s, "change_password.verify", err, logrus.Fields{"user_id": user.ID()})
	}
	if !match {
		return fail[UserView](KindInvalidCredentials, MsgInvalidCredentials)
	}

	plain, err := vo.NewPlaintextPassword(cmd.NewPassword)
	if err != nil {
		return invalid[UserView](err)
	}
	hash, err := s.Hasher.Hash(ctx, plain.String())
	if err != nil {
		return internal[UserView](s, "change_password.hash", err, nil)
	}
	hashed, err := vo.PasswordFromHash(hash)
	if err != nil {
		return internal[UserView](s, "change_password.hash", err, nil)
	}
	if err := user.ChangePassword(hashed); err != nil {
		return invalid[UserView](err)
	}

	updated, failure := persist[UserView](ctx, s, "change_password.update", user)
	if failure != nil {
		return *failure
	}
	s.afterWrite(ctx, EventUserPasswordChange, updated)
	return ok(NewUserView(updated))
}
