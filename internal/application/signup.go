package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	repo "github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

// SignUp registers a new account and returns a token bound to it. Input
// problems are reported together, in email, password, names order, before the
// store or the hasher is touched.
//
// The email pre-check is advisory. Two concurrent calls can both pass it; the
// store's unique index decides, and the loser still gets EmailInUse.
func (s *Service) SignUp(ctx context.Context, cmd SignUpCommand) (res Result[AuthData]) {
	defer recoverInternal(s, "signup", &res)

	email, emailErr := vo.NewEmail(cmd.Email)
	plain, passwordErr := vo.NewPlaintextPassword(cmd.Password)
	_, _, namesErr := entity.ValidateNames(cmd.FirstName, cmd.LastName)
	if emailErr != nil || passwordErr != nil || namesErr != nil {
		return invalid[AuthData](emailErr, passwordErr, namesErr)
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return fail[AuthData](KindEmailInUse, MsgEmailInUse)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return internal[AuthData](s, "signup.lookup", err, logrus.Fields{"email": email.String()})
	}

	hash, err := s.Hasher.Hash(ctx, plain.String())
	if err != nil {
		return internal[AuthData](s, "signup.hash", err, nil)
	}
	hashed, err := vo.PasswordFromHash(hash)
	if err != nil {
		return internal[AuthData](s, "signup.hash", err, nil)
	}

	user, err := entity.NewUser(email, hashed, cmd.FirstName, cmd.LastName)
	if err != nil {
		return invalid[AuthData](err)
	}

	saved, err := s.Repo.Add(ctx, user)
	if errors.Is(err, repo.ErrDuplicateEmail) {
		return fail[AuthData](KindEmailInUse, MsgEmailInUse)
	}
	if err != nil {
		return internal[AuthData](s, "signup.add", err, logrus.Fields{"email": email.String()})
	}

	token, err := s.Tokens.Issue(ctx, saved.ID())
	if err != nil {
		return internal[AuthData](s, "signup.token", err, logrus.Fields{"user_id": saved.ID()})
	}

	s.afterWrite(ctx, EventUserSignedUp, saved)
	s.Logger.WithField("user_id", saved.ID()).Info("user signed up")

	return ok(AuthData{Token: token, User: NewUserView(saved)})
}
