package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-identity-service/internal/domain/repository"
	"github.com/oksasatya/go-identity-service/internal/domain/security"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same failure. Deactivation does not block login.
//
// The token is issued before the login stamp is persisted. Persisting the
// stamp is best-effort: if it fails the login still succeeds.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (res Result[AuthData]) {
	defer recoverInternal(s, "login", &res)

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return fail[AuthData](KindInvalidCredentials, MsgInvalidCredentials)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && user == nil) {
		return fail[AuthData](KindInvalidCredentials, MsgInvalidCredentials)
	}
	if err != nil {
		return internal[AuthData](s, "login.lookup", err, logrus.Fields{"email": email.String()})
	}

	match, err := s.Hasher.Verify(ctx, cmd.Password, user.Password().String())
	if err != nil {
		return internal[AuthData](s, "login.verify", err, logrus.Fields{"user_id": user.ID()})
	}
	if !match {
		return fail[AuthData](KindInvalidCredentials, MsgInvalidCredentials)
	}

	token, err := s.Tokens.Issue(ctx, user.ID())
	if err != nil {
		return internal[AuthData](s, "login.token", err, logrus.Fields{"user_id": user.ID()})
	}

	user.RecordLogin()
	if _, err := s.Repo.Update(ctx, user); err != nil {
		s.Logger.WithError(err).WithField("user_id", user.ID()).Warn("persist last login failed")
	} else {
		s.afterWrite(ctx, EventUserLoggedIn, user)
	}

	return ok(AuthData{Token: token, User: NewUserView(user)})
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.Tokens.SubjectOf(ctx, token)
}

// Logout revokes token when the configured issuer supports revocation.
func (s *Service) Logout(ctx context.Context, token string) error {
	if r, ok := s.Tokens.(security.TokenRevoker); ok {
		return r.Revoke(ctx, token)
	}
	return nil
}
