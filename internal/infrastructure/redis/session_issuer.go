// Package redis binds issued tokens to server-side sessions so they can be
// revoked before they expire.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/domain/security"
	"github.com/oksasatya/go-identity-service/pkg/helpers"
)

const keyPrefix = "session:"

// SessionIssuer issues JWTs carrying a session id and records the session in
// Redis as a hash. A token is valid only while its session key exists.
type SessionIssuer struct {
	RDB    goredis.UniversalClient
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewSessionIssuer(rdb goredis.UniversalClient, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionIssuer {
	return &SessionIssuer{RDB: rdb, JWT: jwt, Logger: logger}
}

func sessionKey(sid string) string { return keyPrefix + sid }

func (s *SessionIssuer) Issue(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.Generate(userID, sid)
	if err != nil {
		return "", err
	}

	key := sessionKey(sid)
	_, err = s.RDB.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    userID,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		})
		pipe.ExpireAt(ctx, key, exp)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks the signature and that the session is still live and
// belongs to the token's subject.
func (s *SessionIssuer) Validate(ctx context.Context, token string) bool {
	_, ok := s.SubjectOf(ctx, token)
	return ok
}

func (s *SessionIssuer) SubjectOf(ctx context.Context, token string) (string, bool) {
	claims, err := s.JWT.Parse(token)
	if err != nil || claims.SessionID == "" {
		return "", false
	}
	owner, err := s.RDB.HGet(ctx, sessionKey(claims.SessionID), "user_id").Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) && s.Logger != nil {
			s.Logger.WithError(err).WithField("sid", claims.SessionID).Warn("session lookup failed")
		}
		return "", false
	}
	if owner != claims.UserID {
		return "", false
	}
	return claims.UserID, true
}

// Revoke deletes the session behind token. Unknown or malformed tokens are
// ignored.
func (s *SessionIssuer) Revoke(ctx context.Context, token string) error {
	claims, err := s.JWT.Parse(token)
	if err != nil || claims.SessionID == "" {
		return nil
	}
	return s.RDB.Del(ctx, sessionKey(claims.SessionID)).Err()
}

var (
	_ security.TokenIssuer  = (*SessionIssuer)(nil)
	_ security.TokenRevoker = (*SessionIssuer)(nil)
)
