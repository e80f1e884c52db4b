// Package security declares the credential capabilities the identity core
// depends on but does not implement.
package security

import "context"

// PasswordHasher is a one-way hash over plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
	// errors are reserved for malformed hashes or cancelled contexts.
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer issues opaque bearer credentials bound to a user id.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) bool
	SubjectOf(ctx context.Context, token string) (string, bool)
}

// TokenRevoker is implemented by issuers that can invalidate a token before
// it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}
