package valueobject

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrWeakPassword = errors.New("password does not meet policy")
	ErrEmptyHash    = errors.New("empty password hash")
)

const (
	MsgPasswordEmpty       = "Senha não pode ser vazia"
	MsgPasswordTooShort    = "Senha deve ter pelo menos 8 caracteres"
	MsgPasswordComposition = "Senha deve conter pelo menos uma letra maiúscula, uma minúscula, um número e um caractere especial"
	MsgHashEmpty           = "Senha hasheada não pode ser vazia"

	// PasswordSymbols is the fixed set a password must draw at least one symbol from.
	PasswordSymbols = "@$!%*?&"

	passwordMinLen = "min=8"
	passwordRules  = "containsany=abcdefghijklmnopqrstuvwxyz," +
		"containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ," +
		"containsany=0123456789," +
		"containsany=" + PasswordSymbols
)

var policy = validator.New()

// Password holds either a plaintext candidate or an opaque hash, depending on
// which constructor produced it. Equality is byte-exact on the held value.
type Password struct {
	value string
}

// NewPlaintextPassword checks raw against the complexity policy. The error
// message names the rule that failed.
func NewPlaintextPassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, NewFieldError(ErrWeakPassword, "password", MsgPasswordEmpty)
	}
	if err := policy.Var(raw, passwordMinLen); err != nil {
		return Password{}, NewFieldError(ErrWeakPassword, "password", MsgPasswordTooShort)
	}
	if err := policy.Var(raw, passwordRules); err != nil {
		return Password{}, NewFieldError(ErrWeakPassword, "password", MsgPasswordComposition)
	}
	return Password{value: raw}, nil
}

// PasswordFromHash wraps a hash produced by a PasswordHasher.
func PasswordFromHash(hash string) (Password, error) {
	if strings.TrimSpace(hash) == "" {
		return Password{}, NewFieldError(ErrEmptyHash, "password", MsgHashEmpty)
	}
	return Password{value: hash}, nil
}

// String returns the held value. For persisted users this is the hash.
func (p Password) String() string { return p.value }

func (p Password) IsZero() bool { return p.value == "" }

func (p Password) Equals(other Password) bool { return p.value == other.value }
