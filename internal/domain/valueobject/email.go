package valueobject

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email format")

const (
	MsgEmailEmpty   = "Email não pode ser vazio"
	MsgEmailInvalid = "Formato de email inválido"
)

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lowercased) address.
type Email struct {
	value string
}

// NewEmail validates raw input and returns the normalized address.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, NewFieldError(ErrInvalidEmail, "email", MsgEmailEmpty)
	}
	if !emailPattern.MatchString(trimmed) {
		return Email{}, NewFieldError(ErrInvalidEmail, "email", MsgEmailInvalid)
	}
	return Email{value: strings.ToLower(trimmed)}, nil
}

// EmailFromTrusted wraps a value read back from storage. No validation is
// performed; the store only ever holds addresses produced by NewEmail.
func EmailFromTrusted(raw string) Email {
	return Email{value: raw}
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

// Equals compares case-insensitively.
func (e Email) Equals(other Email) bool {
	return strings.EqualFold(e.value, other.value)
}
