package entity

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

var ErrValidation = errors.New("validation failed")

const (
	MsgFirstNameEmpty   = "Nome não pode ser vazio"
	MsgFirstNameTooLong = "Nome deve ter no máximo 50 caracteres"
	MsgFirstNameInvalid = "Nome deve conter apenas letras e espaços"
	MsgLastNameEmpty    = "Sobrenome não pode ser vazio"
	MsgLastNameTooLong  = "Sobrenome deve ter no máximo 50 caracteres"
	MsgLastNameInvalid  = "Sobrenome deve conter apenas letras e espaços"

	maxNameLen = 50
)

var namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)

// now is swapped in tests to pin timestamps.
var now = func() time.Time { return time.Now().UTC() }

// User is the aggregate root for the identity domain. State is only changed
// through its methods; every mutation stamps UpdatedAt.
type User struct {
	id          string
	email       vo.Email
	password    vo.Password
	firstName   string
	lastName    string
	createdAt   time.Time
	updatedAt   *time.Time
	isActive    bool
	lastLoginAt *time.Time
}

// NewUser builds a fresh account. password must already be the hashed form.
func NewUser(email vo.Email, hashed vo.Password, firstName, lastName string) (*User, error) {
	if email.IsZero() {
		return nil, vo.NewFieldError(vo.ErrInvalidEmail, "email", vo.MsgEmailEmpty)
	}
	if hashed.IsZero() {
		return nil, vo.NewFieldError(vo.ErrEmptyHash, "password", vo.MsgHashEmpty)
	}
	first, last, err := ValidateNames(firstName, lastName)
	if err != nil {
		return nil, err
	}
	return &User{
		id:        uuid.NewString(),
		email:     email,
		password:  hashed,
		firstName: first,
		lastName:  last,
		createdAt: now(),
		isActive:  true,
	}, nil
}

// UserState is the flat form a store reads and writes.
type UserState struct {
	ID          string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsActive    bool
	LastLoginAt *time.Time
}

// Restore rebuilds a persisted user without re-running validation.
func Restore(s UserState) *User {
	return &User{
		id:          s.ID,
		email:       vo.EmailFromTrusted(s.Email),
		password:    passwordFromStore(s.Password),
		firstName:   s.FirstName,
		lastName:    s.LastName,
		createdAt:   s.CreatedAt,
		updatedAt:   copyTime(s.UpdatedAt),
		isActive:    s.IsActive,
		lastLoginAt: copyTime(s.LastLoginAt),
	}
}

func passwordFromStore(hash string) vo.Password {
	p, err := vo.PasswordFromHash(hash)
	if err != nil {
		return vo.Password{}
	}
	return p
}

// State returns a detached copy of the aggregate's fields.
func (u *User) State() UserState {
	return UserState{
		ID:          u.id,
		Email:       u.email.String(),
		Password:    u.password.String(),
		FirstName:   u.firstName,
		LastName:    u.lastName,
		CreatedAt:   u.createdAt,
		UpdatedAt:   copyTime(u.updatedAt),
		IsActive:    u.isActive,
		LastLoginAt: copyTime(u.lastLoginAt),
	}
}

func (u *User) ID() string { return u.id }
func (u *User) Email() vo.Email { return u.email }
func (u *User) Password() vo.Password { return u.password }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string { return u.lastName }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() *time.Time { return copyTime(u.updatedAt) }
func (u *User) IsActive() bool { return u.isActive }
func (u *User) LastLoginAt() *time.Time { return copyTime(u.lastLoginAt) }

func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// UpdateProfile replaces both names. Nothing changes unless both are valid.
func (u *User) UpdateProfile(firstName, lastName string) error {
	first, last, err := ValidateNames(firstName, lastName)
	if err != nil {
		return err
	}
	u.firstName = first
	u.lastName = last
	u.touch()
	return nil
}

// ChangePassword swaps in a new hash.
func (u *User) ChangePassword(hashed vo.Password) error {
	if hashed.IsZero() {
		return vo.NewFieldError(vo.ErrEmptyHash, "password", vo.MsgHashEmpty)
	}
	u.password = hashed
	u.touch()
	return nil
}

func (u *User) RecordLogin() {
	t := now()
	u.lastLoginAt = &t
	u.updatedAt = &t
}

func (u *User) Activate() {
	u.isActive = true
	u.touch()
}

func (u *User) Deactivate() {
	u.isActive = false
	u.touch()
}

func (u *User) touch() {
	t := now()
	u.updatedAt = &t
}

// ValidateNames applies the name rules to both fields and returns the
// trimmed values. Each field reports its first violated rule; when both fail
// the errors are joined, first name before last name.
func ValidateNames(firstName, lastName string) (string, string, error) {
	first, errFirst := validateName("firstName", firstName, MsgFirstNameEmpty, MsgFirstNameTooLong, MsgFirstNameInvalid)
	last, errLast := validateName("lastName", lastName, MsgLastNameEmpty, MsgLastNameTooLong, MsgLastNameInvalid)
	if err := errors.Join(errFirst, errLast); err != nil {
		return "", "", err
	}
	return first, last, nil
}

// CheckNamesPresent reports the canonical empty-name errors, if any, without
// the length and pattern rules.
func CheckNamesPresent(firstName, lastName string) error {
	var errs []error
	if strings.TrimSpace(firstName) == "" {
		errs = append(errs, vo.NewFieldError(ErrValidation, "firstName", MsgFirstNameEmpty))
	}
	if strings.TrimSpace(lastName) == "" {
		errs = append(errs, vo.NewFieldError(ErrValidation, "lastName", MsgLastNameEmpty))
	}
	return errors.Join(errs...)
}

func validateName(field, raw, msgEmpty, msgTooLong, msgInvalid string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", vo.NewFieldError(ErrValidation, field, msgEmpty)
	}
	if utf8.RuneCountInString(v) > maxNameLen {
		return "", vo.NewFieldError(ErrValidation, field, msgTooLong)
	}
	if !namePattern.MatchString(v) {
		return "", vo.NewFieldError(ErrValidation, field, msgInvalid)
	}
	return v, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
