package application

import (
	"errors"

	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

// FailureKind classifies why a use case did not succeed.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindValidation
	KindInvalidCredentials
	KindEmailInUse
	KindUserNotFound
	KindInternal
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation_error"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindEmailInUse:
		return "email_in_use"
	case KindUserNotFound:
		return "user_not_found"
	case KindInternal:
		return "internal_failure"
	default:
		return "unknown"
	}
}

const (
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgEmailInUse         = "Email já está em uso"
	MsgUserNotFound       = "Usuário não encontrado"
	MsgInternal           = "Erro interno do servidor"
)

// Result is what every use case returns: either Data, or a Kind with one or
// more human-readable Errors. Use cases never return a Go error.
type Result[T any] struct {
	Data   T
	Kind   FailureKind
	Errors []string
}

func (r Result[T]) IsSuccess() bool { return r.Kind == KindNone }

func ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func fail[T any](kind FailureKind, msgs ...string) Result[T] {
	return Result[T]{Kind: kind, Errors: msgs}
}

// invalid turns domain rule violations into one validation result carrying
// every field message in argument order. Nil errors are skipped; anything
// that is not a field error makes the whole result internal.
func invalid[T any](errs ...error) Result[T] {
	msgs, ok := fieldMessages(nil, errs)
	if !ok || len(msgs) == 0 {
		return fail[T](KindInternal, MsgInternal)
	}
	return fail[T](KindValidation, msgs...)
}

func fieldMessages(out []string, errs []error) ([]string, bool) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if joined, isJoin := err.(interface{ Unwrap() []error }); isJoin {
			var ok bool
			if out, ok = fieldMessages(out, joined.Unwrap()); !ok {
				return nil, false
			}
			continue
		}
		var fe *vo.FieldError
		if !errors.As(err, &fe) {
			return nil, false
		}
		out = append(out, fe.Message)
	}
	return out, true
}
