package valueobject

// FieldError is a rule violation attributable to one input field. It wraps
// a sentinel kind so callers can branch with errors.Is and still show the
// human-readable Message.
type FieldError struct {
	Field   string
	Message string
	kind    error
}

func NewFieldError(kind error, field, message string) *FieldError {
	return &FieldError{Field: field, Message: message, kind: kind}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return e.kind }
