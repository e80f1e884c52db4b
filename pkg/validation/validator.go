package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidPayload = "Payload inválido"
	MsgInvalidField   = "Campo inválido"
)

var once sync.Once

// Init configures the global validator used by Gin's binding so errors carry
// the json, form or uri name of the field.
func Init() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
			v.RegisterAlias("pagesize", "omitempty,min=1,max=50")
		}
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ToMessages converts binding errors into an ordered list of messages
// suitable for the response envelope.
func ToMessages(err error) []string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []string{MsgInvalidPayload}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe.Field()+": "+formatFieldError(fe))
		}
		return out
	}

	return []string{MsgInvalidPayload}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "deve ser no mínimo " + param
		}
		return "deve ter pelo menos " + param + " caracteres"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "deve ser no máximo " + param
		}
		return "deve ter no máximo " + param + " caracteres"
	case "uuid":
		return "deve ser um UUID válido"
	case "boolean":
		return "deve ser verdadeiro ou falso"
	case "pagesize":
		return "deve estar entre 1 e 50"
	default:
		return strings.ToLower(MsgInvalidField)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
