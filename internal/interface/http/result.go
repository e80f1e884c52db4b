package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/pkg/response"
	"github.com/oksasatya/go-identity-service/pkg/validation"
)

const MsgForbidden = "Operação não permitida"

// StatusFor maps a use case failure kind to its HTTP status.
func StatusFor(kind application.FailureKind) int {
	switch kind {
	case application.KindNone:
		return http.StatusOK
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindInvalidCredentials:
		return http.StatusUnauthorized
	case application.KindEmailInUse:
		return http.StatusConflict
	case application.KindUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeResult answers with the data on success, otherwise with the failure
// kind as message and the use case errors verbatim.
func writeResult[T any](c *gin.Context, res application.Result[T], status int, message string) {
	if res.IsSuccess() {
		response.OK(c, status, res.Data, message, nil)
		return
	}
	response.Fail(c, StatusFor(res.Kind), res.Kind.String(), res.Errors...)
}

func bindFailed(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, application.KindValidation.String(), validation.ToMessages(err)...)
}
