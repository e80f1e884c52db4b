package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data"`
	Meta      any       `json:"meta,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

func Error[T any](ctx *gin.Context, status int, message string, errs ...string) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Errors:    errs,
	}
}

// Partial builds a failure envelope that still carries data, for answers
// like a degraded health report where the payload explains the failure.
func Partial[T any](ctx *gin.Context, status int, data T, message string, errs ...string) APIResponse[T] {
	resp := Error[T](ctx, status, message, errs...)
	resp.Data = data
	return resp
}

// OK writes a success envelope.
func OK[T any](ctx *gin.Context, status int, data T, message string, meta any) {
	resp := Success(ctx, status, data, message, meta)
	ctx.JSON(resp.Status, resp)
}

// Fail writes an error envelope and aborts the handler chain.
func Fail(ctx *gin.Context, status int, message string, errs ...string) {
	resp := Error[any](ctx, status, message, errs...)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// Degraded writes a failure envelope with data and aborts the handler chain.
func Degraded[T any](ctx *gin.Context, status int, data T, message string, errs ...string) {
	resp := Partial(ctx, status, data, message, errs...)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}
