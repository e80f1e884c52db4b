package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-service/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxTokenKey  = "accessToken"

	MsgUnauthorized = "Token inválido ou ausente"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, bool)
}

// Auth requires an "Authorization: Bearer <token>" header that the
// authenticator accepts. On success it sets userID and accessToken in the
// Gin context.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "unauthorized", MsgUnauthorized)
			return
		}
		uid, ok := auth.Authenticate(c.Request.Context(), token)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "unauthorized", MsgUnauthorized)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
