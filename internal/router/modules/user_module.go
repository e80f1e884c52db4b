package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-identity-service/internal/interface/http"
	"github.com/oksasatya/go-identity-service/internal/interface/middleware"
)

// UserModule wires the user directory and account routes, all behind
// bearer auth.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(m.Auth))
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/me", m.Handler.Me)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id/profile", m.Handler.UpdateProfile)
		users.PUT("/:id/password", m.Handler.ChangePassword)
		users.POST("/:id/activate", m.Handler.Activate)
		users.POST("/:id/deactivate", m.Handler.Deactivate)
	}
}
