package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-service/internal/container"
	handlers "github.com/oksasatya/go-identity-service/internal/interface/http"
	"github.com/oksasatya/go-identity-service/internal/interface/middleware"
	"github.com/oksasatya/go-identity-service/internal/router/modules"
	"github.com/oksasatya/go-identity-service/pkg/helpers"
	"github.com/oksasatya/go-identity-service/pkg/validation"
)

// InitModules registers every feature module built from the container.
// This function should be called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	svc := c.Service
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(c))))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, c.Logger), svc))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc), svc))
}

func healthChecks(c *container.Container) map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if c.PGPool != nil {
		checks["postgres"] = func(ctx context.Context) error { return c.PGPool.Ping(ctx) }
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, c.Redis) }
	}
	if c.ES != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, c.ES) }
	}
	return checks
}

// NewEngine builds the gin engine with global middleware and all modules.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()
	cfg := c.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	reg := NewRegistry(r)
	if cfg.HTTPLogEnabled {
		reg.Use(middleware.AccessLog(c.Logger))
	}
	InitModules(reg, c)
	c.Logger.WithField("modules", reg.RegisterAll()).Debug("routes mounted")
	return r
}
