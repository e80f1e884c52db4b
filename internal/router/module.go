package router

import "github.com/gin-gonic/gin"

// Module is one feature's route set. Name identifies it in startup logs and
// must be unique within a Registry.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
