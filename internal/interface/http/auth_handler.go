package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/internal/interface/middleware"
	"github.com/oksasatya/go-identity-service/pkg/response"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// No binding rules here; the use cases validate every field.
type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.SignUp(c.Request.Context(), application.SignUpCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	writeResult(c, res, http.StatusCreated, "user registered")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.Login(c.Request.Context(), application.LoginCommand{Email: req.Email, Password: req.Password})
	writeResult(c, res, http.StatusOK, "login successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxTokenKey)); err != nil {
		h.Logger.WithError(err).WithField("user_id", c.GetString(middleware.CtxUserIDKey)).Error("logout failed")
		response.Fail(c, http.StatusInternalServerError, application.KindInternal.String(), application.MsgInternal)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"loggedOut": true}, "logged out", nil)
}
