package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/internal/interface/middleware"
	"github.com/oksasatya/go-identity-service/pkg/response"
)

type UserHandler struct {
	Svc *application.Service
}

func NewUserHandler(svc *application.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

type userURI struct {
	ID string `uri:"id" binding:"required"`
}

type listQuery struct {
	ActiveOnly bool `form:"activeOnly"`
}

type searchQuery struct {
	Q    string `form:"q"`
	Size int    `form:"size" binding:"pagesize"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// self binds the :id path parameter and, when mustOwn is set, rejects
// callers acting on another account.
func self(c *gin.Context, mustOwn bool) (string, bool) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return "", false
	}
	if mustOwn && uri.ID != c.GetString(middleware.CtxUserIDKey) {
		response.Fail(c, http.StatusForbidden, "forbidden", MsgForbidden)
		return "", false
	}
	return uri.ID, true
}

func (h *UserHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.ListUsers(c.Request.Context(), application.ListUsersQuery{ActiveOnly: q.ActiveOnly})
	if res.IsSuccess() {
		response.OK(c, http.StatusOK, res.Data, "users", gin.H{"count": len(res.Data)})
		return
	}
	writeResult(c, res, http.StatusOK, "users")
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.SearchUsers(c.Request.Context(), application.SearchUsersQuery{Query: q.Q, Size: q.Size})
	writeResult(c, res, http.StatusOK, "search results")
}

func (h *UserHandler) Me(c *gin.Context) {
	res := h.Svc.GetUser(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	writeResult(c, res, http.StatusOK, "profile")
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := self(c, false)
	if !ok {
		return
	}
	writeResult(c, h.Svc.GetUser(c.Request.Context(), id), http.StatusOK, "user")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := self(c, true)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		UserID:    id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	writeResult(c, res, http.StatusOK, "profile updated")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := self(c, true)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res := h.Svc.ChangePassword(c.Request.Context(), application.ChangePasswordCommand{
		UserID:          id,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	writeResult(c, res, http.StatusOK, "password changed")
}

func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := self(c, false)
	if !ok {
		return
	}
	res := h.Svc.SetActive(c.Request.Context(), application.SetActiveCommand{UserID: id, Active: true})
	writeResult(c, res, http.StatusOK, "user activated")
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := self(c, true)
	if !ok {
		return
	}
	res := h.Svc.SetActive(c.Request.Context(), application.SetActiveCommand{UserID: id, Active: false})
	writeResult(c, res, http.StatusOK, "user deactivated")
}
