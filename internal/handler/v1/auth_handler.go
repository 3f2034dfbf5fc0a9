package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var cmd service.LoginCommand
	if !bindJSON(c, &cmd) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse[any]{Data: res, Message: "login successful"})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var cmd service.RefreshCommand
	if !bindJSON(c, &cmd) {
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), &cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context(), callerFrom(c))
	c.JSON(http.StatusOK, APIResponse[any]{Data: nil, Message: "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.svc.CurrentUser(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if u == nil {
		respondError(c, http.StatusUnauthorized, "user no longer exists")
		return
	}
	respondOK(c, u)
}
