package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/employeehub/internal/http/middleware"
	"github.com/nurpe/employeehub/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, result.Token, maxAge, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

type signUpRequest struct {
	Username        string   `json:"username"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	PasswordConfirm string   `json:"password_confirm"`
	Permissions     []string `json:"permissions"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.SignUp(c.Request.Context(), service.SignUpInput{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Permissions:     req.Permissions,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"new_password_confirm"`
}

func (h *Handler) changePassword(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), principal.UserID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listEmployees(c *gin.Context) {
	users, err := h.accounts.ListEmployees(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": users})
}

func (h *Handler) exportEmployees(c *gin.Context) {
	result, err := h.reports.Employees(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, xlsxContentType, result)
}

func (h *Handler) getDashboard(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboard.Build(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
