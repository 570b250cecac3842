package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type resetIdentifyRequest struct {
	Username string `json:"username"`
}

type resetAnswerRequest struct {
	Answer string `json:"security_answer"`
}

type resetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"new_password_confirm"`
}

func (h *Handler) resetIdentifyForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"step": 1, "fields": []string{"username"}})
}

func (h *Handler) resetIdentify(c *gin.Context) {
	var req resetIdentifyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.reset.Identify(c.Request.Context(), h.resetToken(c), req.Username)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.setResetCookie(c, token, int(h.resetTTL.Seconds()))
	c.Redirect(http.StatusSeeOther, resetStep2)
}

func (h *Handler) resetQuestion(c *gin.Context) {
	question, err := h.reset.Question(c.Request.Context(), h.resetToken(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": 2, "question": question})
}

func (h *Handler) resetAnswer(c *gin.Context) {
	token := h.resetToken(c)
	if err := h.reset.Pending(c.Request.Context(), token); err != nil {
		h.handleError(c, err)
		return
	}

	var req resetAnswerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.reset.Answer(c.Request.Context(), token, req.Answer); err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, resetStep3)
}

func (h *Handler) resetPasswordForm(c *gin.Context) {
	if err := h.reset.Verified(c.Request.Context(), h.resetToken(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": 3, "fields": []string{"new_password", "new_password_confirm"}})
}

func (h *Handler) resetSetPassword(c *gin.Context) {
	token := h.resetToken(c)
	if err := h.reset.Verified(c.Request.Context(), token); err != nil {
		h.handleError(c, err)
		return
	}

	var req resetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.reset.SetPassword(c.Request.Context(), token, req.NewPassword, req.ConfirmPassword); err != nil {
		h.handleError(c, err)
		return
	}
	h.setResetCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, loginLocation)
}

func (h *Handler) resetToken(c *gin.Context) string {
	token, err := c.Cookie(resetCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *Handler) setResetCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(resetCookie, token, maxAge, "/password-reset", "", h.secure, true)
}
