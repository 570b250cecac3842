package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/employeehub/internal/auth"
	"github.com/nurpe/employeehub/internal/http/middleware"
	"github.com/nurpe/employeehub/internal/model"
	"github.com/nurpe/employeehub/internal/service"
)

const (
	resetCookie   = "reset_session"
	resetStep1    = "/password-reset/step-1"
	resetStep2    = "/password-reset/step-2"
	resetStep3    = "/password-reset/step-3"
	loginLocation = "/auth/login"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Services struct {
	Accounts     *service.AccountService
	Reset        *service.PasswordResetService
	Contracts    *service.ContractService
	SubContracts *service.SubContractService
	Comments     *service.CommentService
	Customers    *service.CustomerService
	Profiles     *service.ProfileService
	Calendar     *service.CalendarService
	Dashboard    *service.DashboardService
	Reports      *service.ReportService
}

type Handler struct {
	accounts     *service.AccountService
	reset        *service.PasswordResetService
	contracts    *service.ContractService
	subcontracts *service.SubContractService
	comments     *service.CommentService
	customers    *service.CustomerService
	profiles     *service.ProfileService
	calendar     *service.CalendarService
	dashboard    *service.DashboardService
	reports      *service.ReportService
	resetTTL     time.Duration
	secure       bool
	log          zerolog.Logger
}

// NewHandler wires the services. resetTTL bounds the reset cookie lifetime;
// secure marks cookies as HTTPS-only.
func NewHandler(services Services, resetTTL time.Duration, secure bool, log zerolog.Logger) *Handler {
	return &Handler{
		accounts:     services.Accounts,
		reset:        services.Reset,
		contracts:    services.Contracts,
		subcontracts: services.SubContracts,
		comments:     services.Comments,
		customers:    services.Customers,
		profiles:     services.Profiles,
		calendar:     services.Calendar,
		dashboard:    services.Dashboard,
		reports:      services.Reports,
		resetTTL:     resetTTL,
		secure:       secure,
		log:          log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	perm := middleware.RequirePermission

	public := router.Group("/")
	public.POST("/auth/login", h.login)
	public.POST("/auth/logout", h.logout)
	public.GET(resetStep1, h.resetIdentifyForm)
	public.POST(resetStep1, h.resetIdentify)
	public.GET(resetStep2, h.resetQuestion)
	public.POST(resetStep2, h.resetAnswer)
	public.GET(resetStep3, h.resetPasswordForm)
	public.POST(resetStep3, h.resetSetPassword)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/auth/signup", perm(auth.PermAddUser), h.signUp)
	protected.POST("/auth/password", h.changePassword)
	protected.GET("/dashboard", h.getDashboard)

	protected.GET("/customers", perm(auth.PermViewCustomer), h.listCustomers)
	protected.POST("/customers", perm(auth.PermAddCustomer), h.createCustomer)
	protected.PUT("/customers/:id", perm(auth.PermChangeCustomer), h.updateCustomer)
	protected.DELETE("/customers/:id", perm(auth.PermDeleteCustomer), h.deleteCustomer)

	protected.GET("/contracts", h.listMyContracts)
	protected.GET("/contracts/all", h.listAllContracts)
	protected.GET("/contracts/export", h.exportContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.GET("/contracts/:id/pdf", h.exportContractPDF)
	protected.POST("/contracts", perm(auth.PermAddContract), h.createContract)
	protected.PUT("/contracts/:id", perm(auth.PermChangeContract), h.updateContract)
	protected.DELETE("/contracts/:id", perm(auth.PermDeleteContract), h.deleteContract)

	protected.GET("/subcontracts", h.listMySubContracts)
	protected.POST("/contracts/:id/subcontracts", perm(auth.PermAddSubContract), h.createSubContract)
	protected.GET("/contracts/:id/subcontracts/:number", h.getSubContract)
	protected.PUT("/contracts/:id/subcontracts/:number", perm(auth.PermChangeSubContract), h.updateSubContract)
	protected.DELETE("/contracts/:id/subcontracts/:number", perm(auth.PermDeleteSubContract), h.deleteSubContract)
	protected.POST("/contracts/:id/subcontracts/:number/comments", h.addComment)
	protected.GET("/comments", h.recentComments)

	protected.GET("/employees", perm(auth.PermViewUser), h.listEmployees)
	protected.GET("/employees/export", perm(auth.PermViewUser), h.exportEmployees)

	protected.GET("/profile", h.getProfile)
	protected.GET("/profile/security-questions", h.listSecurityQuestions)
	protected.PUT("/profile/information", h.saveInformation)
	protected.PUT("/profile/bank-account", h.saveBankAccount)
	protected.PUT("/profile/emergency-contacts", h.saveEmergencyContacts)
	protected.PUT("/profile/security-question", h.changeSecurityQuestion)

	protected.GET("/calendar/events", h.listEvents)
	protected.GET("/calendar/groups", h.listGroups)
	protected.POST("/calendar/events", perm(auth.PermAddEvent), h.createEvent)
	protected.PUT("/calendar/events/:id", perm(auth.PermChangeEvent), h.updateEvent)
	protected.DELETE("/calendar/events/:id", perm(auth.PermDeleteEvent), h.deleteEvent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidInput.Error(), "violations": verr.Violations})
	case errors.Is(err, service.ErrResetNotStarted):
		c.Redirect(http.StatusSeeOther, resetStep1)
	case errors.Is(err, service.ErrAnswerNotVerified):
		c.Redirect(http.StatusSeeOther, resetStep2)
	case errors.Is(err, service.ErrIncorrectAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrContractHasSubcontracts):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return false
	}
	return true
}

func (h *Handler) mustPrincipal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) sendFile(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pathNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(strings.TrimSpace(c.Param("number")))
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid number"})
		return 0, false
	}
	return number, true
}

// parseDate accepts an empty string as "not set".
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}
