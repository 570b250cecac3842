package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/http/middleware"
	"github.com/nurpe/employeehub/internal/model"
	"github.com/nurpe/employeehub/internal/service"
	"github.com/nurpe/employeehub/internal/session"
)

type memoryUsers struct {
	users map[string]*model.User
}

func (m *memoryUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) List(context.Context, string) ([]model.User, error) { return nil, nil }

func (m *memoryUsers) Create(context.Context, *model.User) error { return nil }

func (m *memoryUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

type memoryProfiles struct {
	profile model.UserProfile
}

func (m *memoryProfiles) GetByUserID(_ context.Context, userID uint) (*model.UserProfile, error) {
	if m.profile.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	p := m.profile
	return &p, nil
}

func (m *memoryProfiles) GetOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error) {
	return m.GetByUserID(ctx, userID)
}

func (m *memoryProfiles) UpdateSecurity(context.Context, uint, *uint, string) error { return nil }

func (m *memoryProfiles) GetQuestion(context.Context, uint) (*model.SecurityQuestion, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryProfiles) ListQuestions(context.Context) ([]model.SecurityQuestion, error) {
	return nil, nil
}

func (m *memoryProfiles) SaveInformation(context.Context, *model.EmployeeInformation) error {
	return nil
}

func (m *memoryProfiles) SaveBankAccount(context.Context, *model.BankAccount) error { return nil }

func (m *memoryProfiles) ReplaceEmergencyContacts(context.Context, uint, []model.EmergencyContact) error {
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Verify(hash, password string) bool { return hash == "h:"+password }

type stubParser struct{}

func (stubParser) Parse(raw string) (model.Principal, error) {
	if raw == "viewer" {
		return model.Principal{UserID: 1, Username: "viewer"}, nil
	}
	return model.Principal{}, errors.New("bad token")
}

type resetHarness struct {
	router *gin.Engine
	users  *memoryUsers
}

func newResetHarness(t *testing.T) resetHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memoryUsers{users: map[string]*model.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: "h:OldPassword1", IsActive: true},
	}}
	questionID := uint(1)
	profiles := &memoryProfiles{profile: model.UserProfile{
		ID:                 1,
		UserID:             1,
		SecurityQuestionID: &questionID,
		SecurityQuestion:   &model.SecurityQuestion{ID: 1, QuestionText: "First pet?"},
	}}
	require.NoError(t, profiles.profile.SetSecurityAnswer("Fluffy", bcrypt.MinCost))

	reset := service.NewPasswordResetService(users, profiles, session.NewMemoryStore(), plainHasher{}, time.Minute, zerolog.Nop())
	handler := NewHandler(Services{Reset: reset}, time.Minute, false, zerolog.Nop())
	router := NewRouter(handler, middleware.Auth(stubParser{}), "test", nil, zerolog.Nop())
	return resetHarness{router: router, users: users}
}

func (h resetHarness) do(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func resetCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == resetCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", resetCookie)
	return nil
}

func TestPasswordResetFlow(t *testing.T) {
	h := newResetHarness(t)

	w := h.do(http.MethodPost, resetStep1, gin.H{"username": "alice"})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep2, w.Header().Get("Location"))
	cookie := resetCookieFrom(t, w)
	assert.True(t, cookie.HttpOnly)

	w = h.do(http.MethodGet, resetStep2, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First pet?")

	w = h.do(http.MethodGet, resetStep3, nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep2, w.Header().Get("Location"))

	w = h.do(http.MethodPost, resetStep2, gin.H{"security_answer": "Rex"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect answer or wrong question")

	w = h.do(http.MethodPost, resetStep2, gin.H{"security_answer": "Fluffy"}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep3, w.Header().Get("Location"))

	w = h.do(http.MethodPost, resetStep3, gin.H{"new_password": "123", "new_password_confirm": "123"}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Violations []service.Violation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Violations, 3)

	w = h.do(http.MethodPost, resetStep3, gin.H{"new_password": "Password123", "new_password_confirm": "Password124"}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []service.Violation{{Field: "new_password_confirm", Message: service.MsgPasswordMismatch}}, body.Violations)

	w = h.do(http.MethodPost, resetStep3, gin.H{"new_password": "Password123", "new_password_confirm": "Password123"}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, loginLocation, w.Header().Get("Location"))
	assert.Equal(t, "h:Password123", h.users.users["alice"].PasswordHash)

	w = h.do(http.MethodPost, resetStep3, gin.H{"new_password": "Password123", "new_password_confirm": "Password123"}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep1, w.Header().Get("Location"))
}

func TestPasswordResetRedirectsWithoutState(t *testing.T) {
	h := newResetHarness(t)

	for _, path := range []string{resetStep2, resetStep3} {
		w := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, resetStep1, w.Header().Get("Location"), path)
	}

	w := h.do(http.MethodPost, resetStep2, gin.H{"security_answer": "Fluffy"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep1, w.Header().Get("Location"))

	for _, path := range []string{resetStep2, resetStep3} {
		w := h.do(http.MethodPost, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, resetStep1, w.Header().Get("Location"), path)
	}
}

func TestPasswordResetStepThreeNeedsVerifiedAnswer(t *testing.T) {
	h := newResetHarness(t)

	w := h.do(http.MethodPost, resetStep1, gin.H{"username": "alice"})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := resetCookieFrom(t, w)

	w = h.do(http.MethodPost, resetStep3, nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, resetStep2, w.Header().Get("Location"))

	w = h.do(http.MethodPost, resetStep2, nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed request body")
}

func TestPasswordResetUnknownUser(t *testing.T) {
	h := newResetHarness(t)

	w := h.do(http.MethodPost, resetStep1, gin.H{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestPermissionGate(t *testing.T) {
	h := newResetHarness(t)
	auth := &http.Cookie{Name: middleware.AuthCookie, Value: "viewer"}

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/contracts"},
		{http.MethodDelete, "/contracts/1"},
		{http.MethodPost, "/contracts/1/subcontracts"},
		{http.MethodGet, "/customers"},
		{http.MethodGet, "/employees"},
		{http.MethodPost, "/calendar/events"},
		{http.MethodPost, "/auth/signup"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s", tc.method, tc.path), func(t *testing.T) {
			w := h.do(tc.method, tc.path, gin.H{}, auth)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}

	w := h.do(http.MethodGet, "/contracts", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(Services{}, time.Minute, false, zerolog.Nop())

	cases := []struct {
		err      error
		status   int
		location string
	}{
		{&service.ValidationError{Violations: []service.Violation{{Field: "name", Message: "this field is required"}}}, http.StatusBadRequest, ""},
		{service.ErrInvalidInput, http.StatusBadRequest, ""},
		{service.ErrUserNotFound, http.StatusNotFound, ""},
		{service.ErrGroupNotFound, http.StatusNotFound, ""},
		{service.ErrPermissionDenied, http.StatusForbidden, ""},
		{service.ErrConflict, http.StatusConflict, ""},
		{service.ErrContractHasSubcontracts, http.StatusConflict, ""},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{service.ErrIncorrectAnswer, http.StatusBadRequest, ""},
		{service.ErrResetNotStarted, http.StatusSeeOther, resetStep1},
		{service.ErrAnswerNotVerified, http.StatusSeeOther, resetStep2},
		{errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			if tc.location != "" {
				assert.Equal(t, tc.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseDate("29.02.2024")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
