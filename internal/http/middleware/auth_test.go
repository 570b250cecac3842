package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/employeehub/internal/model"
)

type stubParser struct{}

func (stubParser) Parse(raw string) (model.Principal, error) {
	switch raw {
	case "editor":
		return model.Principal{UserID: 1, Username: "editor", Permissions: []string{"add_contract"}}, nil
	case "admin":
		return model.Principal{UserID: 2, Username: "admin", Superuser: true}, nil
	default:
		return model.Principal{}, errors.New("bad token")
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", Auth(stubParser{}), func(c *gin.Context) {
		p, _ := MustPrincipal(c)
		c.String(http.StatusOK, p.Username)
	})
	r.GET("/delete", Auth(stubParser{}), RequirePermission("delete_contract"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newRouter()

	cases := []struct {
		name   string
		header string
		cookie string
		status int
		body   string
	}{
		{name: "no credentials", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer editor", status: http.StatusOK, body: "editor"},
		{name: "cookie", cookie: "admin", status: http.StatusOK, body: "admin"},
		{name: "wrong scheme falls back to cookie", header: "Basic editor", cookie: "admin", status: http.StatusOK, body: "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/open", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AuthCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/delete", nil)
	req.Header.Set("Authorization", "Bearer editor")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/delete", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
