package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	signer, err := auth.NewSigner("test-secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	h := NewHandler(newTestService(), signer, false)

	router := gin.New()
	router.Use(middleware.Auth(signer, "/api/v1/auth/"))
	v1 := router.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	h.RegisterRoutes(v1)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestSignupLoginMeFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/api/v1/auth/signup", `{"email":"ada@example.com","password":"Engines1842","confirmPassword":"Engines1842","fullName":"Ada"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if c := sessionCookie(rec); c == nil || c.Value == "" || !c.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", c)
	}
	if strings.Contains(rec.Body.String(), "PasswordHash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	rec = postJSON(router, "/api/v1/auth/login", `{"email":"ADA@example.com","password":"Engines1842"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil || payload.Token == "" {
		t.Fatalf("expected token, err=%v body=%s", err, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+payload.Token)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"email":"ada@example.com"`) {
		t.Fatalf("me: %d %s", me.Code, me.Body.String())
	}
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	router := newTestRouter(t)
	postJSON(router, "/api/v1/auth/signup", `{"email":"ada@example.com","password":"Engines1842","confirmPassword":"Engines1842"}`)

	wrong := postJSON(router, "/api/v1/auth/login", `{"email":"ada@example.com","password":"nope"}`)
	unknown := postJSON(router, "/api/v1/auth/login", `{"email":"who@example.com","password":"Engines1842"}`)
	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("expected identical bodies, got %s vs %s", wrong.Body.String(), unknown.Body.String())
	}
}

func TestSignupErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/api/v1/auth/signup", `{"email":"ada@example.com","password":"short","confirmPassword":"short"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("expected validation error, got %d %s", rec.Code, rec.Body.String())
	}

	body := `{"email":"ada@example.com","password":"Engines1842","confirmPassword":"Engines1842"}`
	postJSON(router, "/api/v1/auth/signup", body)
	rec = postJSON(router, "/api/v1/auth/signup", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)
	rec := postJSON(router, "/api/v1/auth/logout", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	c := sessionCookie(rec)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", c)
	}
}

func TestMeRequiresLogin(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
