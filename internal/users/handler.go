package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Sign(claims auth.Claims) (string, error)
	TTL() time.Duration
}

type Handler struct {
	Svc           *Service
	Tokens        TokenIssuer
	SecureCookies bool
}

func NewHandler(svc *Service, tokens TokenIssuer, secureCookies bool) *Handler {
	return &Handler{Svc: svc, Tokens: tokens, SecureCookies: secureCookies}
}

// RegisterPublicRoutes attaches the signup and login endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Signup(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid signup", verr.Problems)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		}
		return
	}

	telemetry.Info("user.signup", map[string]any{"user_id": user.ID})
	h.issueSession(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", verr.Problems)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	telemetry.Info("user.login", map[string]any{"user_id": user.ID})
	h.issueSession(c, http.StatusOK, user)
}

func (h *Handler) logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.SecureCookies)
	respond.OK(c, gin.H{"status": "logged_out"})
}

func (h *Handler) issueSession(c *gin.Context, status int, user User) {
	token, err := h.Tokens.Sign(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.FullName,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	middleware.SetSessionCookie(c, token, h.Tokens.TTL(), h.SecureCookies)
	respond.JSON(c, status, gin.H{
		"token":     token,
		"expiresIn": int(h.Tokens.TTL().Seconds()),
		"user":      user,
	})
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
		"provider": user.Provider,
	})
}
