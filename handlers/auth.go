package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise/internal/auth"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/sessions"
	"github.com/pathwise/pathwise/pkg/middleware"
)

// LoginRequest is the password login payload.
type LoginRequest struct {
	Email    string `json:"email_address" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes the account lifecycle over HTTP.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register mounts the routes under /auth. Logout needs a live session so it
// carries the auth middleware; signup and login are public.
func (h *AuthHandler) Register(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.POST("/logout", authMW, h.Logout)
}

// Signup creates the account and returns an opened session, so a fresh
// signup lands the user straight in the app.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loginResponse(res))
}

// Login validates credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse(res))
}

// Logout destroys the session bound to the presented access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	if err := h.svc.Logout(c.Request.Context(), sess.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func loginResponse(res *auth.LoginResult) gin.H {
	return gin.H{
		"access_token":  res.AccessToken,
		"session_token": res.SessionToken,
		"user":          res.View,
	}
}

// writeAuthError maps service errors to status codes. The duplicate-account
// and bad-credential messages go to the client verbatim.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrIdentityCollision):
		c.JSON(http.StatusConflict, gin.H{"error": "another account already uses that name"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentSession pulls the session the auth middleware resolved.
func currentSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(middleware.SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*sessions.Session)
	return sess
}
