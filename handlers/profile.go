package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise/internal/avatar"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/profile"
	"github.com/pathwise/pathwise/internal/sessions"
	syncengine "github.com/pathwise/pathwise/internal/sync"
	"github.com/pathwise/pathwise/pkg/logger"
)

// ProfileHandler serves the detail record of the authenticated user and
// routes every edit through the sync engine.
type ProfileHandler struct {
	engine   *syncengine.Engine
	profiles *profile.Store
	sessions *sessions.Service
	resolver *avatar.Resolver
}

func NewProfileHandler(engine *syncengine.Engine, profiles *profile.Store,
	sess *sessions.Service, resolver *avatar.Resolver) *ProfileHandler {
	return &ProfileHandler{engine: engine, profiles: profiles, sessions: sess, resolver: resolver}
}

func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
}

// Get returns the stored detail record. The password never leaves the server.
func (h *ProfileHandler) Get(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	p, err := h.profiles.Load(c.Request.Context(), sess.View.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile load failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	p.Password = ""
	c.JSON(http.StatusOK, p)
}

// Update replaces the whole detail record and mirrors it into the summary
// table. Edits are full overwrites; fields absent from the payload are
// cleared, except credentials which are carried over from the stored record
// when the client omits them.
func (h *ProfileHandler) Update(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	var payload models.UserProfile
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prev, err := h.profiles.Load(c.Request.Context(), sess.View.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile load failed"})
		return
	}
	opts := syncengine.Options{PrevName: sess.View.FullName}
	if prev != nil {
		if payload.Password == "" {
			payload.Password = prev.Password
		}
		if payload.Email == "" {
			payload.Email = prev.Email
		}
		if payload.ProfilePicture == "" {
			payload.ProfilePicture = prev.ProfilePicture
		}
		opts.PrevAvatar = prev.ProfilePicture
	}

	res, err := h.engine.SyncUser(c.Request.Context(), payload, opts)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrIdentityCollision):
			c.JSON(http.StatusConflict, gin.H{"error": "another account already uses that name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile save failed"})
		}
		return
	}

	view := models.ViewOf(payload.Normalize())
	view.AvatarURL = h.resolver.Resolve(c.Request.Context(), payload.ProfilePicture)
	if err := h.sessions.Refresh(c.Request.Context(), sess.Token, view); err != nil {
		logger.Warnf("session refresh failed after profile sync: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          view,
		"summary_saved": res.SummarySaved,
		"renamed":       res.Renamed,
	})
}
