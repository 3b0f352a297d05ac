package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise/internal/match"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/profile"
	syncengine "github.com/pathwise/pathwise/internal/sync"
	"github.com/pathwise/pathwise/pkg/logger"
)

// RecommendHandler ranks the career catalog against the authenticated
// user's profile and records their selections.
type RecommendHandler struct {
	catalog  []match.Career
	engine   *syncengine.Engine
	profiles *profile.Store
}

func NewRecommendHandler(catalog []match.Career, engine *syncengine.Engine, profiles *profile.Store) *RecommendHandler {
	return &RecommendHandler{catalog: catalog, engine: engine, profiles: profiles}
}

func (h *RecommendHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/recommendations", h.List)
	rg.POST("/recommendations/selected", h.Select)
}

// List ranks every catalog entry against the caller's skills and interests.
func (h *RecommendHandler) List(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"recommendations": match.Rank(h.catalog, *p)})
}

// Select overwrites the stored selection lists via a read-modify-write
// through the engine, which mirrors the selected list into the summary row.
func (h *RecommendHandler) Select(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	var req struct {
		Selected []string `json:"recommendations_selected" binding:"required"`
		Saved    []string `json:"recommendations_saved"`
		Rejected []string `json:"recommendations_rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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
	p.Selected = req.Selected
	if req.Saved != nil {
		p.Saved = req.Saved
	}
	if req.Rejected != nil {
		p.Rejected = req.Rejected
	}

	res, err := h.engine.SyncUser(c.Request.Context(), *p, syncengine.Options{PrevName: p.FullName})
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "selection save failed"})
		return
	}
	if res.SummaryErr != nil {
		logger.Warnf("selection sync: summary half failed for %q: %v", p.Email, res.SummaryErr)
	}
	c.JSON(http.StatusOK, gin.H{"recommendations_selected": p.Selected, "summary_saved": res.SummarySaved})
}
