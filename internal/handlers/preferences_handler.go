package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/dtos"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type PreferencesHandler struct {
	Sessions *services.SessionService
}

func NewPreferencesHandler(sessions *services.SessionService) *PreferencesHandler {
	return &PreferencesHandler{Sessions: sessions}
}

// Get is GET /preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Preferences)
}

// Replace is PUT /preferences. Saving preferences refreshes the job list.
func (h *PreferencesHandler) Replace(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	id := ensureSession(c, h.Sessions).ID
	saved, err := h.Sessions.SetPreferences(id, prefs)
	if err != nil {
		preferencesError(c, err)
		return
	}
	out, err := h.Sessions.Search(c.Request.Context(), id)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preferences": saved,
		"search":      out,
	})
}

// AddSkill is POST /preferences/skills
func (h *PreferencesHandler) AddSkill(c *gin.Context) {
	var req dtos.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	prefs, err := h.Sessions.AddSkill(ensureSession(c, h.Sessions).ID, req.Skill)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// RemoveSkill is DELETE /preferences/skills/:skill
func (h *PreferencesHandler) RemoveSkill(c *gin.Context) {
	prefs, err := h.Sessions.RemoveSkill(ensureSession(c, h.Sessions).ID, c.Param("skill"))
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func preferencesError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences: " + err.Error()})
}
