package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/dtos"
	"github.com/justsurfingit/chamba-match/internal/scheduler"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type AdminHandler struct {
	Admin     *services.AdminService
	Simulator *scheduler.Simulator
}

func NewAdminHandler(admin *services.AdminService, sim *scheduler.Simulator) *AdminHandler {
	return &AdminHandler{Admin: admin, Simulator: sim}
}

// ListSources is GET /admin/sources
func (h *AdminHandler) ListSources(c *gin.Context) {
	sources, err := h.Admin.Sources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sources)
}

// AddSource is POST /admin/sources
func (h *AdminHandler) AddSource(c *gin.Context) {
	var req dtos.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	src, err := h.Admin.AddSource(c.Request.Context(), req.Name)
	if errors.Is(err, services.ErrInvalidSourceName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add source: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, src)
}

// ToggleSource is PATCH /admin/sources/:id/toggle
func (h *AdminHandler) ToggleSource(c *gin.Context) {
	src, err := h.Admin.ToggleSource(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrSourceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, src)
}

// DeleteSource is DELETE /admin/sources/:id
func (h *AdminHandler) DeleteSource(c *gin.Context) {
	err := h.Admin.DeleteSource(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrSourceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers is GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Admin.Students(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser is DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	err = h.Admin.DeleteUser(c.Request.Context(), uint(id))
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLogs is GET /admin/logs?limit=N, newest first.
func (h *AdminHandler) ListLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	logs, err := h.Admin.Logs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListSimulations is GET /admin/simulations
func (h *AdminHandler) ListSimulations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Simulator.Status())
}

// StartSimulation is POST /admin/simulations/:process
func (h *AdminHandler) StartSimulation(c *gin.Context) {
	p, err := h.Simulator.Start(c.Param("process"))
	switch {
	case errors.Is(err, scheduler.ErrUnknownProcess):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scheduler.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusAccepted, p)
	}
}
