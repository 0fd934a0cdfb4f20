package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type NotificationHandler struct {
	Notifications *services.NotificationService
	Sessions      *services.SessionService
}

func NewNotificationHandler(n *services.NotificationService, sessions *services.SessionService) *NotificationHandler {
	return &NotificationHandler{Notifications: n, Sessions: sessions}
}

// List is GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.Notifications.List(c.Request.Context(), ownerKey(currentSession(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkRead is PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}
	owner := ownerKey(ensureSession(c, h.Sessions))
	err = h.Notifications.MarkRead(c.Request.Context(), owner, uint(id))
	if errors.Is(err, services.ErrNotificationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
