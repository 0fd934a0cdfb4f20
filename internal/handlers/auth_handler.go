package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/dtos"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
	Sessions    *services.SessionService
	Logger      *slog.Logger

	// Prefetch starts a job search in the background when a student logs in.
	Prefetch bool
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{AuthService: auth, Sessions: sessions, Logger: logger}
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.AuthService.Login(c.Request.Context(), req.Email)
	h.startSession(c, user, err)
}

// Register is POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.AuthService.Register(c.Request.Context(), req.Name, req.Email)
	h.startSession(c, user, err)
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User, err error) {
	if errors.Is(err, services.ErrInvalidEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed: " + err.Error()})
		return
	}

	// A login replaces whatever session the client had.
	if old := c.GetHeader(SessionHeader); old != "" {
		_ = h.Sessions.Delete(old)
	}
	sess := h.Sessions.Create(user)
	c.Header(SessionHeader, sess.ID)

	if h.Prefetch && !sess.IsAdmin() {
		go h.prefetch(sess.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"sessionId": sess.ID,
	})
}

func (h *AuthHandler) prefetch(id string) {
	out, err := h.Sessions.Search(context.Background(), id)
	if err != nil {
		h.Logger.Warn("login prefetch failed", slog.String("session", id), slog.Any("error", err))
		return
	}
	h.Logger.Info("login prefetch done",
		slog.String("session", id),
		slog.Int("jobs", len(out.Jobs)),
		slog.Bool("fallback", out.Fallback))
}

// Logout is POST /auth/logout. It drops the session, including its job list.
func (h *AuthHandler) Logout(c *gin.Context) {
	id := currentSession(c).ID
	if id == "" {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	if err := h.Sessions.Delete(id); err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProfile is GET /profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	sess := currentSession(c)
	if sess.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	user, err := h.AuthService.Profile(c.Request.Context(), sess.Email)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile is PUT /profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	sess := currentSession(c)
	if sess.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	var req dtos.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.AuthService.UpdateProfile(c.Request.Context(), sess.Email, services.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Gender:    req.Gender,
		BirthDate: req.BirthDate,
	})
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
