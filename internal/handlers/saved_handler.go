package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/dtos"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type SavedJobHandler struct {
	JobService *services.JobService
	Sessions   *services.SessionService
}

func NewSavedJobHandler(jobs *services.JobService, sessions *services.SessionService) *SavedJobHandler {
	return &SavedJobHandler{JobService: jobs, Sessions: sessions}
}

// List is GET /saved-jobs
func (h *SavedJobHandler) List(c *gin.Context) {
	owner := ownerKey(currentSession(c))
	if owner == "" {
		c.JSON(http.StatusOK, []models.Job{})
		return
	}
	jobs, err := h.JobService.ListJobs(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Save is POST /saved-jobs. A body with only an id saves that job from the
// current results.
func (h *SavedJobHandler) Save(c *gin.Context) {
	var req dtos.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess := currentSession(c)

	job := req.Job()
	if job.Title == "" {
		if sess.ID == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found in current results"})
			return
		}
		found, ok, err := h.Sessions.FindJob(sess.ID, req.ID)
		if err != nil {
			sessionError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found in current results"})
			return
		}
		job = found
	}

	sess = ensureSession(c, h.Sessions)
	saved, err := h.JobService.SaveJob(c.Request.Context(), ownerKey(sess), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved.Job())
}

// Remove is DELETE /saved-jobs/:id
func (h *SavedJobHandler) Remove(c *gin.Context) {
	owner := ownerKey(currentSession(c))
	if owner == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrSavedJobNotFound.Error()})
		return
	}
	err := h.JobService.RemoveJob(c.Request.Context(), owner, c.Param("id"))
	if errors.Is(err, services.ErrSavedJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
