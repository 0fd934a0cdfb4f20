package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/chamba-match/internal/dtos"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/justsurfingit/chamba-match/internal/services"
)

type JobHandler struct {
	Sessions *services.SessionService
	Matcher  *services.MatcherService
	Agents   *services.AgentService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(sessions *services.SessionService, matcher *services.MatcherService, agents *services.AgentService) *JobHandler {
	return &JobHandler{
		Sessions: sessions,
		Matcher:  matcher,
		Agents:   agents,
	}
}

// HealthCheck is GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchJobs is POST /jobs/search. A body with preferences replaces the
// session's preferences first.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.SearchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess := ensureSession(c, h.Sessions)
	if req.Preferences != nil {
		if _, err := h.Sessions.SetPreferences(sess.ID, *req.Preferences); err != nil {
			preferencesError(c, err)
			return
		}
	}

	out, err := h.Sessions.Search(c.Request.Context(), sess.ID)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	sess := currentSession(c)
	jobs := sess.Jobs
	if jobs == nil {
		jobs = []models.Job{}
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":     jobs,
		"sources":  sess.Sources,
		"fallback": sess.Fallback,
	})
}

// AnalyzeJob is POST /jobs/:id/analysis
func (h *JobHandler) AnalyzeJob(c *gin.Context) {
	sess := currentSession(c)
	jobID := c.Param("id")

	var req dtos.AnalysisRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	var job models.Job
	var found bool
	if sess.ID != "" {
		var err error
		job, found, err = h.Sessions.FindJob(sess.ID, jobID)
		if err != nil {
			sessionError(c, err)
			return
		}
	}
	if !found {
		if req.Job == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found in current results"})
			return
		}
		job = *req.Job
		job.ID = jobID
	}

	prefs := sess.Preferences
	if req.Preferences != nil {
		prefs = req.Preferences.Clone()
	}

	analysis := h.Matcher.Analyze(c.Request.Context(), job, prefs)
	c.JSON(http.StatusOK, dtos.AnalysisResponse{JobID: job.ID, Analysis: analysis})
}

// PlanAgent is POST /agents/plan
func (h *JobHandler) PlanAgent(c *gin.Context) {
	var req dtos.AgentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	plan := h.Agents.PlanAgent(c.Request.Context(), currentSession(c).Preferences, req.Platform)
	c.JSON(http.StatusOK, plan)
}
