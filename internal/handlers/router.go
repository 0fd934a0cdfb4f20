package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Preferences   *PreferencesHandler
	Jobs          *JobHandler
	SavedJobs     *SavedJobHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
}

// NewRouter builds the gin engine with CORS and every /api/v1 route.
// allowedOrigins empty means any origin.
func NewRouter(h *Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", SessionHeader}
	config.ExposeHeaders = []string{SessionHeader}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/register", h.Auth.Register)
	}

	s := api.Group("", SessionMiddleware(h.Auth.Sessions))
	{
		s.POST("/auth/logout", h.Auth.Logout)
		s.GET("/profile", h.Auth.GetProfile)
		s.PUT("/profile", h.Auth.UpdateProfile)

		s.GET("/preferences", h.Preferences.Get)
		s.PUT("/preferences", h.Preferences.Replace)
		s.POST("/preferences/skills", h.Preferences.AddSkill)
		s.DELETE("/preferences/skills/:skill", h.Preferences.RemoveSkill)

		// Job Routes
		s.POST("/jobs/search", h.Jobs.SearchJobs)
		s.GET("/jobs", h.Jobs.ListJobs)
		s.POST("/jobs/:id/analysis", h.Jobs.AnalyzeJob)
		s.POST("/agents/plan", h.Jobs.PlanAgent)

		s.GET("/saved-jobs", h.SavedJobs.List)
		s.POST("/saved-jobs", h.SavedJobs.Save)
		s.DELETE("/saved-jobs/:id", h.SavedJobs.Remove)

		s.GET("/notifications", h.Notifications.List)
		s.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	}

	admin := s.Group("/admin", RequireAdmin())
	{
		admin.GET("/sources", h.Admin.ListSources)
		admin.POST("/sources", h.Admin.AddSource)
		admin.PATCH("/sources/:id/toggle", h.Admin.ToggleSource)
		admin.DELETE("/sources/:id", h.Admin.DeleteSource)

		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/logs", h.Admin.ListLogs)

		admin.GET("/simulations", h.Admin.ListSimulations)
		admin.POST("/simulations/:process", h.Admin.StartSimulation)
	}

	return r
}
