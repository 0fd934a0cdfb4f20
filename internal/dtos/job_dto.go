package dtos

import "github.com/justsurfingit/chamba-match/internal/models"

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type ProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone" binding:"omitempty,numeric,len=9"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}

type SkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

// SearchRequest optionally replaces the session preferences before searching.
type SearchRequest struct {
	Preferences *models.Preferences `json:"preferences"`
}

// AnalysisRequest lets a client analyze a job that is not in the current
// list, or against preferences other than the session's.
type AnalysisRequest struct {
	Job         *models.Job         `json:"job"`
	Preferences *models.Preferences `json:"preferences"`
}

type AnalysisResponse struct {
	JobID    string `json:"jobId"`
	Analysis string `json:"analysis"`
}

type AgentPlanRequest struct {
	Platform models.NotificationPlatform `json:"platform" binding:"required,oneof=whatsapp email telegram"`
}

// SaveJobRequest carries a full job, or only an id from the current list.
type SaveJobRequest struct {
	ID          string   `json:"id" binding:"required"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Logo        string   `json:"logo"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
}

func (r SaveJobRequest) Job() models.Job {
	return models.Job{
		ID:          r.ID,
		Title:       r.Title,
		Company:     r.Company,
		Salary:      r.Salary,
		Type:        r.Type,
		Location:    r.Location,
		Logo:        r.Logo,
		Tags:        r.Tags,
		URL:         r.URL,
		Description: r.Description,
	}
}

type SourceRequest struct {
	Name string `json:"name" binding:"required"`
}
