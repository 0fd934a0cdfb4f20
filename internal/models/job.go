package models

// SalaryToNegotiate is the salary text used when a posting has no figure.
const SalaryToNegotiate = "A convenir"

// Job is a posting as shown to students. IDs are only unique within one
// search result; the same posting gets a new id on the next search.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Logo        string   `json:"logo"`
	Tags        []string `json:"tags"`
	IsNew       bool     `json:"isNew"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Clone returns a deep copy of j.
func (j Job) Clone() Job {
	c := j
	c.Tags = append([]string(nil), j.Tags...)
	return c
}

// Source is a web page cited by a grounded search.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// NotificationPlatform is where an automation agent would deliver alerts.
type NotificationPlatform string

const (
	PlatformWhatsApp NotificationPlatform = "whatsapp"
	PlatformEmail    NotificationPlatform = "email"
	PlatformTelegram NotificationPlatform = "telegram"
)

// AgentPlan describes a proposed automated search agent.
type AgentPlan struct {
	AgentName               string   `json:"agentName"`
	SearchFrequency         string   `json:"searchFrequency"`
	OptimizedQueries        []string `json:"optimizedQueries"`
	EstimatedMatchesPerWeek int      `json:"estimatedMatchesPerWeek"`
}

// Roles a user can log in with.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)
