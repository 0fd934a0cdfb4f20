package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Role      string `gorm:"default:'student'" json:"role"`
	Avatar    string `json:"avatar"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// SavedJob is a bookmarked posting. The job is copied in full because
// search ids are not stable and the posting may never be returned again.
type SavedJob struct {
	CreatedAt time.Time `json:"created_at"`

	// Composite key: one bookmark per job id per owner.
	JobID      string `gorm:"primaryKey" json:"id"`
	OwnerEmail string `gorm:"primaryKey" json:"-"`

	Title       string   `gorm:"not null" json:"title"`
	Company     string   `json:"company"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Logo        string   `json:"logo"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	URL         string   `json:"url,omitempty"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
}

// NewSavedJob copies job into a bookmark owned by owner.
func NewSavedJob(owner string, job Job) *SavedJob {
	return &SavedJob{
		JobID:       job.ID,
		OwnerEmail:  owner,
		Title:       job.Title,
		Company:     job.Company,
		Salary:      job.Salary,
		Type:        job.Type,
		Location:    job.Location,
		Logo:        job.Logo,
		Tags:        append([]string(nil), job.Tags...),
		URL:         job.URL,
		Description: job.Description,
	}
}

// Job converts the bookmark back to the API shape.
func (s SavedJob) Job() Job {
	return Job{
		ID:          s.JobID,
		Title:       s.Title,
		Company:     s.Company,
		Salary:      s.Salary,
		Type:        s.Type,
		Location:    s.Location,
		Logo:        s.Logo,
		Tags:        append([]string(nil), s.Tags...),
		URL:         s.URL,
		Description: s.Description,
	}
}

// ScraperSource is a job board the (simulated) scrapers read from.
type ScraperSource struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"not null" json:"name"`
	Active  bool   `json:"active"`
	LastRun string `json:"last_run"`
	Icon    string `json:"icon"`
}

// Log statuses.
const (
	LogStatusActive = "active"
	LogStatusError  = "error"
)

type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
	Status    string    `json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Time      string    `json:"time"`
	// Read is the catalog default. Per-owner state lives in NotificationRead.
	Read bool `json:"read"`
}

// NotificationRead records that owner has read a notification. Owner uses
// the same key as saved jobs.
type NotificationRead struct {
	OwnerEmail     string    `gorm:"primaryKey"`
	NotificationID uint      `gorm:"primaryKey"`
	CreatedAt      time.Time
}
