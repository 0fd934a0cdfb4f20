package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/justsurfingit/chamba-match/internal/ai"
	"github.com/justsurfingit/chamba-match/internal/models"
)

// newJobCount is how many leading results are flagged IsNew.
const newJobCount = 5

const recentTag = "Reciente"

// DiscoveryResult is the outcome of one discovery run.
type DiscoveryResult struct {
	Jobs     []models.Job    `json:"jobs"`
	Sources  []models.Source `json:"sources"`
	Fallback bool            `json:"fallback"`
	// Err is the failure that caused the fallback, if any.
	Err error `json:"-"`
}

// DiscoveryService turns preferences into a job list via a grounded search
// followed by a structuring call. It holds no mutable state.
type DiscoveryService struct {
	Client ai.SearchClient
	Logger *slog.Logger
	Now    func() time.Time
}

func NewDiscoveryService(client ai.SearchClient, logger *slog.Logger) *DiscoveryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoveryService{
		Client: client,
		Logger: logger,
		Now:    time.Now,
	}
}

// DiscoverJobs returns the jobs for prefs. It never fails: any error or an
// empty result yields the fallback catalog.
func (s *DiscoveryService) DiscoverJobs(ctx context.Context, prefs models.Preferences) []models.Job {
	return s.Discover(ctx, prefs).Jobs
}

// Discover runs both stages and reports whether the fallback was used.
func (s *DiscoveryService) Discover(ctx context.Context, prefs models.Preferences) DiscoveryResult {
	prefs = prefs.Clone()

	result, err := s.Client.GroundedSearch(ctx, buildSearchPrompt(prefs))
	if err != nil {
		return s.fallback(prefs, fmt.Errorf("grounded search: %w", err), nil)
	}

	jobs, err := s.Client.Structure(ctx, result, prefs)
	if err != nil {
		return s.fallback(prefs, fmt.Errorf("structure: %w", err), result.Sources)
	}
	jobs = completeJobs(jobs)
	if len(jobs) == 0 {
		return s.fallback(prefs, nil, result.Sources)
	}

	stamp := s.Now().UnixMilli()
	out := make([]models.Job, len(jobs))
	for i, job := range jobs {
		out[i] = finishJob(job.Clone(), i, stamp, prefs)
	}

	s.Logger.Info("discovery finished",
		slog.String("role", prefs.SearchRole()),
		slog.Int("jobs", len(out)),
		slog.Int("sources", len(result.Sources)))

	return DiscoveryResult{Jobs: out, Sources: result.Sources}
}

func (s *DiscoveryService) fallback(prefs models.Preferences, err error, sources []models.Source) DiscoveryResult {
	attrs := []any{slog.String("role", prefs.SearchRole())}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	if errors.Is(err, ai.ErrCanceled) {
		s.Logger.Debug("discovery canceled", attrs...)
	} else {
		s.Logger.Warn("discovery fell back to catalog", attrs...)
	}
	return DiscoveryResult{
		Jobs:     FallbackCatalog(),
		Sources:  sources,
		Fallback: true,
		Err:      err,
	}
}

// completeJobs keeps the jobs that have every required field. SearchClient
// implementations validate too; this guards the result invariant regardless.
func completeJobs(jobs []models.Job) []models.Job {
	out := jobs[:0:0]
	for _, j := range jobs {
		if blank(j.Title) || blank(j.Company) || blank(j.Location) || blank(j.Description) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// finishJob fills the display fields of the index-th structured job.
// The model's own id is discarded.
func finishJob(job models.Job, index int, stamp int64, prefs models.Preferences) models.Job {
	job.ID = fmt.Sprintf("ai-job-%d-%d", stamp, index)
	if job.Logo == "" {
		job.Logo = fmt.Sprintf("https://picsum.photos/seed/%s/50/50", url.PathEscape(strings.Join(strings.Fields(job.Company), "")))
	}
	if job.URL == "" {
		job.URL = "https://www.google.com/search?q=" + url.QueryEscape("trabajo "+job.Title+" "+job.Company)
	}
	job.IsNew = index < newJobCount
	if len(job.Tags) == 0 {
		job.Tags = []string{prefs.Modality, recentTag}
	}
	return job
}
