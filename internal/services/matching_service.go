package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/justsurfingit/chamba-match/internal/models"
)

// Messages returned in place of a report. Clients display them verbatim.
const (
	AnalysisEmpty       = "No se pudo generar el análisis."
	AnalysisUnavailable = "Error al conectar con el servicio de análisis."
)

// MatcherService scores how well a student's profile fits a posting.
type MatcherService struct {
	LLM    *LLMService
	Logger *slog.Logger
}

func NewMatcherService(llm *LLMService, logger *slog.Logger) *MatcherService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatcherService{LLM: llm, Logger: logger}
}

// Analyze returns a short Markdown report: match percentage, two strengths,
// one gap and one tip. It never fails; failures come back as one of the
// fixed messages above.
func (s *MatcherService) Analyze(ctx context.Context, job models.Job, prefs models.Preferences) string {
	resp, err := s.LLM.Generate(ctx, buildAnalysisPrompt(job, prefs))
	if err != nil {
		s.Logger.Warn("match analysis failed",
			slog.String("job_id", job.ID),
			slog.Any("error", err))
		return AnalysisUnavailable
	}
	if strings.TrimSpace(resp) == "" {
		s.Logger.Warn("match analysis was empty", slog.String("job_id", job.ID))
		return AnalysisEmpty
	}
	return resp
}
