package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/justsurfingit/chamba-match/internal/ai"
	"github.com/justsurfingit/chamba-match/internal/models"
)

// DefaultAgentPlan is returned whenever a plan cannot be generated.
func DefaultAgentPlan() models.AgentPlan {
	return models.AgentPlan{
		AgentName:               "JobBot Alpha",
		SearchFrequency:         "Diariamente 9AM",
		OptimizedQueries:        []string{"empleos recientes"},
		EstimatedMatchesPerWeek: 5,
	}
}

var errIncompletePlan = errors.New("incomplete agent plan")

type AgentService struct {
	Client ai.SearchClient
	Logger *slog.Logger
}

func NewAgentService(client ai.SearchClient, logger *slog.Logger) *AgentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentService{Client: client, Logger: logger}
}

// PlanAgent proposes an automated search agent for prefs that notifies
// through platform.
func (s *AgentService) PlanAgent(ctx context.Context, prefs models.Preferences, platform models.NotificationPlatform) models.AgentPlan {
	var plan models.AgentPlan
	err := s.Client.GenerateJSON(ctx, buildAgentPrompt(prefs, platform), ai.AgentPlanSchema(), &plan)
	if err == nil {
		err = checkPlan(plan)
	}
	if err != nil {
		s.Logger.Warn("agent plan fell back to default",
			slog.String("platform", string(platform)),
			slog.Any("error", err))
		return DefaultAgentPlan()
	}
	return plan
}

func checkPlan(p models.AgentPlan) error {
	if strings.TrimSpace(p.AgentName) == "" || strings.TrimSpace(p.SearchFrequency) == "" {
		return errIncompletePlan
	}
	if len(p.OptimizedQueries) == 0 || p.EstimatedMatchesPerWeek < 0 {
		return errIncompletePlan
	}
	return nil
}
