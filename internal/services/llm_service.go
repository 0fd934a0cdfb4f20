package services

import (
	"context"
	"errors"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// LLMService holds the free-text model so it is created once per process.
type LLMService struct {
	Client  llms.Model
	Timeout time.Duration
}

// NewLLMService initializes the Gemini text model.
func NewLLMService(ctx context.Context, apiKey, model string, timeout time.Duration) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, err
	}
	return NewLLMServiceWithModel(llm, timeout), nil
}

// NewLLMServiceWithModel wraps an existing model, e.g. a fake in tests.
func NewLLMServiceWithModel(model llms.Model, timeout time.Duration) *LLMService {
	return &LLMService{Client: model, Timeout: timeout}
}

// Generate sends a single prompt and returns the model's text.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}
