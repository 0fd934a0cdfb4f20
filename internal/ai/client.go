package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/justsurfingit/chamba-match/internal/models"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 45 * time.Second

	untitledSource = "Fuente Web"
)

// SearchResult is the output of the grounded search stage.
type SearchResult struct {
	RawText string
	Sources []models.Source
}

// SearchClient is the model backend used by the discovery pipeline and the
// agent planner. Every error it returns is an *Error.
type SearchClient interface {
	GroundedSearch(ctx context.Context, query string) (SearchResult, error)
	Structure(ctx context.Context, result SearchResult, prefs models.Preferences) ([]models.Job, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

// GeminiClient implements SearchClient on the Gemini generateContent API.
// It is safe for concurrent use.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

type options struct {
	model      string
	timeout    time.Duration
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a GeminiClient.
type Option func(*options)

func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTimeout bounds every call made by the client. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...Option) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	o := options{
		model:   DefaultModel,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  o.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: o.baseURL},
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{
		client:  client,
		model:   o.model,
		timeout: o.timeout,
		logger:  o.logger,
	}, nil
}

func (c *GeminiClient) generate(ctx context.Context, op, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), config)
	if err != nil {
		err = classify(callCtx, op, err)
		c.logger.Debug("gemini call failed",
			slog.String("op", op),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))
		return nil, err
	}
	c.logger.Debug("gemini call finished",
		slog.String("op", op),
		slog.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// GroundedSearch asks the model to search the web for query. Sources are
// taken from the grounding metadata of the first candidate; chunks without a
// URI are skipped.
func (c *GeminiClient) GroundedSearch(ctx context.Context, query string) (SearchResult, error) {
	resp, err := c.generate(ctx, "grounded search", query, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		RawText: resp.Text(),
		Sources: groundingSources(resp),
	}, nil
}

func groundingSources(resp *genai.GenerateContentResponse) []models.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []models.Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || strings.TrimSpace(chunk.Web.URI) == "" {
			continue
		}
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = untitledSource
		}
		sources = append(sources, models.Source{Title: title, URI: chunk.Web.URI})
	}
	return sources
}

// Structure turns a grounded search result into job records. Items missing a
// required field are dropped; if every item was dropped the call fails with
// a schema violation. An empty answer yields no jobs and no error.
func (c *GeminiClient) Structure(ctx context.Context, result SearchResult, prefs models.Preferences) ([]models.Job, error) {
	const op = "structure"
	resp, err := c.generate(ctx, op, buildStructurePrompt(result, prefs), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   jobListSchema(),
	})
	if err != nil {
		return nil, err
	}

	jobs, dropped, err := decodeJobs(resp.Text())
	if err != nil {
		return nil, &Error{Kind: KindExtraction, Op: op, Err: err}
	}
	if dropped > 0 {
		c.logger.Warn("dropped invalid job items",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(jobs)))
		if len(jobs) == 0 {
			return nil, &Error{Kind: KindSchemaViolation, Op: op,
				Err: errors.New("no item has the required fields")}
		}
	}
	return jobs, nil
}

// GenerateJSON runs prompt with schema as the response schema and decodes
// the answer into out.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	const op = "generate json"
	resp, err := c.generate(ctx, op, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}

	text := stripFences(resp.Text())
	if text == "" {
		return &Error{Kind: KindExtraction, Op: op, Err: errors.New("empty response")}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &Error{Kind: KindExtraction, Op: op, Err: err}
	}
	return nil
}
