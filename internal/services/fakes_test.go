package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/justsurfingit/chamba-match/internal/ai"
	"github.com/justsurfingit/chamba-match/internal/config"
	"github.com/justsurfingit/chamba-match/internal/database"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// fakeSearch is a scripted ai.SearchClient.
type fakeSearch struct {
	mu sync.Mutex

	search    ai.SearchResult
	searchErr error
	jobs      []models.Job
	structErr error
	planJSON  string
	planErr   error

	queries    []string
	structured []ai.SearchResult
}

func (f *fakeSearch) GroundedSearch(_ context.Context, query string) (ai.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.search, f.searchErr
}

func (f *fakeSearch) Structure(_ context.Context, result ai.SearchResult, _ models.Preferences) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.structured = append(f.structured, result)
	if f.structErr != nil {
		return nil, f.structErr
	}
	out := make([]models.Job, len(f.jobs))
	for i, j := range f.jobs {
		out[i] = j.Clone()
	}
	return out, nil
}

func (f *fakeSearch) GenerateJSON(_ context.Context, _ string, _ *genai.Schema, out any) error {
	if f.planErr != nil {
		return f.planErr
	}
	if err := json.Unmarshal([]byte(f.planJSON), out); err != nil {
		return &ai.Error{Kind: ai.KindExtraction, Op: "generate json", Err: err}
	}
	return nil
}

func job(title, company string) models.Job {
	return models.Job{
		Title:       title,
		Company:     company,
		Location:    "Lima",
		Description: title + " en " + company,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	return db
}
