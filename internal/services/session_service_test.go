package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/chamba-match/internal/ai"
	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedDiscoverer answers each call only when released, in any order.
type gatedDiscoverer struct {
	mu    sync.Mutex
	calls []chan DiscoveryResult
	ctxs  []context.Context
	ready chan struct{}
}

func newGatedDiscoverer() *gatedDiscoverer {
	return &gatedDiscoverer{ready: make(chan struct{}, 10)}
}

func (g *gatedDiscoverer) Discover(ctx context.Context, _ models.Preferences) DiscoveryResult {
	ch := make(chan DiscoveryResult, 1)
	g.mu.Lock()
	g.calls = append(g.calls, ch)
	g.ctxs = append(g.ctxs, ctx)
	g.mu.Unlock()
	g.ready <- struct{}{}
	return <-ch
}

func (g *gatedDiscoverer) release(i int, res DiscoveryResult) {
	g.mu.Lock()
	ch := g.calls[i]
	g.mu.Unlock()
	ch <- res
}

func (g *gatedDiscoverer) ctx(i int) context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctxs[i]
}

func resultWith(titles ...string) DiscoveryResult {
	var jobs []models.Job
	for i, t := range titles {
		j := job(t, "Acme")
		j.ID = t
		j.IsNew = i < 5
		jobs = append(jobs, j)
	}
	return DiscoveryResult{Jobs: jobs}
}

func TestAbandonedSearchKeepsJobList(t *testing.T) {
	f := &fakeSearch{jobs: []models.Job{job("Dev", "Acme")}}
	s := NewSessionService(newDiscovery(f), nil)
	sess := s.Create(nil)

	_, err := s.Search(context.Background(), sess.ID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.searchErr = &ai.Error{Kind: ai.KindCanceled, Op: "grounded search", Err: context.Canceled}
	out, err := s.Search(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, out.Stale)
	assert.True(t, out.Fallback)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "Dev", got.Jobs[0].Title)
	assert.False(t, got.Fallback)

	// The next live search commits normally.
	f.searchErr = nil
	f.jobs = []models.Job{job("QA", "Beta")}
	out, err = s.Search(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.False(t, out.Stale)
	got, _ = s.Get(sess.ID)
	assert.Equal(t, "QA", got.Jobs[0].Title)
}

func TestSearchReplacesJobList(t *testing.T) {
	f := &fakeSearch{jobs: []models.Job{job("Dev", "Acme"), job("QA", "Beta")}}
	s := NewSessionService(newDiscovery(f), nil)
	sess := s.Create(nil)

	out, err := s.Search(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.False(t, out.Stale)
	assert.Equal(t, uint64(1), out.Generation)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Jobs, 2)
	assert.False(t, got.Fallback)

	f.jobs = nil
	_, err = s.Search(context.Background(), sess.ID)
	require.NoError(t, err)
	got, _ = s.Get(sess.ID)
	assert.Equal(t, FallbackCatalog(), got.Jobs)
	assert.True(t, got.Fallback)
}

func TestSearchLastRequestWins(t *testing.T) {
	g := newGatedDiscoverer()
	s := NewSessionService(g, nil)
	sess := s.Create(nil)

	var wg sync.WaitGroup
	outcomes := make([]SearchOutcome, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		outcomes[0], _ = s.Search(context.Background(), sess.ID)
	}()
	<-g.ready

	wg.Add(1)
	go func() {
		defer wg.Done()
		outcomes[1], _ = s.Search(context.Background(), sess.ID)
	}()
	<-g.ready

	// Starting the second search cancels the first.
	select {
	case <-g.ctx(0).Done():
	case <-time.After(time.Second):
		t.Fatal("first search was not cancelled")
	}

	// Newer search finishes first, then the slow older one resolves.
	g.release(1, resultWith("nuevo"))
	g.release(0, resultWith("viejo"))
	wg.Wait()

	assert.True(t, outcomes[0].Stale)
	assert.False(t, outcomes[1].Stale)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "nuevo", got.Jobs[0].Title)
}

func TestSearchUnknownSession(t *testing.T) {
	s := NewSessionService(newDiscovery(&fakeSearch{}), nil)
	_, err := s.Search(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteCancelsSearchAndDropsResult(t *testing.T) {
	g := newGatedDiscoverer()
	s := NewSessionService(g, nil)
	sess := s.Create(nil)

	done := make(chan SearchOutcome)
	go func() {
		out, _ := s.Search(context.Background(), sess.ID)
		done <- out
	}()
	<-g.ready

	require.NoError(t, s.Delete(sess.ID))
	<-g.ctx(0).Done()
	g.release(0, resultWith("tarde"))

	out := <-done
	assert.True(t, out.Stale)
	_, err := s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionPreferences(t *testing.T) {
	s := NewSessionService(newDiscovery(&fakeSearch{}), nil)
	admin := &models.User{Email: "admin@chapatuchamba.com", Name: "Carlos Admin", Role: models.RoleAdmin}
	sess := s.Create(admin)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, models.DefaultPreferences(), sess.Preferences)

	prefs, err := s.AddSkill(sess.ID, " Go ")
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "TypeScript", "Go"}, prefs.Skills)

	prefs, err = s.AddSkill(sess.ID, "React")
	require.NoError(t, err)
	assert.Len(t, prefs.Skills, 3)

	prefs, err = s.RemoveSkill(sess.ID, "React")
	require.NoError(t, err)
	assert.Equal(t, []string{"TypeScript", "Go"}, prefs.Skills)

	update := models.DefaultPreferences()
	update.Salary = 1250
	_, err = s.SetPreferences(sess.ID, update)
	assert.Error(t, err)

	update.Salary = 2000
	update.Skills = []string{"SQL", "SQL", " "}
	prefs, err = s.SetPreferences(sess.ID, update)
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, prefs.Skills)

	// Snapshots do not alias session state.
	got, _ := s.Get(sess.ID)
	got.Preferences.Skills[0] = "changed"
	again, _ := s.Get(sess.ID)
	assert.Equal(t, "SQL", again.Preferences.Skills[0])
}

func TestFindJob(t *testing.T) {
	f := &fakeSearch{jobs: []models.Job{job("Dev", "Acme")}}
	s := NewSessionService(newDiscovery(f), nil)
	sess := s.Create(nil)
	out, err := s.Search(context.Background(), sess.ID)
	require.NoError(t, err)

	j, ok, err := s.FindJob(sess.ID, out.Jobs[0].ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Dev", j.Title)

	_, ok, err = s.FindJob(sess.ID, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrune(t *testing.T) {
	s := NewSessionService(newDiscovery(&fakeSearch{}), nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	old := s.Create(nil)
	now = now.Add(2 * time.Hour)
	fresh := s.Create(nil)

	assert.Equal(t, 1, s.Prune(time.Hour))
	_, err := s.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}
