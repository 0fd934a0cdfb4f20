package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/chamba-match/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Discoverer is the part of DiscoveryService the session layer needs.
type Discoverer interface {
	Discover(ctx context.Context, prefs models.Preferences) DiscoveryResult
}

// Session is a snapshot of one user's state. It shares no memory with the
// store.
type Session struct {
	ID          string             `json:"id"`
	Email       string             `json:"email,omitempty"`
	Name        string             `json:"name,omitempty"`
	Role        string             `json:"role"`
	Preferences models.Preferences `json:"preferences"`
	Jobs        []models.Job       `json:"jobs"`
	Sources     []models.Source    `json:"sources"`
	Fallback    bool               `json:"fallback"`
}

// AnonymousSession is what a request without a stored session sees. It has
// no ID until SessionService.Create stores one.
func AnonymousSession() Session {
	return Session{Role: models.RoleStudent, Preferences: models.DefaultPreferences()}
}

func (s Session) IsAdmin() bool { return s.Role == models.RoleAdmin }

type sessionState struct {
	Session
	generation uint64
	cancel     context.CancelFunc
	lastSeen   time.Time
}

func (st *sessionState) snapshot() Session {
	out := st.Session
	out.Preferences = st.Preferences.Clone()
	out.Jobs = cloneJobs(st.Jobs)
	out.Sources = append([]models.Source(nil), st.Sources...)
	return out
}

// SearchOutcome is what a caller of Search gets back. Stale is set when a
// newer search for the same session started before this one finished, or
// when the caller's context ended first; a stale result is never stored in
// the session.
type SearchOutcome struct {
	DiscoveryResult
	Generation uint64 `json:"generation"`
	Stale      bool   `json:"stale"`
}

// SessionService keeps per-session preferences and the current job list in
// memory. Searches for one session follow last-request-wins: starting a
// search cancels the previous one and only the latest result is committed.
type SessionService struct {
	Discovery Discoverer
	Logger    *slog.Logger
	Now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewSessionService(discovery Discoverer, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		Discovery: discovery,
		Logger:    logger,
		Now:       time.Now,
		sessions:  make(map[string]*sessionState),
	}
}

// Create starts a session for user, or an anonymous student session when
// user is nil.
func (s *SessionService) Create(user *models.User) Session {
	anon := AnonymousSession()
	anon.ID = uuid.NewString()
	st := &sessionState{Session: anon, lastSeen: s.Now()}
	if user != nil {
		st.Email = user.Email
		st.Name = user.Name
		if user.Role != "" {
			st.Role = user.Role
		}
	}

	s.mu.Lock()
	s.sessions[st.ID] = st
	s.mu.Unlock()
	return st.snapshot()
}

// Get returns the session with id.
func (s *SessionService) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return st.snapshot(), nil
}

// lookup must be called with mu held.
func (s *SessionService) lookup(id string) (*sessionState, error) {
	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	st.lastSeen = s.Now()
	return st, nil
}

// Len reports how many sessions are stored.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Delete ends a session, cancelling any search still running for it.
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookup(id)
	if err != nil {
		return err
	}
	if st.cancel != nil {
		st.cancel()
	}
	delete(s.sessions, id)
	return nil
}

// Prune removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *SessionService) Prune(maxIdle time.Duration) int {
	cutoff := s.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.sessions {
		if st.lastSeen.Before(cutoff) {
			if st.cancel != nil {
				st.cancel()
			}
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *SessionService) SetPreferences(id string, prefs models.Preferences) (models.Preferences, error) {
	prefs = prefs.Clone()
	prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return models.Preferences{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookup(id)
	if err != nil {
		return models.Preferences{}, err
	}
	st.Preferences = prefs
	return prefs.Clone(), nil
}

func (s *SessionService) AddSkill(id, skill string) (models.Preferences, error) {
	return s.updatePreferences(id, func(p *models.Preferences) { p.AddSkill(skill) })
}

func (s *SessionService) RemoveSkill(id, skill string) (models.Preferences, error) {
	return s.updatePreferences(id, func(p *models.Preferences) { p.RemoveSkill(skill) })
}

func (s *SessionService) updatePreferences(id string, fn func(*models.Preferences)) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookup(id)
	if err != nil {
		return models.Preferences{}, err
	}
	fn(&st.Preferences)
	return st.Preferences.Clone(), nil
}

// FindJob looks up a job in the session's current list.
func (s *SessionService) FindJob(id, jobID string) (models.Job, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookup(id)
	if err != nil {
		return models.Job{}, false, err
	}
	for _, j := range st.Jobs {
		if j.ID == jobID {
			return j.Clone(), true, nil
		}
	}
	return models.Job{}, false, nil
}

// Search runs discovery with the session's preferences and, unless a newer
// search has started meanwhile, replaces the session's job list.
func (s *SessionService) Search(ctx context.Context, id string) (SearchOutcome, error) {
	s.mu.Lock()
	st, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return SearchOutcome{}, err
	}
	if st.cancel != nil {
		st.cancel()
	}
	st.generation++
	gen := st.generation
	searchCtx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	prefs := st.Preferences.Clone()
	s.mu.Unlock()
	defer cancel()

	res := s.Discovery.Discover(searchCtx, prefs)

	s.mu.Lock()
	defer s.mu.Unlock()
	latest := st.generation == gen && s.sessions[id] == st
	if latest {
		st.cancel = nil
	}
	// A search whose caller went away is not committed either: its result
	// is usually the fallback catalog and would replace a good list.
	stale := !latest || searchCtx.Err() != nil
	if stale {
		s.Logger.Info("discarding stale search result",
			slog.String("session", id),
			slog.Uint64("generation", gen),
			slog.Uint64("latest", st.generation),
			slog.Bool("abandoned", latest))
	} else {
		st.Jobs = cloneJobs(res.Jobs)
		st.Sources = append([]models.Source(nil), res.Sources...)
		st.Fallback = res.Fallback
	}
	return SearchOutcome{DiscoveryResult: res, Generation: gen, Stale: stale}, nil
}

func cloneJobs(jobs []models.Job) []models.Job {
	if jobs == nil {
		return nil
	}
	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}
