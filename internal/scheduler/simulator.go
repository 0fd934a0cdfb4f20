package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/justsurfingit/chamba-match/internal/models"
)

var (
	ErrUnknownProcess = errors.New("unknown process")
	ErrAlreadyRunning = errors.New("process already running")
)

// Process is one of the simulated backend batch jobs.
type Process struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Process keys.
const (
	ProcessScrape     = "scrape"
	ProcessCategorize = "categorize"
	ProcessPurge      = "purge"
	ProcessFeedback   = "feedback"
	ProcessReports    = "reports"
	ProcessAlerts     = "alerts"
)

var processes = []Process{
	{Key: ProcessScrape, Name: "Ejecutando Scrapers Externos"},
	{Key: ProcessCategorize, Name: "Procesando y Categorizando"},
	{Key: ProcessPurge, Name: "Purgando Ofertas Caducadas"},
	{Key: ProcessFeedback, Name: "Filtrando por Feedback de Usuario"},
	{Key: ProcessReports, Name: "Generando Informes Personalizados"},
	{Key: ProcessAlerts, Name: "Enviando Alertas (WhatsApp/Email)"},
}

// Processes lists the known processes in dashboard order.
func Processes() []Process {
	return append([]Process(nil), processes...)
}

func lookupProcess(key string) (Process, bool) {
	for _, p := range processes {
		if p.Key == key {
			return p, true
		}
	}
	return Process{}, false
}

// Backend is what the simulator writes to.
type Backend interface {
	AddLog(ctx context.Context, status, message string) (*models.SystemLog, error)
	ActiveSources(ctx context.Context) ([]models.ScraperSource, error)
	MarkSourceRun(ctx context.Context, id, lastRun string) error
}

// ProcessStatus is a process plus whether it is running right now.
type ProcessStatus struct {
	Process
	Running bool `json:"running"`
}

// Simulator pretends to run the batch jobs of a scraping backend. Each run
// logs a start line, waits Duration and logs a completion line. A process
// cannot run twice at the same time.
type Simulator struct {
	backend  Backend
	duration time.Duration
	logger   *slog.Logger
	now      func() time.Time

	// ctx bounds background runs; it outlives the request that started them.
	ctx context.Context
	wg  sync.WaitGroup

	mu      sync.Mutex
	running map[string]bool
}

func NewSimulator(ctx context.Context, backend Backend, duration time.Duration, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		backend:  backend,
		duration: duration,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		running:  make(map[string]bool),
	}
}

// Status reports every process and whether it is running.
func (s *Simulator) Status() []ProcessStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProcessStatus, len(processes))
	for i, p := range processes {
		out[i] = ProcessStatus{Process: p, Running: s.running[p.Key]}
	}
	return out
}

// Start launches process key in the background and returns once the start
// line is logged.
func (s *Simulator) Start(key string) (Process, error) {
	p, err := s.begin(s.ctx, key)
	if err != nil {
		return Process{}, err
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.finish(s.ctx, p)
	}()
	return p, nil
}

// Run executes process key and blocks until it completes or ctx ends.
func (s *Simulator) Run(ctx context.Context, key string) error {
	p, err := s.begin(ctx, key)
	if err != nil {
		return err
	}
	return s.finish(ctx, p)
}

// Wait blocks until every background run has returned.
func (s *Simulator) Wait() {
	s.wg.Wait()
}

func (s *Simulator) begin(ctx context.Context, key string) (Process, error) {
	p, ok := lookupProcess(key)
	if !ok {
		return Process{}, fmt.Errorf("%w: %q", ErrUnknownProcess, key)
	}

	s.mu.Lock()
	if s.running[key] {
		s.mu.Unlock()
		return Process{}, fmt.Errorf("%w: %s", ErrAlreadyRunning, key)
	}
	s.running[key] = true
	s.mu.Unlock()

	if _, err := s.backend.AddLog(ctx, models.LogStatusActive, "Iniciando: "+p.Name+"..."); err != nil {
		s.release(key)
		return Process{}, err
	}
	s.logger.Info("simulation started", slog.String("process", key))
	return p, nil
}

func (s *Simulator) finish(ctx context.Context, p Process) error {
	defer s.release(p.Key)

	timer := time.NewTimer(s.duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		// The run is abandoned; record it with a fresh context since ctx is done.
		s.writeLog(context.Background(), models.LogStatusError, "Cancelado: "+p.Name)
		return ctx.Err()
	}

	if p.Key == ProcessScrape {
		s.markSources(ctx)
	}
	s.writeLog(ctx, models.LogStatusActive, "Completado: "+p.Name)
	s.logger.Info("simulation finished", slog.String("process", p.Key))
	return nil
}

func (s *Simulator) markSources(ctx context.Context) {
	sources, err := s.backend.ActiveSources(ctx)
	if err != nil {
		s.logger.Error("load active sources", slog.Any("error", err))
		return
	}
	stamp := s.now().Format("2006-01-02 15:04")
	for _, src := range sources {
		if err := s.backend.MarkSourceRun(ctx, src.ID, stamp); err != nil {
			s.logger.Error("mark source run", slog.String("source", src.ID), slog.Any("error", err))
		}
	}
}

func (s *Simulator) writeLog(ctx context.Context, status, message string) {
	if _, err := s.backend.AddLog(ctx, status, message); err != nil {
		s.logger.Error("write system log", slog.String("message", message), slog.Any("error", err))
	}
}

func (s *Simulator) release(key string) {
	s.mu.Lock()
	delete(s.running, key)
	s.mu.Unlock()
}
