package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/gorm"
)

const sourcePending = "Pendiente"

var (
	ErrSourceNotFound    = errors.New("scraper source not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidSourceName = errors.New("source name is empty")
)

// LogPublisher receives every system log entry after it is stored.
type LogPublisher interface {
	PublishLog(ctx context.Context, entry models.SystemLog) error
}

// AdminService backs the operator dashboard: scraper sources, student
// accounts and the system log.
type AdminService struct {
	DB     *gorm.DB
	Events LogPublisher
	Logger *slog.Logger
}

func NewAdminService(db *gorm.DB, events LogPublisher, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{DB: db, Events: events, Logger: logger}
}

// AddLog stores a log entry and publishes it. A failed publish is logged
// and otherwise ignored.
func (s *AdminService) AddLog(ctx context.Context, status, message string) (*models.SystemLog, error) {
	entry := &models.SystemLog{Status: status, Message: message}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	if s.Events != nil {
		if err := s.Events.PublishLog(ctx, *entry); err != nil {
			s.Logger.Warn("publish system log failed", slog.Any("error", err))
		}
	}
	return entry, nil
}

// Logs returns up to limit entries, newest first. limit <= 0 means all.
func (s *AdminService) Logs(ctx context.Context, limit int) ([]models.SystemLog, error) {
	var logs []models.SystemLog
	q := s.DB.WithContext(ctx).Order("created_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

func (s *AdminService) Sources(ctx context.Context) ([]models.ScraperSource, error) {
	var sources []models.ScraperSource
	err := s.DB.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&sources).Error
	return sources, err
}

func (s *AdminService) ActiveSources(ctx context.Context) ([]models.ScraperSource, error) {
	var sources []models.ScraperSource
	err := s.DB.WithContext(ctx).Where("active = ?", true).Order("created_at asc").Find(&sources).Error
	return sources, err
}

// AddSource registers a new active source that has never run.
func (s *AdminService) AddSource(ctx context.Context, name string) (*models.ScraperSource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidSourceName
	}
	src := &models.ScraperSource{
		ID:      "s-" + uuid.NewString(),
		Name:    name,
		Active:  true,
		LastRun: sourcePending,
		Icon:    sourceIcon(name),
	}
	if err := s.DB.WithContext(ctx).Create(src).Error; err != nil {
		return nil, err
	}
	s.logAudit(ctx, "Fuente añadida: "+name)
	return src, nil
}

// sourceIcon is the upper-cased first letter of name.
func sourceIcon(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func (s *AdminService) ToggleSource(ctx context.Context, id string) (*models.ScraperSource, error) {
	var src models.ScraperSource
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&src, "id = ?", id).Error; err != nil {
			return err
		}
		src.Active = !src.Active
		return tx.Model(&src).Update("active", src.Active).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *AdminService) DeleteSource(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.ScraperSource{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSourceNotFound
	}
	s.logAudit(ctx, "Fuente eliminada ID: "+id)
	return nil
}

// MarkSourceRun records when a source was last scraped.
func (s *AdminService) MarkSourceRun(ctx context.Context, id, lastRun string) error {
	return s.DB.WithContext(ctx).Model(&models.ScraperSource{}).Where("id = ?", id).Update("last_run", lastRun).Error
}

// Students lists the student accounts.
func (s *AdminService) Students(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Where("role = ?", models.RoleStudent).Order("id asc").Find(&users).Error
	return users, err
}

func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	s.logAudit(ctx, fmt.Sprintf("Usuario eliminado ID: %d", id))
	return nil
}

func (s *AdminService) logAudit(ctx context.Context, message string) {
	if _, err := s.AddLog(ctx, models.LogStatusActive, message); err != nil {
		s.Logger.Error("write system log failed", slog.String("message", message), slog.Any("error", err))
	}
}
