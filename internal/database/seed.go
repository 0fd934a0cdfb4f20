package database

import (
	"fmt"
	"time"

	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/gorm"
)

func seedUsers() []models.User {
	return []models.User{
		{Name: "Juan Perez", Email: "juan.perez@student.edu", Role: models.RoleStudent, Avatar: "https://picsum.photos/id/64/100/100"},
		{Name: "Maria Lopez", Email: "maria.lopez@student.edu", Role: models.RoleStudent, Avatar: "https://picsum.photos/id/65/100/100"},
		{Name: "Carlos Admin", Email: "admin@chapatuchamba.com", Role: models.RoleAdmin, Avatar: "https://picsum.photos/id/66/100/100"},
	}
}

func seedSources(now time.Time) []models.ScraperSource {
	return []models.ScraperSource{
		{ID: "s1", Name: "LinkedIn Jobs", Active: true, LastRun: "10 mins ago", Icon: "L", CreatedAt: now.Add(-3 * time.Second)},
		{ID: "s2", Name: "Computrabajo", Active: false, LastRun: "1 day ago", Icon: "C", CreatedAt: now.Add(-2 * time.Second)},
		{ID: "s3", Name: "Bumeran", Active: true, LastRun: "2 hours ago", Icon: "B", CreatedAt: now.Add(-1 * time.Second)},
	}
}

func seedLogs(now time.Time) []models.SystemLog {
	return []models.SystemLog{
		{Status: models.LogStatusActive, Message: "User database backup completed.", CreatedAt: now.Add(-60 * time.Minute)},
		{Status: models.LogStatusError, Message: "Connection timeout on Computrabajo.", CreatedAt: now.Add(-15 * time.Minute)},
		{Status: models.LogStatusActive, Message: "Scraper LinkedIn finished successfully.", CreatedAt: now},
	}
}

func seedNotifications() []models.Notification {
	return []models.Notification{
		{Title: "Entrevista Agendada", Message: "TechFlow ha visto tu perfil y quiere conversar contigo.", Time: "Hace 2h"},
		{Title: "Nueva oferta similar", Message: "Se ha publicado una oferta que coincide con tus alertas.", Time: "Hace 5h", Read: true},
	}
}

// Seed fills each empty table with the demo data. Tables that already hold
// rows are left alone.
func Seed(db *gorm.DB) error {
	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &models.User{}, seedUsers()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.ScraperSource{}, seedSources(now)); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.SystemLog{}, seedLogs(now)); err != nil {
			return err
		}
		return seedIfEmpty(tx, &models.Notification{}, seedNotifications())
	})
}

func seedIfEmpty[T any](tx *gorm.DB, model *T, rows []T) error {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed %T: %w", *model, err)
	}
	return nil
}
