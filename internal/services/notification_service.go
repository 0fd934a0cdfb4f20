package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService serves the canned in-app notifications. Nothing is
// delivered outside the app. Read state is kept per owner.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// List returns every notification with Read set for owner.
func (s *NotificationService) List(ctx context.Context, owner string) ([]models.Notification, error) {
	var out []models.Notification
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	if owner == "" {
		return out, nil
	}

	var readIDs []uint
	err := s.DB.WithContext(ctx).Model(&models.NotificationRead{}).
		Where("owner_email = ?", owner).
		Pluck("notification_id", &readIDs).Error
	if err != nil {
		return nil, err
	}
	read := make(map[uint]bool, len(readIDs))
	for _, id := range readIDs {
		read[id] = true
	}
	for i := range out {
		out[i].Read = out[i].Read || read[out[i].ID]
	}
	return out, nil
}

// MarkRead marks notification id read for owner only.
func (s *NotificationService) MarkRead(ctx context.Context, owner string, id uint) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.NotificationRead{OwnerEmail: owner, NotificationID: id}).Error
}
