package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSavedJobNotFound = errors.New("saved job not found")

// JobService is the saved-jobs store, keyed by job id per owner.
type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// SaveJob bookmarks job for owner. Saving the same id again overwrites the
// stored copy.
func (s *JobService) SaveJob(ctx context.Context, owner string, job models.Job) (*models.SavedJob, error) {
	saved := models.NewSavedJob(owner, job)
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// RemoveJob deletes the bookmark with jobID.
func (s *JobService) RemoveJob(ctx context.Context, owner, jobID string) error {
	res := s.DB.WithContext(ctx).Where("owner_email = ? AND job_id = ?", owner, jobID).Delete(&models.SavedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}

// ListJobs returns owner's bookmarks, most recent first.
func (s *JobService) ListJobs(ctx context.Context, owner string) ([]models.Job, error) {
	var rows []models.SavedJob
	if err := s.DB.WithContext(ctx).Where("owner_email = ?", owner).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	jobs := make([]models.Job, len(rows))
	for i, r := range rows {
		jobs[i] = r.Job()
	}
	return jobs, nil
}

// IsSaved reports whether owner has bookmarked jobID.
func (s *JobService) IsSaved(ctx context.Context, owner, jobID string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.SavedJob{}).Where("owner_email = ? AND job_id = ?", owner, jobID).Count(&n).Error
	return n > 0, err
}
