package repo

import (
	"context"

	"github.com/Skotchmaster/job_tracker/internal/models"
)

func (r *GormRepo) CreateTracker(ctx context.Context, t *models.Tracker) error {
	return translate(r.DB.WithContext(ctx).Create(t).Error)
}

func (r *GormRepo) ListTrackersByUser(ctx context.Context, userID uint) ([]models.Tracker, error) {
	items := make([]models.Tracker, 0)
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetTracker returns the tracker only when it belongs to userID.
func (r *GormRepo) GetTracker(ctx context.Context, id, userID uint) (*models.Tracker, error) {
	var t models.Tracker
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}
