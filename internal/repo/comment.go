package repo

import (
	"context"

	"github.com/Skotchmaster/job_tracker/internal/models"
)

func (r *GormRepo) CreateComment(ctx context.Context, c *models.Comment) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *GormRepo) ListCommentsByTracker(ctx context.Context, trackerID uint) ([]models.Comment, error) {
	items := make([]models.Comment, 0)
	if err := r.DB.WithContext(ctx).Where("tracker_id = ?", trackerID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
