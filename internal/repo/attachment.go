package repo

import (
	"context"

	"github.com/Skotchmaster/job_tracker/internal/models"
)

func (r *GormRepo) CreateAttachment(ctx context.Context, a *models.Attachment) error {
	return translate(r.DB.WithContext(ctx).Create(a).Error)
}

func (r *GormRepo) ListAttachmentsByTracker(ctx context.Context, trackerID uint) ([]models.Attachment, error) {
	items := make([]models.Attachment, 0)
	if err := r.DB.WithContext(ctx).Where("tracker_id = ?", trackerID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
