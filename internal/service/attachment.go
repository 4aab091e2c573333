package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_tracker/internal/models"
	"github.com/Skotchmaster/job_tracker/internal/storage"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

type AttachmentStore interface {
	CreateAttachment(ctx context.Context, a *models.Attachment) error
	ListAttachmentsByTracker(ctx context.Context, trackerID uint) ([]models.Attachment, error)
}

type AttachmentService struct {
	Trackers *TrackerService
	Repo     AttachmentStore
	Blobs    storage.BlobStore
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func storageKey(trackerID uint, filename string) string {
	return fmt.Sprintf("trackers/%d/%s%s", trackerID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

// Upload writes the blob first and records the row after, so a row always
// points at an existing object.
func (s *AttachmentService) Upload(ctx context.Context, userID, trackerID uint, in UploadInput) (*models.Attachment, error) {
	l := logging.FromContext(ctx).With("svc", "attachment.upload", "tracker_id", trackerID)

	name := path.Base(strings.ReplaceAll(in.Filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	if in.Body == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}
	if _, err := s.Trackers.Get(ctx, trackerID, userID); err != nil {
		return nil, err
	}

	key := storageKey(trackerID, name)
	if err := s.Blobs.Put(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		l.Error("upload_failed", "status", 500, "reason", "blob store", "error", err)
		return nil, fmt.Errorf("store blob: %w", err)
	}

	a := &models.Attachment{
		TrackerID:   trackerID,
		Filename:    name,
		ContentType: in.ContentType,
		Size:        in.Size,
		StorageKey:  key,
	}
	if err := s.Repo.CreateAttachment(ctx, a); err != nil {
		l.Error("upload_failed", "status", 500, "reason", "db", "key", key, "error", err)
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return a, nil
}

func (s *AttachmentService) List(ctx context.Context, userID, trackerID uint) ([]models.Attachment, error) {
	if _, err := s.Trackers.Get(ctx, trackerID, userID); err != nil {
		return nil, err
	}
	items, err := s.Repo.ListAttachmentsByTracker(ctx, trackerID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return items, nil
}
