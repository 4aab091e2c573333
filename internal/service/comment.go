package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/job_tracker/internal/models"
)

type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	ListCommentsByTracker(ctx context.Context, trackerID uint) ([]models.Comment, error)
}

type CommentService struct {
	Trackers *TrackerService
	Repo     CommentStore
}

func (s *CommentService) Create(ctx context.Context, userID, trackerID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if _, err := s.Trackers.Get(ctx, trackerID, userID); err != nil {
		return nil, err
	}

	c := &models.Comment{Text: text, TrackerID: trackerID}
	if err := s.Repo.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) List(ctx context.Context, userID, trackerID uint) ([]models.Comment, error) {
	if _, err := s.Trackers.Get(ctx, trackerID, userID); err != nil {
		return nil, err
	}
	items, err := s.Repo.ListCommentsByTracker(ctx, trackerID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return items, nil
}
