package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/job_tracker/internal/events"
	"github.com/Skotchmaster/job_tracker/internal/models"
	"github.com/Skotchmaster/job_tracker/internal/repo"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

type TrackerStore interface {
	CreateTracker(ctx context.Context, t *models.Tracker) error
	ListTrackersByUser(ctx context.Context, userID uint) ([]models.Tracker, error)
	GetTracker(ctx context.Context, id, userID uint) (*models.Tracker, error)
}

type TrackerService struct {
	Repo   TrackerStore
	Events events.Publisher
}

type CreateTrackerInput struct {
	Title       string
	Description string
	URL         string
}

func (s *TrackerService) Create(ctx context.Context, userID uint, in CreateTrackerInput) (*models.Tracker, error) {
	l := logging.FromContext(ctx).With("svc", "tracker.create", "user_id", userID)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	t := &models.Tracker{
		Title:       title,
		Description: in.Description,
		URL:         strings.TrimSpace(in.URL),
		UserID:      userID,
	}
	if err := s.Repo.CreateTracker(ctx, t); err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("create tracker: %w", err)
	}

	publish(ctx, s.Events, events.TopicTrackerEvents, strconv.FormatUint(uint64(t.ID), 10), TrackerEvent{
		Type:      "tracker_created",
		TrackerID: t.ID,
		UserID:    userID,
		At:        time.Now().UTC(),
	})
	return t, nil
}

func (s *TrackerService) List(ctx context.Context, userID uint) ([]models.Tracker, error) {
	items, err := s.Repo.ListTrackersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}
	return items, nil
}

// Get hides trackers of other users behind ErrTrackerNotFound.
func (s *TrackerService) Get(ctx context.Context, id, userID uint) (*models.Tracker, error) {
	t, err := s.Repo.GetTracker(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTrackerNotFound
		}
		return nil, fmt.Errorf("get tracker: %w", err)
	}
	return t, nil
}
