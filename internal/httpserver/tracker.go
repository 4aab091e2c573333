package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/jwtmiddleware"
	"github.com/Skotchmaster/job_tracker/internal/models"
	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/internal/transport"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

type TrackerHTTP struct {
	Svc *service.TrackerService
}

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := jwtmiddleware.UserFromContext(c)
	if !ok {
		bearerChallenge(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return user, nil
}

func (h *TrackerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tracker_create")

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req transport.CreateTrackerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	t, err := h.Svc.Create(ctx, user.ID, service.CreateTrackerInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TrackerHTTP) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TrackerHTTP) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.Svc.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
