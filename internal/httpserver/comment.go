package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/internal/transport"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

func (h *CommentHTTP) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	trackerID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cm, err := h.Svc.Create(c.Request().Context(), user.ID, trackerID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *CommentHTTP) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	trackerID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.Svc.List(c.Request().Context(), user.ID, trackerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
