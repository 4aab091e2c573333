package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

const (
	maxUploadBytes = 10 << 20
	// uploadBodyLimit bounds the whole multipart body read, in echo's size syntax.
	uploadBodyLimit = "10M"
)

type AttachmentHTTP struct {
	Svc *service.AttachmentService
}

func (h *AttachmentHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "attachment_upload")

	user, err := currentUser(c)
	if err != nil {
		return err
	}
	trackerID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			l.Warn("upload_error", "status", he.Code, "error", err)
			return he
		}
		l.Warn("upload_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer f.Close()

	a, err := h.Svc.Upload(ctx, user.ID, trackerID, service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AttachmentHTTP) List(c echo.Context) error {
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
