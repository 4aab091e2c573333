package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

func bearerChallenge(c echo.Context) {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
}

// respondError maps service errors onto HTTP responses. Unknown errors are
// logged and surface as 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		bearerChallenge(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
	case errors.Is(err, service.ErrInvalidToken):
		bearerChallenge(c)
		return echo.NewHTTPError(http.StatusForbidden, "Could not validate credentials.")
	case errors.Is(err, service.ErrUnknownIdentity):
		return echo.NewHTTPError(http.StatusNotFound, "Could not find user.")
	case errors.Is(err, service.ErrAuthenticationFailed):
		return echo.NewHTTPError(http.StatusBadRequest, "Incorrect email or password")
	case errors.Is(err, service.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrTrackerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Tracker not found")
	}

	logging.FromContext(c.Request().Context()).Error("request_failed", "status", 500, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
