package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/jwtmiddleware"
	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/internal/transport"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Signup(ctx, service.SignupInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login takes form fields username and password, username being the email.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	email, password := c.FormValue("username"), c.FormValue("password")
	if email == "" || password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing form fields")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	res, err := h.Svc.Login(ctx, email, password)
	if err != nil {
		return respondError(c, err)
	}

	l.Info("login_successful", "user_id", res.UserID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "bearer",
		UserID:       res.UserID,
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, ok := jwtmiddleware.UserFromContext(c)
	if !ok {
		bearerChallenge(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.Svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
