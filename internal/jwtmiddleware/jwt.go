package jwtmiddleware

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_tracker/internal/models"
)

const ContextKey = "user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// BearerAuth reads "Authorization: Bearer <token>" and resolves it through
// Authenticator. A missing or non-Bearer header never reaches Authenticate and
// is rejected with 401; any other failure is handed to onError.
func BearerAuth(a Authenticator, onError func(echo.Context, error) error) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return a.Authenticate(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			return onError(c, err)
		},
	})
}

func UserFromContext(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(ContextKey).(*models.User)
	return u, ok && u != nil
}
