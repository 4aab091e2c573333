package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_tracker/internal/jwtmiddleware"
	"github.com/Skotchmaster/job_tracker/internal/transport"
	pkgdb "github.com/Skotchmaster/job_tracker/pkg/db"
)

const APIVersion = "0.0.1"

type Deps struct {
	AuthHandler       *AuthHTTP
	TrackerHandler    *TrackerHTTP
	CommentHandler    *CommentHTTP
	AttachmentHandler *AttachmentHTTP
	Authenticator     jwtmiddleware.Authenticator
	DB                *gorm.DB
	Env               string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.RootResponse{APIVersion: APIVersion, Environment: d.Env})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB != nil {
			if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	e.POST("/users/signup", d.AuthHandler.Signup)
	e.POST("/users/login", d.AuthHandler.Login)

	private := e.Group("", jwtmiddleware.BearerAuth(d.Authenticator, respondError))
	private.GET("/me", d.AuthHandler.Me)
	private.GET("/users/:id", d.AuthHandler.GetUser)

	trackers := private.Group("/trackers")
	trackers.POST("", d.TrackerHandler.Create)
	trackers.GET("", d.TrackerHandler.List)
	trackers.GET("/:id", d.TrackerHandler.Get)
	trackers.POST("/:id/comments", d.CommentHandler.Create)
	trackers.GET("/:id/comments", d.CommentHandler.List)
	trackers.POST("/:id/attachments", d.AttachmentHandler.Upload, echomw.BodyLimit(uploadBodyLimit))
	trackers.GET("/:id/attachments", d.AttachmentHandler.List)
}
