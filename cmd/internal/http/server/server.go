package server

import (
	"net/http"
	"stickynotes/cmd/internal/http/handler"
	"stickynotes/cmd/internal/http/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Options struct {
	NoteRoutes   *handler.DefaultNoteRoute
	UserRoutes   *handler.DefaultUserRoute
	Verifier     middleware.TokenVerifier
	BodyLimit    string
	AllowOrigins []string
}

// New builds the echo instance with every route registered. Note routes
// sit behind the token check, auth routes do not.
func New(opts *Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: opts.AllowOrigins}))
	e.Use(echomw.BodyLimit(opts.BodyLimit))

	e.GET("/", rootRoute)
	e.GET("/health", healthCheckRoute)

	// Credentials
	auth := e.Group("/api/auth")
	auth.POST("/register", opts.UserRoutes.Register)
	auth.POST("/login", opts.UserRoutes.Login)

	// Notes
	notes := e.Group("/api/notes", middleware.NewAuthMiddleware(&middleware.AuthMiddlewareConfig{
		Verifier: opts.Verifier,
	}))
	notes.GET("", opts.NoteRoutes.GetNotes)
	notes.POST("", opts.NoteRoutes.CreateNote)
	notes.GET("/tags", opts.NoteRoutes.GetTags)
	notes.GET("/:id", opts.NoteRoutes.GetNote)
	notes.PUT("/:id", opts.NoteRoutes.UpdateNote)
	notes.PATCH("/:id", opts.NoteRoutes.UpdateNote)
	notes.DELETE("/:id", opts.NoteRoutes.DeleteNote)

	return e
}

func rootRoute(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Sticky Notes API is running"})
}

// Docker Compose healthcheck
func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
