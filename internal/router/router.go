package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"civictrack/internal/config"
	"civictrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	issueHandler *handler.IssueHandler,
	moderationHandler *handler.ModerationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(cfg.APIPrefix)

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/google", authHandler.GoogleLogin)
	api.GET("/auth/google/callback", authHandler.GoogleCallback)
	api.POST("/issues/report-issue", issueHandler.ReportIssue)
	api.GET("/issues/issues", issueHandler.ListIssues)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SecretKey),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", authHandler.Me)

	// Status tracking
	secured.PATCH("/issues/:id/status", issueHandler.UpdateStatus)
	secured.GET("/issues/:id/status-log", issueHandler.StatusLog)

	// Moderation
	secured.POST("/issues/:id/flag", moderationHandler.FlagIssue)
	secured.POST("/admin/users/:id/ban", moderationHandler.BanUser)
	secured.DELETE("/admin/users/:id/ban", moderationHandler.UnbanUser)
	secured.GET("/admin/banned", moderationHandler.ListBanned)
	secured.DELETE("/admin/users/:id", moderationHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
