package router

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mapadmin/internal/auth"
	"mapadmin/internal/config"
	"mapadmin/internal/errors"
	"mapadmin/internal/handler"
	"mapadmin/internal/logging"
	"mapadmin/internal/model"
	"mapadmin/internal/storage"
)

// HealthCheck reports whether the backing stores are reachable.
type HealthCheck func(ctx context.Context) error

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	User     *handler.UserHandler
	Plan     *handler.PlanHandler
	Setting  *handler.SettingHandler
	Contact  *handler.ContactHandler
	Privacy  *handler.PrivacyHandler
	FAQ      *handler.FAQHandler
	Log      *handler.LogHandler
	Map      *handler.MapHandler
	Timezone *handler.TimezoneHandler
	Payment  *handler.PaymentHandler
	Data     *handler.DataHandler
	Seed     *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger zerolog.Logger,
	verifier auth.TokenVerifier,
	health HealthCheck,
	h Handlers,
) {
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if cfg.UploadMaxBytes > 0 {
		// Leave room for the other multipart fields next to the file.
		e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			Limit: strconv.FormatInt(cfg.UploadMaxBytes+1<<20, 10),
		}))
	}

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the API")
	})

	e.GET("/healthz", func(c echo.Context) error {
		if health != nil {
			if err := health(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
					Error: "database unavailable",
					Code:  "UNAVAILABLE",
				})
			}
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.UploadBackend == "local" {
		e.Static(storage.PublicPrefix, cfg.UploadDir)
	}

	requireToken := auth.Middleware(verifier)
	// End-user tokens from /user/login are refused. /auth/register mints admins.
	staffOnly := auth.RequireRole(model.RoleAdmin, model.RoleSuperAdmin)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.GET("/me", h.Auth.Me, requireToken)
	authGroup.POST("/me", h.Auth.Me, requireToken)
	authGroup.PUT("/update", h.Auth.UpdateProfile, requireToken)

	admins := api.Group("/admins", requireToken, staffOnly)
	admins.GET("", h.Admin.List)
	admins.GET("/:id", h.Admin.Get)
	admins.POST("", h.Admin.Create)
	admins.PUT("/:id", h.Admin.Update)
	admins.DELETE("/:id", h.Admin.Delete)
	admins.POST("/upload/avatar", h.Admin.UploadAvatar)

	users := api.Group("/user")
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.POST("", h.User.Create)
	users.POST("/login", h.User.Login)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)
	users.POST("/upload/avatar", h.User.UploadAvatar)

	plans := api.Group("/plans")
	plans.GET("", h.Plan.List)
	plans.GET("/:id", h.Plan.Get)
	plans.GET("/:id/features", h.Plan.Features)
	plans.POST("", h.Plan.Create)
	plans.PUT("/:id", h.Plan.Update)
	plans.DELETE("/:id", h.Plan.Delete)

	settings := api.Group("/settings")
	settings.GET("", h.Setting.Get)
	settings.POST("", h.Setting.Create)
	settings.PUT("", h.Setting.Update)
	settings.POST("/upload/icon", h.Setting.UploadIcon)

	contact := api.Group("/contact")
	contact.GET("", h.Contact.Get)
	contact.PUT("", h.Contact.Save)
	contact.POST("", h.Contact.CreateDefault)

	privacy := api.Group("/privacy")
	privacy.GET("", h.Privacy.Get)
	privacy.PUT("", h.Privacy.Save)
	privacy.DELETE("/:id", h.Privacy.Delete)

	faq := api.Group("/faq")
	faq.GET("", h.FAQ.Get)
	faq.PUT("", h.FAQ.Save)
	faq.DELETE("/:id", h.FAQ.DeleteCategory)

	logs := api.Group("/logs")
	logs.POST("/log", h.Log.AddAudit)
	logs.GET("", h.Log.ListAudit)
	logs.GET("/:id", h.Log.GetAudit)

	userLogs := api.Group("/userLogs")
	userLogs.POST("", h.Log.AddUserLog)
	userLogs.GET("", h.Log.ListUserLogs)

	pins := api.Group("/map-pins")
	pins.GET("", h.Map.ListPins)
	pins.GET("/:id", h.Map.GetPin)
	pins.GET("/user/:userId", h.Map.UserPins)
	pins.POST("", h.Map.CreatePin)
	pins.PUT("/:id", h.Map.UpdatePin)
	pins.DELETE("/:userId/:pinId", h.Map.DeletePin)
	pins.DELETE("/user/:userId", h.Map.DeleteUserPins)

	controls := api.Group("/map-controls")
	controls.GET("", h.Map.ListControls)
	controls.GET("/user/:userId", h.Map.GetControls)
	controls.PUT("/user/:userId", h.Map.UpsertControls)

	api.GET("/timezones", h.Timezone.ListTimezones)

	tzConfigs := api.Group("/timezone-configurations")
	tzConfigs.GET("", h.Timezone.ListConfigs)
	tzConfigs.GET("/:id", h.Timezone.GetConfig)
	tzConfigs.GET("/user/:userId", h.Timezone.UserConfig)
	tzConfigs.POST("", h.Timezone.CreateConfig)
	tzConfigs.PUT("/:id", h.Timezone.UpdateConfig)
	tzConfigs.DELETE("/:id", h.Timezone.DeleteConfig)

	payments := api.Group("/payments", requireToken, staffOnly)
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.Get)
	payments.POST("", h.Payment.Create)
	payments.PUT("/:id", h.Payment.Update)
	payments.DELETE("/:id", h.Payment.Delete)

	api.GET("/daily-events", h.Data.DailyEvents)
	api.GET("/data/weather", h.Data.Weather)

	api.POST("/seed", h.Seed.SeedDefaults, requireToken, auth.RequireRole(model.RoleSuperAdmin))
}

// errorHandler renders every failure as errors.ErrorResponse. Handler errors
// already carry one; anything else goes through errors.MapErrorToHTTP.
func errorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var body interface{}

		var he *echo.HTTPError
		if stderrors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case errors.ErrorResponse:
				body = msg
			case string:
				body = errors.ErrorResponse{Error: msg, Code: http.StatusText(status)}
			default:
				body = errors.ErrorResponse{Error: http.StatusText(status), Code: http.StatusText(status)}
			}
		} else {
			mapped := errors.MapErrorToHTTP(err)
			status = mapped.StatusCode
			body = mapped.ToErrorResponse()
		}

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
