package main

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"mapadmin/docs"
	"mapadmin/internal/auth"
	"mapadmin/internal/cache"
	"mapadmin/internal/config"
	"mapadmin/internal/db"
	"mapadmin/internal/external"
	"mapadmin/internal/handler"
	"mapadmin/internal/logging"
	"mapadmin/internal/repository"
	"mapadmin/internal/router"
	"mapadmin/internal/service"
	"mapadmin/internal/storage"
)

// @title Map Admin API
// @version 1.0
// @description Admin dashboard backend: accounts, subscription plans, site content, audit logs, map pins and timezone preferences.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database init")
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			logger.Fatal().Err(err).Msg("database migration")
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()

	uploads, err := newUploader(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.UploadBackend).Msg("upload storage init")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, healthCheck(gormDB), buildHandlers(cfg, logger, gormDB, cacheClient, jwtService, uploads))

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	logger.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}

func buildHandlers(
	cfg *config.Config,
	logger zerolog.Logger,
	gormDB *gorm.DB,
	cacheClient *cache.Client,
	jwtService *auth.JWTService,
	uploads handler.ImageSaver,
) router.Handlers {
	// Initialize repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	planRepo := repository.NewPlanRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	privacyRepo := repository.NewPrivacyRepository(gormDB)
	faqRepo := repository.NewFAQRepository(gormDB)
	auditRepo := repository.NewAuditLogRepository(gormDB)
	userLogRepo := repository.NewUserLogRepository(gormDB)
	pinRepo := repository.NewMapPinRepository(gormDB)
	controlRepo := repository.NewMapControlRepository(gormDB)
	timezoneRepo := repository.NewTimezoneRepository(gormDB)
	tzConfigRepo := repository.NewTimezoneConfigRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(adminRepo, jwtService, logger)
	adminService := service.NewAdminService(adminRepo, logger)
	userService := service.NewUserService(userRepo, planRepo, jwtService, logger)
	planService := service.NewPlanService(planRepo, logger)
	settingService := service.NewSettingService(settingRepo, cacheClient, logger)
	contactService := service.NewContactService(contactRepo, cacheClient, logger)
	privacyService := service.NewPrivacyService(privacyRepo, cacheClient, logger)
	faqService := service.NewFAQService(faqRepo, cacheClient, logger)
	logService := service.NewLogService(auditRepo, userLogRepo, logger)
	mapService := service.NewMapService(pinRepo, controlRepo, logger)
	timezoneService := service.NewTimezoneService(timezoneRepo, tzConfigRepo, cacheClient, logger)
	paymentService := service.NewPaymentService(paymentRepo, logger)
	eventService := service.NewEventService(external.NewCalendarific(cfg.CalendarificBaseURL, cfg.CalendarificAPIKey, nil), logger)
	weatherService := service.NewWeatherService(external.NewWeather(cfg.WeatherBaseURL, cfg.WeatherAPIKey, nil), logger)
	seedService := service.NewSeedService(service.SeedRepositories{
		Admins:    adminRepo,
		Plans:     planRepo,
		Settings:  settingRepo,
		Contact:   contactRepo,
		FAQ:       faqRepo,
		Timezones: timezoneRepo,
	}, logger)

	return router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Admin:    handler.NewAdminHandler(adminService, uploads),
		User:     handler.NewUserHandler(userService, uploads),
		Plan:     handler.NewPlanHandler(planService),
		Setting:  handler.NewSettingHandler(settingService, uploads),
		Contact:  handler.NewContactHandler(contactService),
		Privacy:  handler.NewPrivacyHandler(privacyService),
		FAQ:      handler.NewFAQHandler(faqService),
		Log:      handler.NewLogHandler(logService),
		Map:      handler.NewMapHandler(mapService),
		Timezone: handler.NewTimezoneHandler(timezoneService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Data:     handler.NewDataHandler(eventService, weatherService),
		Seed:     handler.NewSeedHandler(seedService),
	}
}

func newUploader(cfg *config.Config) (*storage.Uploader, error) {
	var store storage.Store
	switch cfg.UploadBackend {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m, err := storage.NewMinIO(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			PublicURL: cfg.MinIOPublicURL,
		})
		if err != nil {
			return nil, err
		}
		store = m
	default:
		l, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		store = l
	}
	return storage.NewUploader(store, cfg.UploadMaxBytes), nil
}

func healthCheck(gormDB *gorm.DB) router.HealthCheck {
	return func(ctx context.Context) error {
		return db.Ping(gormDB)
	}
}

// swaggerHost strips any scheme from SWAGGER_HOST; it falls back to localhost.
func swaggerHost(cfg *config.Config) string {
	host := cfg.SwaggerHost
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	return host
}
