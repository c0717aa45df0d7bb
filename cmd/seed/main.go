package main

import (
	"context"
	"time"

	"mapadmin/internal/config"
	"mapadmin/internal/db"
	"mapadmin/internal/logging"
	"mapadmin/internal/repository"
	"mapadmin/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	logger.Info().Msg("starting seed")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	logger.Info().Msg("connected to database")

	// The seeder always migrates so it can run against an empty database.
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	logger.Info().Msg("database migrations completed")

	seeder := service.NewSeedService(service.SeedRepositories{
		Admins:    repository.NewAdminRepository(gormDB),
		Plans:     repository.NewPlanRepository(gormDB),
		Settings:  repository.NewSettingRepository(gormDB),
		Contact:   repository.NewContactRepository(gormDB),
		FAQ:       repository.NewFAQRepository(gormDB),
		Timezones: repository.NewTimezoneRepository(gormDB),
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := seeder.Run(ctx, service.SeedInput{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
	})
	if err != nil {
		logger.Fatal().Err(err).Strs("created", report.Created).Msg("seed failed")
	}

	logger.Info().
		Int("created", len(report.Created)).
		Int("skipped", len(report.Skipped)).
		Msg("seed completed successfully")
}
