package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mapadmin/internal/model"
)

// Open returns a connected GORM DB instance for the given driver ("postgres" or "mysql").
// Driver errors are translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, Config())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// Config is the gorm configuration shared by the server, the seeder and repository tests.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		// Relations are cleaned up explicitly by the repositories.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Admin{},
		&model.Plan{},
		&model.PlanFeature{},
		&model.User{},
		&model.UserSubscription{},
		&model.Setting{},
		&model.ContactInfo{},
		&model.PrivacyPolicy{},
		&model.FAQMetadata{},
		&model.FAQCategory{},
		&model.FAQQuestion{},
		&model.AuditLog{},
		&model.UserLog{},
		&model.MapPin{},
		&model.MapControl{},
		&model.Timezone{},
		&model.TimezoneConfiguration{},
		&model.Payment{},
	}
}

// Migrate runs auto-migration for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
