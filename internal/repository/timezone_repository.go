package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mapadmin/internal/model"
)

// TimezoneRepository reads and seeds the timezone catalogue.
type TimezoneRepository interface {
	List(ctx context.Context) ([]model.Timezone, error)
	// Seed inserts zones whose name is not present yet and returns how many were added.
	Seed(ctx context.Context, zones []model.Timezone) (int64, error)
}

type timezoneRepository struct {
	db *gorm.DB
}

// NewTimezoneRepository builds a GORM-backed repository.
func NewTimezoneRepository(db *gorm.DB) TimezoneRepository {
	return &timezoneRepository{db: db}
}

func (r *timezoneRepository) List(ctx context.Context) ([]model.Timezone, error) {
	var zones []model.Timezone
	if err := r.db.WithContext(ctx).Order("name").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *timezoneRepository) Seed(ctx context.Context, zones []model.Timezone) (int64, error) {
	if len(zones) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&zones)
	return res.RowsAffected, res.Error
}

// TimezoneConfigRepository defines per-user timezone configuration persistence.
type TimezoneConfigRepository interface {
	Create(ctx context.Context, cfg *model.TimezoneConfiguration) error
	Update(ctx context.Context, cfg *model.TimezoneConfiguration) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.TimezoneConfiguration, error)
	List(ctx context.Context) ([]model.TimezoneConfiguration, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error)
}

type timezoneConfigRepository struct {
	db *gorm.DB
}

// NewTimezoneConfigRepository builds a GORM-backed repository.
func NewTimezoneConfigRepository(db *gorm.DB) TimezoneConfigRepository {
	return &timezoneConfigRepository{db: db}
}

func (r *timezoneConfigRepository) Create(ctx context.Context, cfg *model.TimezoneConfiguration) error {
	return r.db.WithContext(ctx).Omit("User").Create(cfg).Error
}

func (r *timezoneConfigRepository) Update(ctx context.Context, cfg *model.TimezoneConfiguration) error {
	return r.db.WithContext(ctx).Omit("User").Save(cfg).Error
}

func (r *timezoneConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	var cfg model.TimezoneConfiguration
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *timezoneConfigRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.TimezoneConfiguration, error) {
	var cfg model.TimezoneConfiguration
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *timezoneConfigRepository) List(ctx context.Context) ([]model.TimezoneConfiguration, error) {
	var cfgs []model.TimezoneConfiguration
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at").Find(&cfgs).Error; err != nil {
		return nil, err
	}
	return cfgs, nil
}

// Delete removes the configuration and returns the deleted row.
func (r *timezoneConfigRepository) Delete(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	var cfg model.TimezoneConfiguration
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&cfg).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.TimezoneConfiguration{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
