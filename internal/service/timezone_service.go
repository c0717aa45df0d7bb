package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mapadmin/internal/cache"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// Clock formats accepted for a timezone configuration.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// CreateTimezoneConfigInput carries the fields of a new configuration.
type CreateTimezoneConfigInput struct {
	UserID     uuid.UUID
	Timezone   string
	TimeFormat string
}

// UpdateTimezoneConfigInput lists the configuration fields that may change.
type UpdateTimezoneConfigInput struct {
	Timezone   *string
	TimeFormat *string
}

// TimezoneService serves the timezone catalogue and per-user timezone configurations.
type TimezoneService interface {
	ListTimezones(ctx context.Context) ([]model.Timezone, error)

	ListConfigs(ctx context.Context) ([]model.TimezoneConfiguration, error)
	GetConfig(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error)
	UserConfig(ctx context.Context, userID uuid.UUID) (*model.TimezoneConfiguration, error)
	CreateConfig(ctx context.Context, in CreateTimezoneConfigInput) (*model.TimezoneConfiguration, error)
	UpdateConfig(ctx context.Context, id uuid.UUID, in UpdateTimezoneConfigInput) (*model.TimezoneConfiguration, error)
	DeleteConfig(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error)
}

type timezoneService struct {
	zones   repository.TimezoneRepository
	configs repository.TimezoneConfigRepository
	cache   *cache.Client
	log     zerolog.Logger
}

// NewTimezoneService builds a TimezoneService. cache may be nil.
func NewTimezoneService(zones repository.TimezoneRepository, configs repository.TimezoneConfigRepository, c *cache.Client, log zerolog.Logger) TimezoneService {
	return &timezoneService{
		zones:   zones,
		configs: configs,
		cache:   c,
		log:     log.With().Str("service", "timezone").Logger(),
	}
}

func validTimeFormat(f string) bool {
	return f == TimeFormat12h || f == TimeFormat24h
}

func (s *timezoneService) ListTimezones(ctx context.Context) ([]model.Timezone, error) {
	var cached []model.Timezone
	if s.cache.GetJSON(ctx, timezonesCacheKey, &cached) {
		return cached, nil
	}

	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list timezones", err)
	}
	s.cache.SetJSON(ctx, timezonesCacheKey, zones)
	return zones, nil
}

func (s *timezoneService) ListConfigs(ctx context.Context) ([]model.TimezoneConfiguration, error) {
	configs, err := s.configs.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list timezone configurations", err)
	}
	return configs, nil
}

func (s *timezoneService) GetConfig(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	cfg, err := s.configs.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find timezone configuration", err, apperrors.ErrTimezoneConfigNotFound)
	}
	return cfg, nil
}

func (s *timezoneService) UserConfig(ctx context.Context, userID uuid.UUID) (*model.TimezoneConfiguration, error) {
	cfg, err := s.configs.FindByUser(ctx, userID)
	if err != nil {
		return nil, lookupError(s.log, "find user timezone configuration", err, apperrors.ErrTimezoneConfigNotFound)
	}
	return cfg, nil
}

// CreateConfig stores a user's configuration; a user holds at most one.
func (s *timezoneService) CreateConfig(ctx context.Context, in CreateTimezoneConfigInput) (*model.TimezoneConfiguration, error) {
	if in.UserID == uuid.Nil || strings.TrimSpace(in.Timezone) == "" || in.TimeFormat == "" {
		return nil, apperrors.Invalid("missing required fields: user_id, timezone, and time_format are required")
	}
	if !validTimeFormat(in.TimeFormat) {
		return nil, apperrors.Invalid("time_format must be %s or %s", TimeFormat12h, TimeFormat24h)
	}

	_, err := s.configs.FindByUser(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, apperrors.ErrTimezoneConfigExists
	case !isNotFound(err):
		return nil, storeError(s.log, "find user timezone configuration", err)
	}

	cfg := &model.TimezoneConfiguration{
		UserID:     in.UserID,
		Timezone:   in.Timezone,
		TimeFormat: in.TimeFormat,
	}
	if err := s.configs.Create(ctx, cfg); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrTimezoneConfigExists
		}
		return nil, storeError(s.log, "create timezone configuration", err)
	}
	return cfg, nil
}

func (s *timezoneService) UpdateConfig(ctx context.Context, id uuid.UUID, in UpdateTimezoneConfigInput) (*model.TimezoneConfiguration, error) {
	if in.Timezone == nil && in.TimeFormat == nil {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if in.TimeFormat != nil && !validTimeFormat(*in.TimeFormat) {
		return nil, apperrors.Invalid("time_format must be %s or %s", TimeFormat12h, TimeFormat24h)
	}

	cfg, err := s.configs.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find timezone configuration", err, apperrors.ErrTimezoneConfigNotFound)
	}
	setString(&cfg.Timezone, in.Timezone)
	setString(&cfg.TimeFormat, in.TimeFormat)
	if err := s.configs.Update(ctx, cfg); err != nil {
		return nil, storeError(s.log, "update timezone configuration", err)
	}
	return cfg, nil
}

func (s *timezoneService) DeleteConfig(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	cfg, err := s.configs.Delete(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "delete timezone configuration", err, apperrors.ErrTimezoneConfigNotFound)
	}
	return cfg, nil
}
