package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/external"
)

// HolidaySource is the subset of the Calendarific client used by EventService.
type HolidaySource interface {
	Holidays(ctx context.Context, q external.HolidayQuery) ([]external.Holiday, error)
}

// TileSource is the subset of the weather client used by WeatherService.
type TileSource interface {
	Tile(ctx context.Context, q external.TileQuery) (*external.Tile, error)
}

// EventService serves the public holidays of a given day.
type EventService interface {
	Daily(ctx context.Context, q external.HolidayQuery) ([]external.Holiday, error)
}

type eventService struct {
	source HolidaySource
	log    zerolog.Logger
}

// NewEventService builds an EventService.
func NewEventService(source HolidaySource, log zerolog.Logger) EventService {
	return &eventService{source: source, log: log.With().Str("service", "events").Logger()}
}

func (s *eventService) Daily(ctx context.Context, q external.HolidayQuery) ([]external.Holiday, error) {
	q.Country = strings.TrimSpace(q.Country)
	if q.Country == "" || q.Year == "" || q.Month == "" || q.Day == "" {
		return nil, apperrors.Invalid("country, year, month, and day are required query parameters")
	}
	for _, v := range []string{q.Year, q.Month, q.Day} {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, apperrors.Invalid("year, month, and day must be numeric")
		}
	}

	holidays, err := s.source.Holidays(ctx, q)
	if err != nil {
		s.log.Warn().Err(err).Str("country", q.Country).Msg("holiday lookup failed")
		return nil, err
	}
	return holidays, nil
}

// maxTileZoom is the deepest zoom level served by the tile provider.
const maxTileZoom = 22

// WeatherService proxies weather map tiles.
type WeatherService interface {
	Tile(ctx context.Context, q external.TileQuery) (*external.Tile, error)
}

type weatherService struct {
	source TileSource
	log    zerolog.Logger
}

// NewWeatherService builds a WeatherService.
func NewWeatherService(source TileSource, log zerolog.Logger) WeatherService {
	return &weatherService{source: source, log: log.With().Str("service", "weather").Logger()}
}

// Tile checks the tile address before asking the provider.
func (s *weatherService) Tile(ctx context.Context, q external.TileQuery) (*external.Tile, error) {
	if q.Z < 0 || q.Z > maxTileZoom {
		return nil, apperrors.Invalid("zoom must be between 0 and %d", maxTileZoom)
	}
	limit := 1 << uint(q.Z)
	if q.X < 0 || q.X >= limit || q.Y < 0 || q.Y >= limit {
		return nil, apperrors.Invalid("tile %d/%d is outside zoom level %d", q.X, q.Y, q.Z)
	}

	tile, err := s.source.Tile(ctx, q)
	if err != nil {
		s.log.Warn().Err(err).Int("z", q.Z).Int("x", q.X).Int("y", q.Y).Msg("weather tile fetch failed")
		return nil, err
	}
	return tile, nil
}
