package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// CreatePinInput carries the fields of a new map pin.
type CreatePinInput struct {
	UserID    uuid.UUID
	Name      string
	Latitude  *float64
	Longitude *float64
}

// UpdatePinInput lists the pin fields that may change; nil means "leave as is".
type UpdatePinInput struct {
	Name      *string
	Latitude  *float64
	Longitude *float64
}

// MapControlInput lists the overlay toggles that may change; nil means "leave as is".
type MapControlInput struct {
	TimeZones   *bool
	DayNight    *bool
	SunMoon     *bool
	MapStyles   *bool
	Time24Form  *bool
	AboutApp    *string
	Weather     *bool
	Earthquakes *bool
	AirTraffic  *bool
}

// apply copies the supplied fields and reports whether any were set.
func (in MapControlInput) apply(c *model.MapControl) bool {
	changed := false
	for _, set := range []bool{
		setBool(&c.TimeZones, in.TimeZones),
		setBool(&c.DayNight, in.DayNight),
		setBool(&c.SunMoon, in.SunMoon),
		setBool(&c.MapStyles, in.MapStyles),
		setBool(&c.Time24Form, in.Time24Form),
		setString(&c.AboutApp, in.AboutApp),
		setBool(&c.Weather, in.Weather),
		setBool(&c.Earthquakes, in.Earthquakes),
		setBool(&c.AirTraffic, in.AirTraffic),
	} {
		changed = changed || set
	}
	return changed
}

// MapService manages user map pins and map overlay controls.
type MapService interface {
	ListPins(ctx context.Context) ([]model.MapPin, error)
	GetPin(ctx context.Context, id uuid.UUID) (*model.MapPin, error)
	UserPins(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error)
	CreatePin(ctx context.Context, in CreatePinInput) (*model.MapPin, error)
	UpdatePin(ctx context.Context, id uuid.UUID, in UpdatePinInput) (*model.MapPin, error)
	DeletePin(ctx context.Context, userID, pinID uuid.UUID) (*model.MapPin, error)
	DeleteUserPins(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error)

	ListControls(ctx context.Context) ([]model.MapControl, error)
	GetControls(ctx context.Context, userID uuid.UUID) (*model.MapControl, error)
	// UpsertControls updates the user's controls or creates them; created reports which happened.
	UpsertControls(ctx context.Context, userID uuid.UUID, in MapControlInput) (controls *model.MapControl, created bool, err error)
}

type mapService struct {
	pins     repository.MapPinRepository
	controls repository.MapControlRepository
	log      zerolog.Logger
}

// NewMapService builds a MapService.
func NewMapService(pins repository.MapPinRepository, controls repository.MapControlRepository, log zerolog.Logger) MapService {
	return &mapService{pins: pins, controls: controls, log: log.With().Str("service", "map").Logger()}
}

func validLatitude(lat float64) bool  { return lat >= -90 && lat <= 90 }
func validLongitude(lng float64) bool { return lng >= -180 && lng <= 180 }

func (s *mapService) ListPins(ctx context.Context) ([]model.MapPin, error) {
	pins, err := s.pins.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list map pins", err)
	}
	return pins, nil
}

func (s *mapService) GetPin(ctx context.Context, id uuid.UUID) (*model.MapPin, error) {
	pin, err := s.pins.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find map pin", err, apperrors.ErrMapPinNotFound)
	}
	return pin, nil
}

func (s *mapService) UserPins(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	pins, err := s.pins.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(s.log, "list user map pins", err)
	}
	return pins, nil
}

func (s *mapService) CreatePin(ctx context.Context, in CreatePinInput) (*model.MapPin, error) {
	if in.UserID == uuid.Nil || strings.TrimSpace(in.Name) == "" || in.Latitude == nil || in.Longitude == nil {
		return nil, apperrors.Invalid("missing required fields: userId, name, lat, and lng are required")
	}
	if !validLatitude(*in.Latitude) || !validLongitude(*in.Longitude) {
		return nil, apperrors.Invalid("invalid coordinates: lat must be between -90 and 90, lng between -180 and 180")
	}

	pin := &model.MapPin{
		UserID:       in.UserID,
		LocationName: in.Name,
		Latitude:     *in.Latitude,
		Longitude:    *in.Longitude,
	}
	if err := s.pins.Create(ctx, pin); err != nil {
		return nil, storeError(s.log, "create map pin", err)
	}
	return pin, nil
}

func (s *mapService) UpdatePin(ctx context.Context, id uuid.UUID, in UpdatePinInput) (*model.MapPin, error) {
	if in.Name == nil && in.Latitude == nil && in.Longitude == nil {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if in.Latitude != nil && !validLatitude(*in.Latitude) {
		return nil, apperrors.Invalid("invalid latitude: must be between -90 and 90")
	}
	if in.Longitude != nil && !validLongitude(*in.Longitude) {
		return nil, apperrors.Invalid("invalid longitude: must be between -180 and 180")
	}

	pin, err := s.pins.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find map pin", err, apperrors.ErrMapPinNotFound)
	}
	setString(&pin.LocationName, in.Name)
	if in.Latitude != nil {
		pin.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		pin.Longitude = *in.Longitude
	}
	if err := s.pins.Update(ctx, pin); err != nil {
		return nil, storeError(s.log, "update map pin", err)
	}
	return pin, nil
}

func (s *mapService) DeletePin(ctx context.Context, userID, pinID uuid.UUID) (*model.MapPin, error) {
	pin, err := s.pins.DeleteForUser(ctx, userID, pinID)
	if err != nil {
		return nil, lookupError(s.log, "delete map pin", err, apperrors.ErrMapPinNotFound)
	}
	return pin, nil
}

func (s *mapService) DeleteUserPins(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	pins, err := s.pins.DeleteAllForUser(ctx, userID)
	if err != nil {
		return nil, storeError(s.log, "delete user map pins", err)
	}
	return pins, nil
}

func (s *mapService) ListControls(ctx context.Context) ([]model.MapControl, error) {
	controls, err := s.controls.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list map controls", err)
	}
	return controls, nil
}

func (s *mapService) GetControls(ctx context.Context, userID uuid.UUID) (*model.MapControl, error) {
	controls, err := s.controls.FindByUser(ctx, userID)
	if err != nil {
		return nil, lookupError(s.log, "find map controls", err, apperrors.ErrMapControlNotFound)
	}
	return controls, nil
}

// UpsertControls creates missing controls with every unsupplied toggle off.
func (s *mapService) UpsertControls(ctx context.Context, userID uuid.UUID, in MapControlInput) (*model.MapControl, bool, error) {
	if !in.apply(&model.MapControl{}) {
		return nil, false, apperrors.ErrNoFieldsToUpdate
	}

	controls, err := s.controls.FindByUser(ctx, userID)
	if err != nil && !isNotFound(err) {
		return nil, false, storeError(s.log, "find map controls", err)
	}

	if controls == nil {
		controls = &model.MapControl{UserID: userID}
		in.apply(controls)
		if err := s.controls.Create(ctx, controls); err != nil {
			return nil, false, storeError(s.log, "create map controls", err)
		}
		return controls, true, nil
	}

	in.apply(controls)
	if err := s.controls.Update(ctx, controls); err != nil {
		return nil, false, storeError(s.log, "update map controls", err)
	}
	return controls, false, nil
}
