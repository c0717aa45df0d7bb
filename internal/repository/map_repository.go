package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mapadmin/internal/model"
)

// MapPinRepository defines map pin persistence operations.
type MapPinRepository interface {
	Create(ctx context.Context, pin *model.MapPin) error
	Update(ctx context.Context, pin *model.MapPin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MapPin, error)
	List(ctx context.Context) ([]model.MapPin, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error)
	// DeleteForUser removes one pin owned by userID and returns it.
	DeleteForUser(ctx context.Context, userID, pinID uuid.UUID) (*model.MapPin, error)
	// DeleteAllForUser removes every pin owned by userID and returns them.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error)
}

type mapPinRepository struct {
	db *gorm.DB
}

// NewMapPinRepository builds a GORM-backed repository.
func NewMapPinRepository(db *gorm.DB) MapPinRepository {
	return &mapPinRepository{db: db}
}

func (r *mapPinRepository) Create(ctx context.Context, pin *model.MapPin) error {
	return r.db.WithContext(ctx).Omit("User").Create(pin).Error
}

func (r *mapPinRepository) Update(ctx context.Context, pin *model.MapPin) error {
	return r.db.WithContext(ctx).Omit("User").Save(pin).Error
}

func (r *mapPinRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MapPin, error) {
	var pin model.MapPin
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&pin).Error; err != nil {
		return nil, err
	}
	return &pin, nil
}

func (r *mapPinRepository) List(ctx context.Context) ([]model.MapPin, error) {
	var pins []model.MapPin
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at").Find(&pins).Error; err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *mapPinRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	var pins []model.MapPin
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&pins).Error; err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *mapPinRepository) DeleteForUser(ctx context.Context, userID, pinID uuid.UUID) (*model.MapPin, error) {
	var pin model.MapPin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", pinID, userID).First(&pin).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", pin.ID).Delete(&model.MapPin{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

func (r *mapPinRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	var pins []model.MapPin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Find(&pins).Error; err != nil {
			return err
		}
		if len(pins) == 0 {
			return nil
		}
		return tx.Where("user_id = ?", userID).Delete(&model.MapPin{}).Error
	})
	if err != nil {
		return nil, err
	}
	return pins, nil
}

// MapControlRepository defines map control persistence operations.
type MapControlRepository interface {
	Create(ctx context.Context, controls *model.MapControl) error
	Update(ctx context.Context, controls *model.MapControl) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.MapControl, error)
	List(ctx context.Context) ([]model.MapControl, error)
}

type mapControlRepository struct {
	db *gorm.DB
}

// NewMapControlRepository builds a GORM-backed repository.
func NewMapControlRepository(db *gorm.DB) MapControlRepository {
	return &mapControlRepository{db: db}
}

func (r *mapControlRepository) Create(ctx context.Context, controls *model.MapControl) error {
	return r.db.WithContext(ctx).Create(controls).Error
}

func (r *mapControlRepository) Update(ctx context.Context, controls *model.MapControl) error {
	return r.db.WithContext(ctx).Save(controls).Error
}

func (r *mapControlRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.MapControl, error) {
	var controls model.MapControl
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&controls).Error; err != nil {
		return nil, err
	}
	return &controls, nil
}

func (r *mapControlRepository) List(ctx context.Context) ([]model.MapControl, error) {
	var controls []model.MapControl
	if err := r.db.WithContext(ctx).Order("id").Find(&controls).Error; err != nil {
		return nil, err
	}
	return controls, nil
}
