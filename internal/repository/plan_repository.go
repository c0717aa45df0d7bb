package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mapadmin/internal/model"
)

// PlanRepository defines plan and plan feature persistence operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	// Update saves the plan row; a non-nil features slice replaces the plan's features.
	Update(ctx context.Context, plan *model.Plan, features []model.PlanFeature) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	FindByName(ctx context.Context, name string) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Features(ctx context.Context, planID uuid.UUID) ([]model.PlanFeature, error)
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository builds a GORM-backed repository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create inserts the plan and its features in one transaction.
func (r *planRepository) Create(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		features := plan.Features
		if err := tx.Omit(clause.Associations).Create(plan).Error; err != nil {
			return err
		}
		for i := range features {
			features[i].ID = 0
			features[i].PlanID = plan.ID
		}
		if len(features) > 0 {
			if err := tx.Create(&features).Error; err != nil {
				return err
			}
		}
		plan.Features = features
		return nil
	})
}

func (r *planRepository) Update(ctx context.Context, plan *model.Plan, features []model.PlanFeature) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(plan).Error; err != nil {
			return err
		}
		if features == nil {
			return nil
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.PlanFeature{}).Error; err != nil {
			return err
		}
		for i := range features {
			features[i].ID = 0
			features[i].PlanID = plan.ID
		}
		if len(features) > 0 {
			if err := tx.Create(&features).Error; err != nil {
				return err
			}
		}
		plan.Features = features
		return nil
	})
}

func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).Preload("Features").Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindByName(ctx context.Context, name string) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := r.db.WithContext(ctx).Preload("Features").Order("price").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes the plan's features and then the plan.
func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&model.PlanFeature{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Plan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *planRepository) Features(ctx context.Context, planID uuid.UUID) ([]model.PlanFeature, error) {
	var features []model.PlanFeature
	if err := r.db.WithContext(ctx).Where("plan_id = ?", planID).Order("id").Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}
