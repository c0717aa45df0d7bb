package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// FeatureInput is one entry of a plan's feature list.
type FeatureInput struct {
	Name     string
	Included bool
}

// CreatePlanInput carries the fields of a new plan.
type CreatePlanInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Color        string
	BillingCycle string
	Popular      bool
	Features     []FeatureInput
}

// UpdatePlanInput lists the plan fields that may change.
// A nil Features keeps the current list; a non-nil one replaces it.
type UpdatePlanInput struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Color        *string
	BillingCycle *string
	Popular      *bool
	Features     []FeatureInput
}

// PlanService manages subscription plans and their features.
type PlanService interface {
	List(ctx context.Context) ([]model.Plan, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	Features(ctx context.Context, id uuid.UUID) ([]model.PlanFeature, error)
	Create(ctx context.Context, in CreatePlanInput) (*model.Plan, error)
	Update(ctx context.Context, id uuid.UUID, in UpdatePlanInput) (*model.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	repo repository.PlanRepository
	log  zerolog.Logger
}

// NewPlanService builds a PlanService.
func NewPlanService(repo repository.PlanRepository, log zerolog.Logger) PlanService {
	return &planService{repo: repo, log: log.With().Str("service", "plan").Logger()}
}

func toFeatures(in []FeatureInput) ([]model.PlanFeature, error) {
	features := make([]model.PlanFeature, 0, len(in))
	for _, f := range in {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, apperrors.Invalid("feature name is required")
		}
		features = append(features, model.PlanFeature{Name: name, Included: f.Included})
	}
	return features, nil
}

func (s *planService) List(ctx context.Context) ([]model.Plan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list plans", err)
	}
	return plans, nil
}

func (s *planService) Get(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find plan", err, apperrors.ErrPlanNotFound)
	}
	return plan, nil
}

func (s *planService) Features(ctx context.Context, id uuid.UUID) ([]model.PlanFeature, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	features, err := s.repo.Features(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "list plan features", err)
	}
	return features, nil
}

func (s *planService) Create(ctx context.Context, in CreatePlanInput) (*model.Plan, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.Invalid("plan name is required")
	}
	if len(in.Features) == 0 {
		return nil, apperrors.Invalid("features array is required and cannot be empty")
	}
	if in.Price.IsNegative() {
		return nil, apperrors.Invalid("price cannot be negative")
	}
	features, err := toFeatures(in.Features)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Color:        in.Color,
		BillingCycle: in.BillingCycle,
		Popular:      in.Popular,
		Features:     features,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Invalid("a plan named %q already exists", plan.Name)
		}
		return nil, storeError(s.log, "create plan", err)
	}
	return plan, nil
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, in UpdatePlanInput) (*model.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find plan", err, apperrors.ErrPlanNotFound)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		plan.Name = strings.TrimSpace(*in.Name)
	}
	setString(&plan.Description, in.Description)
	setString(&plan.Color, in.Color)
	setString(&plan.BillingCycle, in.BillingCycle)
	setBool(&plan.Popular, in.Popular)
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperrors.Invalid("price cannot be negative")
		}
		plan.Price = *in.Price
	}

	var features []model.PlanFeature
	if in.Features != nil {
		if features, err = toFeatures(in.Features); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, plan, features); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Invalid("a plan named %q already exists", plan.Name)
		}
		return nil, storeError(s.log, "update plan", err)
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(s.log, "delete plan", err, apperrors.ErrPlanNotFound)
	}
	return nil
}
