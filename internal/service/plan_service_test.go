package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
)

func TestPlanService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreatePlanInput
		setupMock func(*MockPlanRepository)
		wantErr   string
	}{
		{
			name: "plan with features",
			input: CreatePlanInput{
				Name:     "Pro",
				Price:    decimal.RequireFromString("9.99"),
				Features: []FeatureInput{{Name: "Weather layer", Included: true}, {Name: "Air traffic"}},
			},
			setupMock: func(m *MockPlanRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Plan) bool {
					return p.Name == "Pro" && len(p.Features) == 2 && p.Features[0].Included
				})).Return(nil)
			},
		},
		{
			name:      "no features",
			input:     CreatePlanInput{Name: "Empty"},
			setupMock: func(*MockPlanRepository) {},
			wantErr:   "features array is required and cannot be empty",
		},
		{
			name: "negative price",
			input: CreatePlanInput{
				Name:     "Refund",
				Price:    decimal.NewFromInt(-1),
				Features: []FeatureInput{{Name: "x"}},
			},
			setupMock: func(*MockPlanRepository) {},
			wantErr:   "price cannot be negative",
		},
		{
			name: "duplicate name",
			input: CreatePlanInput{
				Name:     "Free Plan",
				Features: []FeatureInput{{Name: "Pins"}},
			},
			setupMock: func(m *MockPlanRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Plan")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: `a plan named "Free Plan" already exists`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPlanRepository)
			tt.setupMock(repo)

			service := NewPlanService(repo, zerolog.Nop())
			plan, err := service.Create(context.Background(), tt.input)

			if tt.wantErr != "" {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantErr, validationErr.Message)
				assert.Nil(t, plan)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.Name, plan.Name)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPlanService_Update_KeepsFeaturesWhenOmitted(t *testing.T) {
	plan := &model.Plan{ID: uuid.New(), Name: "Pro", Description: "For teams", Price: decimal.NewFromInt(10)}

	repo := new(MockPlanRepository)
	repo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	repo.On("Update", mock.Anything, plan, []model.PlanFeature(nil)).Return(nil)

	service := NewPlanService(repo, zerolog.Nop())
	price := decimal.NewFromInt(12)
	updated, err := service.Update(context.Background(), plan.ID, UpdatePlanInput{Price: &price})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "For teams", updated.Description)
	repo.AssertExpectations(t)
}

func TestPlanService_Update_ReplacesFeatures(t *testing.T) {
	plan := &model.Plan{ID: uuid.New(), Name: "Pro"}

	repo := new(MockPlanRepository)
	repo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	repo.On("Update", mock.Anything, plan, []model.PlanFeature{{Name: "Earthquakes", Included: true}}).Return(nil)

	service := NewPlanService(repo, zerolog.Nop())
	_, err := service.Update(context.Background(), plan.ID, UpdatePlanInput{
		Features: []FeatureInput{{Name: " Earthquakes ", Included: true}},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPlanService_Features_UnknownPlan(t *testing.T) {
	id := uuid.New()
	repo := new(MockPlanRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	service := NewPlanService(repo, zerolog.Nop())
	_, err := service.Features(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
	repo.AssertNotCalled(t, "Features", mock.Anything, mock.Anything)
}

func TestPlanService_Delete_Missing(t *testing.T) {
	id := uuid.New()
	repo := new(MockPlanRepository)
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	service := NewPlanService(repo, zerolog.Nop())
	assert.ErrorIs(t, service.Delete(context.Background(), id), apperrors.ErrPlanNotFound)
}
