package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mapadmin/internal/service"
)

// PlanHandler handles subscription plan endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// FeatureRequest is one plan feature.
type FeatureRequest struct {
	Name     string `json:"name" validate:"required"`
	Included bool   `json:"included"`
}

// CreatePlanRequest represents a plan creation request.
type CreatePlanRequest struct {
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price" swaggertype:"string" example:"9.99"`
	Color        string           `json:"color"`
	BillingCycle string           `json:"billingCycle"`
	Popular      bool             `json:"popular"`
	Features     []FeatureRequest `json:"features" validate:"dive"`
}

// UpdatePlanRequest lists the plan fields an update may change.
type UpdatePlanRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Color        *string          `json:"color"`
	BillingCycle *string          `json:"billingCycle"`
	Popular      *bool            `json:"popular"`
	Features     []FeatureRequest `json:"features" validate:"omitempty,dive"`
}

func toFeatureInputs(in []FeatureRequest) []service.FeatureInput {
	if in == nil {
		return nil
	}
	out := make([]service.FeatureInput, 0, len(in))
	for _, f := range in {
		out = append(out, service.FeatureInput{Name: f.Name, Included: f.Included})
	}
	return out
}

// List godoc
// @Summary List plans with features
// @Tags plans
// @Produce json
// @Success 200 {array} model.Plan
// @Failure 400 {object} errors.ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.planService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plans)
}

// Get godoc
// @Summary Get a plan with features
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.Plan
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := h.planService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Features godoc
// @Summary List the features of a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {array} model.PlanFeature
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id}/features [get]
func (h *PlanHandler) Features(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	features, err := h.planService.Features(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, features)
}

// Create godoc
// @Summary Create a plan with its features
// @Tags plans
// @Accept json
// @Produce json
// @Param request body CreatePlanRequest true "Plan data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	var req CreatePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	plan, err := h.planService.Create(c.Request().Context(), service.CreatePlanInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Color:        req.Color,
		BillingCycle: req.BillingCycle,
		Popular:      req.Popular,
		Features:     toFeatureInputs(req.Features),
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Plan created successfully",
		"plan":    plan,
	})
}

// Update godoc
// @Summary Update a plan
// @Description A features array replaces the plan's features; omitting it keeps them.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body UpdatePlanRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	plan, err := h.planService.Update(c.Request().Context(), id, service.UpdatePlanInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Color:        req.Color,
		BillingCycle: req.BillingCycle,
		Popular:      req.Popular,
		Features:     toFeatureInputs(req.Features),
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Plan updated successfully",
		"plan":    plan,
	})
}

// Delete godoc
// @Summary Delete a plan and its features
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.planService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Plan deleted successfully"})
}
