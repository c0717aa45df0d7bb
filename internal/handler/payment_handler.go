package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mapadmin/internal/model"
	"mapadmin/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRequest represents a payment create or update request.
// On update every omitted field keeps its value.
type PaymentRequest struct {
	UserID    *string `json:"user_id" validate:"omitempty,uuid"`
	PlanID    *string `json:"plan_id" validate:"omitempty,uuid"`
	Amount    *string `json:"amount" example:"9.99"`
	Currency  *string `json:"currency" validate:"omitempty,len=3"`
	Method    *string `json:"method"`
	Reference *string `json:"reference"`
	Status    *string `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
}

func (r PaymentRequest) input() (service.PaymentInput, error) {
	in := service.PaymentInput{
		Currency:  r.Currency,
		Method:    r.Method,
		Reference: r.Reference,
	}
	if r.UserID != nil {
		id, err := uuid.Parse(*r.UserID)
		if err != nil {
			return in, badRequest("invalid user_id", "INVALID_UUID")
		}
		in.UserID = &id
	}
	if r.PlanID != nil {
		id, err := uuid.Parse(*r.PlanID)
		if err != nil {
			return in, badRequest("invalid plan_id", "INVALID_UUID")
		}
		in.PlanID = &id
	}
	if r.Amount != nil {
		amount, err := decimal.NewFromString(*r.Amount)
		if err != nil {
			return in, badRequest("invalid amount format", "INVALID_AMOUNT")
		}
		in.Amount = &amount
	}
	if r.Status != nil {
		status := model.PaymentStatus(*r.Status)
		in.Status = &status
	}
	return in, nil
}

// List godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Router /payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.paymentService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Get godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} model.Payment
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Create godoc
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment data"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// Update godoc
// @Summary Update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body PaymentRequest true "Fields to change"
// @Success 200 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete godoc
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.paymentService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Payment deleted successfully"})
}
