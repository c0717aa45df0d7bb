package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/service"
)

// TimezoneHandler handles the timezone catalogue and user timezone configurations.
type TimezoneHandler struct {
	timezoneService service.TimezoneService
}

// NewTimezoneHandler creates a new timezone handler.
func NewTimezoneHandler(timezoneService service.TimezoneService) *TimezoneHandler {
	return &TimezoneHandler{timezoneService: timezoneService}
}

// CreateTimezoneConfigRequest represents a configuration creation request.
type CreateTimezoneConfigRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	Timezone   string    `json:"timezone" validate:"required"`
	TimeFormat string    `json:"time_format" validate:"required"`
}

// UpdateTimezoneConfigRequest lists the configuration fields an update may change.
type UpdateTimezoneConfigRequest struct {
	Timezone   *string `json:"timezone"`
	TimeFormat *string `json:"time_format"`
}

// ListTimezones godoc
// @Summary List known timezones
// @Tags timezones
// @Produce json
// @Success 200 {array} model.Timezone
// @Failure 400 {object} errors.ErrorResponse
// @Router /timezones [get]
func (h *TimezoneHandler) ListTimezones(c echo.Context) error {
	zones, err := h.timezoneService.ListTimezones(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, zones)
}

// ListConfigs godoc
// @Summary List timezone configurations
// @Tags timezones
// @Produce json
// @Success 200 {array} model.TimezoneConfiguration
// @Failure 400 {object} errors.ErrorResponse
// @Router /timezone-configurations [get]
func (h *TimezoneHandler) ListConfigs(c echo.Context) error {
	configs, err := h.timezoneService.ListConfigs(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, configs)
}

// GetConfig godoc
// @Summary Get a timezone configuration
// @Tags timezones
// @Produce json
// @Param id path string true "Configuration ID"
// @Success 200 {object} model.TimezoneConfiguration
// @Failure 404 {object} errors.ErrorResponse
// @Router /timezone-configurations/{id} [get]
func (h *TimezoneHandler) GetConfig(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	cfg, err := h.timezoneService.GetConfig(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// UserConfig godoc
// @Summary Get a user's timezone configuration
// @Tags timezones
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} model.TimezoneConfiguration
// @Failure 404 {object} errors.ErrorResponse
// @Router /timezone-configurations/user/{userId} [get]
func (h *TimezoneHandler) UserConfig(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	cfg, err := h.timezoneService.UserConfig(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// CreateConfig godoc
// @Summary Create a user's timezone configuration
// @Tags timezones
// @Accept json
// @Produce json
// @Param request body CreateTimezoneConfigRequest true "Configuration"
// @Success 201 {object} model.TimezoneConfiguration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /timezone-configurations [post]
func (h *TimezoneHandler) CreateConfig(c echo.Context) error {
	var req CreateTimezoneConfigRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cfg, err := h.timezoneService.CreateConfig(c.Request().Context(), service.CreateTimezoneConfigInput{
		UserID:     req.UserID,
		Timezone:   req.Timezone,
		TimeFormat: req.TimeFormat,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, cfg)
}

// UpdateConfig godoc
// @Summary Update a timezone configuration
// @Tags timezones
// @Accept json
// @Produce json
// @Param id path string true "Configuration ID"
// @Param request body UpdateTimezoneConfigRequest true "Fields to change"
// @Success 200 {object} model.TimezoneConfiguration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /timezone-configurations/{id} [put]
func (h *TimezoneHandler) UpdateConfig(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTimezoneConfigRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cfg, err := h.timezoneService.UpdateConfig(c.Request().Context(), id, service.UpdateTimezoneConfigInput{
		Timezone:   req.Timezone,
		TimeFormat: req.TimeFormat,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// DeleteConfig godoc
// @Summary Delete a timezone configuration
// @Tags timezones
// @Produce json
// @Param id path string true "Configuration ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /timezone-configurations/{id} [delete]
func (h *TimezoneHandler) DeleteConfig(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	cfg, err := h.timezoneService.DeleteConfig(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Configuration deleted successfully",
		"data":    cfg,
	})
}
