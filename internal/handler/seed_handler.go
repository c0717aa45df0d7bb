package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapadmin/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedDefaults godoc
// @Summary Install default rows
// @Description Creates the default plan, settings, contact page, FAQ heading and timezone catalogue when missing.
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SeedReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) SeedDefaults(c echo.Context) error {
	report, err := h.seedService.Run(c.Request().Context(), service.SeedInput{})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, report)
}
