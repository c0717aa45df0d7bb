package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/model"
	"mapadmin/internal/service"
)

// MapHandler handles user map pins and map overlay controls.
type MapHandler struct {
	mapService service.MapService
}

// NewMapHandler creates a new map handler.
func NewMapHandler(mapService service.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// PinResponse is the client-facing shape of a map pin.
type PinResponse struct {
	ID     uuid.UUID      `json:"id"`
	Lat    float64        `json:"lat"`
	Lng    float64        `json:"lng"`
	Name   string         `json:"name"`
	UserID uuid.UUID      `json:"userId"`
	User   *model.UserRef `json:"users,omitempty"`
}

func toPinResponse(p model.MapPin) PinResponse {
	return PinResponse{
		ID:     p.ID,
		Lat:    p.Latitude,
		Lng:    p.Longitude,
		Name:   p.LocationName,
		UserID: p.UserID,
		User:   p.User,
	}
}

func toPinResponses(pins []model.MapPin) []PinResponse {
	out := make([]PinResponse, 0, len(pins))
	for _, p := range pins {
		out = append(out, toPinResponse(p))
	}
	return out
}

// CreatePinRequest represents a pin creation request.
type CreatePinRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Name   string    `json:"name" validate:"required"`
	Lat    *float64  `json:"lat" validate:"required"`
	Lng    *float64  `json:"lng" validate:"required"`
}

// UpdatePinRequest lists the pin fields an update may change.
type UpdatePinRequest struct {
	Name *string  `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// MapControlRequest lists the overlay toggles an update may change.
type MapControlRequest struct {
	TimeZones   *bool   `json:"time_zones"`
	DayNight    *bool   `json:"day_night"`
	SunMoon     *bool   `json:"sun_moon"`
	MapStyles   *bool   `json:"map_styles"`
	Time24Form  *bool   `json:"time_24_form"`
	AboutApp    *string `json:"about_app"`
	Weather     *bool   `json:"weather"`
	Earthquakes *bool   `json:"earthquakes"`
	AirTraffic  *bool   `json:"air_traffic"`
}

// ListPins godoc
// @Summary List all map pins
// @Tags map
// @Produce json
// @Success 200 {array} PinResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-pins [get]
func (h *MapHandler) ListPins(c echo.Context) error {
	pins, err := h.mapService.ListPins(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toPinResponses(pins))
}

// GetPin godoc
// @Summary Get a map pin
// @Tags map
// @Produce json
// @Param id path string true "Pin ID"
// @Success 200 {object} PinResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /map-pins/{id} [get]
func (h *MapHandler) GetPin(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	pin, err := h.mapService.GetPin(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toPinResponse(*pin))
}

// UserPins godoc
// @Summary List a user's map pins
// @Tags map
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} PinResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-pins/user/{userId} [get]
func (h *MapHandler) UserPins(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	pins, err := h.mapService.UserPins(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toPinResponses(pins))
}

// CreatePin godoc
// @Summary Create a map pin
// @Tags map
// @Accept json
// @Produce json
// @Param request body CreatePinRequest true "Pin data"
// @Success 201 {object} PinResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-pins [post]
func (h *MapHandler) CreatePin(c echo.Context) error {
	var req CreatePinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pin, err := h.mapService.CreatePin(c.Request().Context(), service.CreatePinInput{
		UserID:    req.UserID,
		Name:      req.Name,
		Latitude:  req.Lat,
		Longitude: req.Lng,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, toPinResponse(*pin))
}

// UpdatePin godoc
// @Summary Update a map pin
// @Tags map
// @Accept json
// @Produce json
// @Param id path string true "Pin ID"
// @Param request body UpdatePinRequest true "Fields to change"
// @Success 200 {object} PinResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /map-pins/{id} [put]
func (h *MapHandler) UpdatePin(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pin, err := h.mapService.UpdatePin(c.Request().Context(), id, service.UpdatePinInput{
		Name:      req.Name,
		Latitude:  req.Lat,
		Longitude: req.Lng,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toPinResponse(*pin))
}

// DeletePin godoc
// @Summary Delete one of a user's map pins
// @Tags map
// @Produce json
// @Param userId path string true "User ID"
// @Param pinId path string true "Pin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /map-pins/{userId}/{pinId} [delete]
func (h *MapHandler) DeletePin(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	pinID, err := uuidParam(c, "pinId")
	if err != nil {
		return err
	}

	pin, err := h.mapService.DeletePin(c.Request().Context(), userID, pinID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Map pin deleted successfully",
		"data":    toPinResponse(*pin),
	})
}

// DeleteUserPins godoc
// @Summary Delete all of a user's map pins
// @Tags map
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-pins/user/{userId} [delete]
func (h *MapHandler) DeleteUserPins(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	pins, err := h.mapService.DeleteUserPins(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully deleted %d map pins for user", len(pins)),
		"data":    toPinResponses(pins),
	})
}

// ListControls godoc
// @Summary List every user's map controls
// @Tags map
// @Produce json
// @Success 200 {array} model.MapControl
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-controls [get]
func (h *MapHandler) ListControls(c echo.Context) error {
	controls, err := h.mapService.ListControls(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, controls)
}

// GetControls godoc
// @Summary Get a user's map controls
// @Tags map
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} model.MapControl
// @Failure 404 {object} errors.ErrorResponse
// @Router /map-controls/user/{userId} [get]
func (h *MapHandler) GetControls(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	controls, err := h.mapService.GetControls(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, controls)
}

// UpsertControls godoc
// @Summary Update a user's map controls, creating them when absent
// @Tags map
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body MapControlRequest true "Toggles to change"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /map-controls/user/{userId} [put]
func (h *MapHandler) UpsertControls(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	var req MapControlRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	controls, created, err := h.mapService.UpsertControls(c.Request().Context(), userID, service.MapControlInput{
		TimeZones:   req.TimeZones,
		DayNight:    req.DayNight,
		SunMoon:     req.SunMoon,
		MapStyles:   req.MapStyles,
		Time24Form:  req.Time24Form,
		AboutApp:    req.AboutApp,
		Weather:     req.Weather,
		Earthquakes: req.Earthquakes,
		AirTraffic:  req.AirTraffic,
	})
	if err != nil {
		return respondError(err)
	}

	if created {
		return c.JSON(http.StatusCreated, map[string]interface{}{
			"message": "Map controls created for user",
			"data":    controls,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Map controls updated successfully",
		"data":    controls,
	})
}
