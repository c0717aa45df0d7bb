package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapadmin/internal/external"
	"mapadmin/internal/service"
)

// Tile drawn when the caller does not address one.
const (
	defaultTileZoom = 5
	defaultTileX    = 2
	defaultTileY    = 3
)

// DataHandler proxies third-party data feeds shown on the map.
type DataHandler struct {
	eventService   service.EventService
	weatherService service.WeatherService
}

// NewDataHandler creates a new data handler.
func NewDataHandler(eventService service.EventService, weatherService service.WeatherService) *DataHandler {
	return &DataHandler{eventService: eventService, weatherService: weatherService}
}

// DailyEvents godoc
// @Summary Holidays and observances for a day
// @Tags data
// @Produce json
// @Param country query string true "ISO country code"
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Param day query int true "Day"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /daily-events [get]
func (h *DataHandler) DailyEvents(c echo.Context) error {
	events, err := h.eventService.Daily(c.Request().Context(), external.HolidayQuery{
		Country: c.QueryParam("country"),
		Year:    c.QueryParam("year"),
		Month:   c.QueryParam("month"),
		Day:     c.QueryParam("day"),
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Daily events fetched successfully",
		"data":    events,
	})
}

// Weather godoc
// @Summary Weather map tile
// @Tags data
// @Produce png
// @Param z query int false "Zoom level" default(5)
// @Param x query int false "Tile column" default(2)
// @Param y query int false "Tile row" default(3)
// @Param field query string false "Weather layer" default(precipitationIntensity)
// @Param time query string false "ISO timestamp or now" default(now)
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /data/weather [get]
func (h *DataHandler) Weather(c echo.Context) error {
	q := external.TileQuery{
		Z:     defaultTileZoom,
		X:     defaultTileX,
		Y:     defaultTileY,
		Field: c.QueryParam("field"),
		Time:  c.QueryParam("time"),
	}
	if err := echo.QueryParamsBinder(c).
		Int("z", &q.Z).
		Int("x", &q.X).
		Int("y", &q.Y).
		BindError(); err != nil {
		return badRequest("z, x and y must be integers", "INVALID_REQUEST")
	}

	tile, err := h.weatherService.Tile(c.Request().Context(), q)
	if err != nil {
		return respondError(err)
	}
	return c.Blob(http.StatusOK, tile.ContentType, tile.Data)
}
