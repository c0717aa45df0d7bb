package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/service"
)

// LogHandler handles audit and user activity logs.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new log handler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// AuditLogRequest records an admin action. The caller's address is used when ip_address is omitted.
type AuditLogRequest struct {
	Admin     string `json:"admin" validate:"required"`
	Action    string `json:"action" validate:"required"`
	Target    string `json:"target"`
	IPAddress string `json:"ip_address" validate:"omitempty,ip"`
	Severity  string `json:"severity" validate:"omitempty,oneof=info warning error"`
}

// UserLogRequest records an end-user action.
type UserLogRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	Action     string    `json:"action" validate:"required"`
	IPAddress  string    `json:"ip_address" validate:"required"`
	DeviceType string    `json:"device_type" validate:"required"`
}

// AddAudit godoc
// @Summary Record an admin action
// @Tags logs
// @Accept json
// @Produce json
// @Param request body AuditLogRequest true "Audit entry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /logs/log [post]
func (h *LogHandler) AddAudit(c echo.Context) error {
	var req AuditLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.IPAddress == "" {
		req.IPAddress = c.RealIP()
	}

	entry, err := h.logService.AddAudit(c.Request().Context(), service.AuditInput{
		Admin:     req.Admin,
		Action:    req.Action,
		Target:    req.Target,
		IPAddress: req.IPAddress,
		Severity:  req.Severity,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Action logged successfully",
		"data":    entry,
	})
}

// ListAudit godoc
// @Summary List admin actions, newest first
// @Tags logs
// @Produce json
// @Success 200 {array} model.AuditLog
// @Failure 400 {object} errors.ErrorResponse
// @Router /logs [get]
func (h *LogHandler) ListAudit(c echo.Context) error {
	entries, err := h.logService.ListAudit(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetAudit godoc
// @Summary Get an admin action
// @Tags logs
// @Produce json
// @Param id path string true "Log ID"
// @Success 200 {object} model.AuditLog
// @Failure 404 {object} errors.ErrorResponse
// @Router /logs/{id} [get]
func (h *LogHandler) GetAudit(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	entry, err := h.logService.GetAudit(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// AddUserLog godoc
// @Summary Record an end-user action
// @Tags logs
// @Accept json
// @Produce json
// @Param request body UserLogRequest true "User log entry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /userLogs [post]
func (h *LogHandler) AddUserLog(c echo.Context) error {
	var req UserLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.logService.AddUserLog(c.Request().Context(), service.UserLogInput{
		UserID:     req.UserID,
		Action:     req.Action,
		IPAddress:  req.IPAddress,
		DeviceType: req.DeviceType,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Log created successfully",
		"data":    entry,
	})
}

// ListUserLogs godoc
// @Summary List end-user actions, newest first
// @Tags logs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /userLogs [get]
func (h *LogHandler) ListUserLogs(c echo.Context) error {
	entries, err := h.logService.ListUserLogs(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logs fetched successfully",
		"data":    entries,
	})
}
