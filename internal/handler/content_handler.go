package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/service"
)

// SettingRequest carries the site settings columns; omitted fields are left unchanged.
type SettingRequest struct {
	SiteName          *string `json:"site_name"`
	SiteURL           *string `json:"site_url" validate:"omitempty,url"`
	SiteDescription   *string `json:"site_description"`
	SiteIcon          *string `json:"site_icon"`
	AdminEmail        *string `json:"admin_email" validate:"omitempty,email"`
	Timezone          *string `json:"timezone"`
	Language          *string `json:"language"`
	DateFormat        *string `json:"date_format"`
	MaintenanceMode   *bool   `json:"maintenance_mode"`
	AllowRegistration *bool   `json:"allow_registration"`
}

func (r SettingRequest) input() service.SettingInput {
	return service.SettingInput{
		SiteName:          r.SiteName,
		SiteURL:           r.SiteURL,
		SiteDescription:   r.SiteDescription,
		SiteIcon:          r.SiteIcon,
		AdminEmail:        r.AdminEmail,
		Timezone:          r.Timezone,
		Language:          r.Language,
		DateFormat:        r.DateFormat,
		MaintenanceMode:   r.MaintenanceMode,
		AllowRegistration: r.AllowRegistration,
	}
}

// SettingHandler handles the site settings row.
type SettingHandler struct {
	settingService service.SettingService
	uploads        ImageSaver
}

// NewSettingHandler creates a new settings handler.
func NewSettingHandler(settingService service.SettingService, uploads ImageSaver) *SettingHandler {
	return &SettingHandler{settingService: settingService, uploads: uploads}
}

// Get godoc
// @Summary Get site settings
// @Tags settings
// @Produce json
// @Success 200 {object} model.Setting
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingHandler) Get(c echo.Context) error {
	settings, err := h.settingService.Get(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Create godoc
// @Summary Create the site settings row
// @Tags settings
// @Accept json
// @Produce json
// @Param request body SettingRequest true "Settings"
// @Success 201 {object} model.Setting
// @Failure 400 {object} errors.ErrorResponse
// @Router /settings [post]
func (h *SettingHandler) Create(c echo.Context) error {
	var req SettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := h.settingService.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, settings)
}

// Update godoc
// @Summary Update site settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body SettingRequest true "Fields to change"
// @Success 200 {object} model.Setting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *SettingHandler) Update(c echo.Context) error {
	var req SettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := h.settingService.Update(c.Request().Context(), req.input())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UploadIcon godoc
// @Summary Upload the site icon
// @Tags settings
// @Accept mpfd
// @Produce json
// @Param site_icon formData file true "Icon image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings/upload/icon [post]
func (h *SettingHandler) UploadIcon(c echo.Context) error {
	fh, err := optionalFile(c, "site_icon")
	if err != nil {
		return err
	}
	if fh == nil {
		return respondError(errors.ErrNoFile)
	}

	ctx := c.Request().Context()
	path, err := h.uploads.SaveImage(ctx, iconDir, fh)
	if err != nil {
		return respondError(err)
	}
	if err := h.settingService.SetIcon(ctx, path); err != nil {
		discardUpload(c, h.uploads, path)
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Icon uploaded successfully",
		"site_icon": path,
	})
}

// ContactRequest carries the contact page columns; omitted fields are left unchanged.
type ContactRequest struct {
	Heading           *string              `json:"heading"`
	Subheading        *string              `json:"subheading"`
	FormHeading       *string              `json:"form_heading"`
	FormSubheading    *string              `json:"form_subheading"`
	ContactHeading    *string              `json:"contact_heading"`
	ContactSubheading *string              `json:"contact_subheading"`
	Emails            []string             `json:"emails" validate:"omitempty,dive,email"`
	Phones            []string             `json:"phones"`
	Address           *model.Address       `json:"address"`
	BusinessHours     *model.BusinessHours `json:"business_hours"`
}

// ContactHandler handles the contact page content.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Get godoc
// @Summary Get contact page content
// @Tags contact
// @Produce json
// @Success 200 {object} model.ContactInfo
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact [get]
func (h *ContactHandler) Get(c echo.Context) error {
	info, err := h.contactService.Get(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// Save godoc
// @Summary Update contact page content, creating it when absent
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Fields to change"
// @Success 200 {object} model.ContactInfo
// @Success 201 {object} model.ContactInfo
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [put]
func (h *ContactHandler) Save(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	info, created, err := h.contactService.Save(c.Request().Context(), service.ContactInput{
		Heading:           req.Heading,
		Subheading:        req.Subheading,
		FormHeading:       req.FormHeading,
		FormSubheading:    req.FormSubheading,
		ContactHeading:    req.ContactHeading,
		ContactSubheading: req.ContactSubheading,
		Emails:            req.Emails,
		Phones:            req.Phones,
		Address:           req.Address,
		BusinessHours:     req.BusinessHours,
	})
	if err != nil {
		return respondError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, info)
}

// CreateDefault godoc
// @Summary Create the default contact page content
// @Tags contact
// @Produce json
// @Success 201 {object} model.ContactInfo
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) CreateDefault(c echo.Context) error {
	info, err := h.contactService.CreateDefault(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, info)
}

// PrivacyRequest represents a privacy policy save request.
type PrivacyRequest struct {
	Content     string `json:"content" validate:"required"`
	LastUpdated string `json:"lastUpdated"`
}

// PrivacyHandler handles the privacy policy content.
type PrivacyHandler struct {
	privacyService service.PrivacyService
}

// NewPrivacyHandler creates a new privacy handler.
func NewPrivacyHandler(privacyService service.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{privacyService: privacyService}
}

// Get godoc
// @Summary Get the privacy policy
// @Tags privacy
// @Produce json
// @Success 200 {object} model.PrivacyPolicy
// @Failure 404 {object} errors.ErrorResponse
// @Router /privacy [get]
func (h *PrivacyHandler) Get(c echo.Context) error {
	policy, err := h.privacyService.Get(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, policy)
}

// Save godoc
// @Summary Update the privacy policy, creating it when absent
// @Tags privacy
// @Accept json
// @Produce json
// @Param request body PrivacyRequest true "Policy content"
// @Success 200 {object} model.PrivacyPolicy
// @Success 201 {object} model.PrivacyPolicy
// @Failure 400 {object} errors.ErrorResponse
// @Router /privacy [put]
func (h *PrivacyHandler) Save(c echo.Context) error {
	var req PrivacyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	policy, created, err := h.privacyService.Save(c.Request().Context(), req.Content, req.LastUpdated)
	if err != nil {
		return respondError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, policy)
}

// Delete godoc
// @Summary Delete the privacy policy
// @Tags privacy
// @Produce json
// @Param id path int true "Policy ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /privacy/{id} [delete]
func (h *PrivacyHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.privacyService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Privacy policy deleted successfully"})
}
