package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/errors"
	"mapadmin/internal/service"
)

// AdminHandler handles dashboard operator management.
type AdminHandler struct {
	adminService service.AdminService
	uploads      ImageSaver
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, uploads ImageSaver) *AdminHandler {
	return &AdminHandler{adminService: adminService, uploads: uploads}
}

// CreateAdminRequest is sent as JSON or multipart form with an optional avatar file.
type CreateAdminRequest struct {
	FirstName       string  `json:"firstName" form:"firstName" validate:"required"`
	LastName        string  `json:"lastName" form:"lastName" validate:"required"`
	Email           string  `json:"email" form:"email" validate:"required,email"`
	Phone           *string `json:"phone" form:"phone"`
	Password        string  `json:"password" form:"password" validate:"required"`
	ConfirmPassword string  `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

// UpdateAccountRequest lists the account fields an update may change.
type UpdateAccountRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirmPassword"`
}

func (r UpdateAccountRequest) accountUpdate() service.AccountUpdate {
	return service.AccountUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
	}
}

// AvatarResponse reports a stored avatar path.
type AvatarResponse struct {
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
}

// List godoc
// @Summary List admins
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Admin
// @Failure 400 {object} errors.ErrorResponse
// @Router /admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.adminService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, admins)
}

// Get godoc
// @Summary Get an admin
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} model.Admin
// @Failure 404 {object} errors.ErrorResponse
// @Router /admins/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	admin, err := h.adminService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, admin)
}

// Create godoc
// @Summary Create an admin
// @Tags admins
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body CreateAdminRequest true "Admin data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admins [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req CreateAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return respondError(errors.ErrPasswordMismatch)
	}

	avatar, err := saveAvatar(c, h.uploads)
	if err != nil {
		return err
	}

	admin, err := h.adminService.Create(c.Request().Context(), service.CreateAdminInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Avatar:          avatar,
	})
	if err != nil {
		discardUpload(c, h.uploads, avatar)
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    admin,
	})
}

// Update godoc
// @Summary Update an admin
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admins/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.adminService.Update(c.Request().Context(), id, service.UpdateAdminInput{
		AccountUpdate:   req.accountUpdate(),
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Admin updated successfully",
		"user":    admin,
	})
}

// Delete godoc
// @Summary Delete an admin
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admins/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Admin deleted successfully"})
}

// UploadAvatar godoc
// @Summary Upload an admin avatar
// @Description Stores the image and, when userId is given, attaches it to that admin.
// @Tags admins
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Param userId formData string false "Admin ID to attach the avatar to"
// @Success 200 {object} AvatarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admins/upload/avatar [post]
func (h *AdminHandler) UploadAvatar(c echo.Context) error {
	return uploadAvatar(c, h.uploads, h.adminService.SetAvatar)
}

// saveAvatar stores the optional avatar file of a create request.
func saveAvatar(c echo.Context, uploads ImageSaver) (string, error) {
	fh, err := optionalFile(c, "avatar")
	if err != nil || fh == nil {
		return "", err
	}
	path, err := uploads.SaveImage(c.Request().Context(), avatarDir, fh)
	if err != nil {
		return "", respondError(err)
	}
	return path, nil
}

// discardUpload removes a file stored for a request that then failed.
// The request error is what the client sees, so a failed removal is only logged.
func discardUpload(c echo.Context, uploads ImageSaver, path string) {
	if path == "" {
		return
	}
	if err := uploads.RemoveImage(c.Request().Context(), path); err != nil {
		c.Logger().Warnf("remove orphaned upload %s: %v", path, err)
	}
}

// uploadAvatar stores the avatar file and attaches it to the account named by
// the optional userId form field.
func uploadAvatar(c echo.Context, uploads ImageSaver, attach func(ctx context.Context, id uuid.UUID, avatar string) error) error {
	fh, err := optionalFile(c, "avatar")
	if err != nil {
		return err
	}
	if fh == nil {
		return respondError(errors.ErrNoFile)
	}

	var owner uuid.UUID
	if raw := c.FormValue("userId"); raw != "" {
		if owner, err = uuid.Parse(raw); err != nil {
			return badRequest("invalid userId", "INVALID_UUID")
		}
	}

	ctx := c.Request().Context()
	path, err := uploads.SaveImage(ctx, avatarDir, fh)
	if err != nil {
		return respondError(err)
	}
	if owner != uuid.Nil {
		if err := attach(ctx, owner, path); err != nil {
			discardUpload(c, uploads, path)
			return respondError(err)
		}
	}

	return c.JSON(http.StatusOK, AvatarResponse{Message: "Avatar uploaded successfully", Avatar: path})
}
