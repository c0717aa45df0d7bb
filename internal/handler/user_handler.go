package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/service"
)

// UserHandler handles end-user account endpoints.
type UserHandler struct {
	userService service.UserService
	uploads     ImageSaver
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, uploads ImageSaver) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

// CreateUserRequest is sent as JSON or multipart form with an optional avatar file.
type CreateUserRequest struct {
	FirstName             string  `json:"firstName" form:"firstName" validate:"required"`
	LastName              string  `json:"lastName" form:"lastName" validate:"required"`
	Email                 string  `json:"email" form:"email" validate:"required,email"`
	Phone                 *string `json:"phone" form:"phone"`
	Password              string  `json:"password" form:"password" validate:"required"`
	ConfirmPassword       string  `json:"confirmPassword" form:"confirmPassword" validate:"required"`
	Location              string  `json:"location" form:"location"`
	Status                string  `json:"status" form:"status"`
	Type                  string  `json:"type" form:"type"`
	SendInvite            bool    `json:"sendInvite" form:"sendInvite"`
	RequirePasswordChange bool    `json:"requirePasswordChange" form:"requirePasswordChange"`
}

// UpdateUserRequest lists the user fields an update may change.
type UpdateUserRequest struct {
	UpdateAccountRequest
	Location              *string `json:"location"`
	Status                *string `json:"status"`
	Type                  *string `json:"type"`
	SendInvite            *bool   `json:"sendInvite"`
	RequirePasswordChange *bool   `json:"requirePasswordChange"`
	SubscriptionPlanName  *string `json:"subscriptionPlanName"`
}

// UserLoginResponse represents an end-user login response.
type UserLoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    ProfileResponse `json:"user"`
}

func userProfile(u *model.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Role:      u.Role,
	}
}

// List godoc
// @Summary List users with their subscription plan
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create a user on the default plan
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
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

	user, err := h.userService.Create(c.Request().Context(), service.CreateUserInput{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Password:              req.Password,
		ConfirmPassword:       req.ConfirmPassword,
		Avatar:                avatar,
		Location:              req.Location,
		Status:                req.Status,
		Type:                  req.Type,
		SendInvite:            req.SendInvite,
		RequirePasswordChange: req.RequirePasswordChange,
	})
	if err != nil {
		discardUpload(c, h.uploads, avatar)
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully with default subscription plan.",
		"user":    user,
	})
}

// Update godoc
// @Summary Update a user
// @Description Only supplied fields change. subscriptionPlanName switches the user's plan.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), id, service.UpdateUserInput{
		AccountUpdate:         req.accountUpdate(),
		Location:              req.Location,
		Status:                req.Status,
		Type:                  req.Type,
		SendInvite:            req.SendInvite,
		RequirePasswordChange: req.RequirePasswordChange,
		SubscriptionPlanName:  req.SubscriptionPlanName,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// UploadAvatar godoc
// @Summary Upload a user avatar
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Param userId formData string false "User ID to attach the avatar to"
// @Success 200 {object} AvatarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/upload/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	return uploadAvatar(c, h.uploads, h.userService.SetAvatar)
}

// Login godoc
// @Summary Log in an end user
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserLoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, UserLoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    userProfile(result.User),
	})
}
