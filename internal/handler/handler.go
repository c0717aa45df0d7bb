// Package handler exposes the services over HTTP. Every failure leaves a
// handler as an *echo.HTTPError carrying errors.ErrorResponse.
package handler

import (
	"context"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapadmin/internal/auth"
	"mapadmin/internal/errors"
)

// ImageSaver stores an uploaded image and returns its public path.
type ImageSaver interface {
	SaveImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	RemoveImage(ctx context.Context, publicPath string) error
}

// Upload directories under the storage root.
const (
	avatarDir = "avatars"
	iconDir   = "icon"
)

// MessageResponse is the body of operations that only report success.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError converts a service error into the JSON error envelope.
func respondError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: message, Code: code})
}

// bindAndValidate decodes the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

// uuidParam parses the named path parameter as a UUID.
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, badRequest("invalid "+name, "INVALID_UUID")
	}
	return id, nil
}

// uintParam parses the named path parameter as a numeric row id.
func uintParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

// optionalFile returns the uploaded file of field, or nil when none was sent.
func optionalFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err == nil {
		return fh, nil
	}
	if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return nil, badRequest("invalid multipart body", "INVALID_REQUEST")
}

// callerID returns the account id of the verified token.
func callerID(c echo.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, respondError(errors.ErrMissingToken)
	}
	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, respondError(errors.ErrInvalidToken)
	}
	return id, nil
}
