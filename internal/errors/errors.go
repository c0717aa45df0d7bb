package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAdminNotFound is returned when an admin is not found.
	ErrAdminNotFound = errors.New("user not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlanNotFound is returned when a plan is not found.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrDefaultPlanMissing is returned when the default subscription plan does not exist.
	ErrDefaultPlanMissing     = errors.New("failed to assign the default subscription plan")
	ErrSettingsNotFound       = errors.New("settings not found")
	ErrContactNotFound        = errors.New("no contact data found")
	ErrPrivacyNotFound        = errors.New("no privacy policy data found")
	ErrFAQNotFound            = errors.New("no FAQ categories found")
	ErrLogNotFound            = errors.New("log not found")
	ErrMapPinNotFound         = errors.New("map pin not found")
	ErrMapControlNotFound     = errors.New("map controls not found for this user")
	ErrTimezoneConfigNotFound = errors.New("configuration not found")
	ErrPaymentNotFound        = errors.New("payment not found")

	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token fails verification or has expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingToken is returned when a protected route is called without a token.
	ErrMissingToken = errors.New("no token provided")
	// ErrForbidden is returned when the caller's role may not use a route.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrEmailTaken is returned when the email belongs to another account.
	ErrEmailTaken = errors.New("a user with this email already exists, please use a different email")
	// ErrPhoneTaken is returned when the phone number belongs to another account.
	ErrPhoneTaken = errors.New("a user with this phone number already exists, please use a different phone number")
	// ErrAccountExists is returned when the datastore rejects a new account as a duplicate.
	ErrAccountExists = errors.New("an account with this email or phone number already exists")
	// ErrTimezoneConfigExists is returned when a user already has a timezone configuration.
	ErrTimezoneConfigExists = errors.New("a timezone configuration already exists for this user")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrNoFieldsToUpdate is returned when a partial update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no valid fields provided for update")
	// ErrNoFile is returned when a multipart upload carries no file.
	ErrNoFile = errors.New("no file uploaded")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationError reports invalid client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a datastore failure whose message is safe to show to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError; nil stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// UpstreamError reports a failed call to a third-party API.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

type mapping struct {
	err    error
	status int
	code   string
}

var mappings = []mapping{
	{ErrAdminNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrPlanNotFound, http.StatusNotFound, "PLAN_NOT_FOUND"},
	{ErrSettingsNotFound, http.StatusNotFound, "SETTINGS_NOT_FOUND"},
	{ErrContactNotFound, http.StatusNotFound, "CONTACT_NOT_FOUND"},
	{ErrPrivacyNotFound, http.StatusNotFound, "PRIVACY_NOT_FOUND"},
	{ErrFAQNotFound, http.StatusNotFound, "FAQ_NOT_FOUND"},
	{ErrLogNotFound, http.StatusNotFound, "LOG_NOT_FOUND"},
	{ErrMapPinNotFound, http.StatusNotFound, "MAP_PIN_NOT_FOUND"},
	{ErrMapControlNotFound, http.StatusNotFound, "MAP_CONTROLS_NOT_FOUND"},
	{ErrTimezoneConfigNotFound, http.StatusNotFound, "CONFIGURATION_NOT_FOUND"},
	{ErrPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND"},
	{ErrDefaultPlanMissing, http.StatusBadRequest, "DEFAULT_PLAN_MISSING"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrMissingToken, http.StatusForbidden, "MISSING_TOKEN"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{ErrPhoneTaken, http.StatusConflict, "PHONE_TAKEN"},
	{ErrAccountExists, http.StatusConflict, "ACCOUNT_EXISTS"},
	{ErrTimezoneConfigExists, http.StatusConflict, "CONFIGURATION_EXISTS"},
	{ErrPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH"},
	{ErrNoFieldsToUpdate, http.StatusBadRequest, "NO_FIELDS"},
	{ErrNoFile, http.StatusBadRequest, "NO_FILE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	if err == nil {
		return nil
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return NewHTTPError(http.StatusBadRequest, storeErr.Error(), "DATASTORE_ERROR")
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		return NewHTTPError(status, upstreamErr.Message, "UPSTREAM_ERROR")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
