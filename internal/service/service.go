// Package service holds the business operations behind each HTTP resource.
// Services translate repository failures into the sentinels of internal/errors:
// missing rows become the resource's not-found error, every other datastore
// failure is wrapped as a StoreError so its message reaches the client.
package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "mapadmin/internal/errors"
)

// Cache keys of the read-mostly resources.
const (
	settingsCacheKey  = "settings"
	contactCacheKey   = "contact_info"
	privacyCacheKey   = "privacy_policy"
	faqCacheKey       = "faq"
	timezonesCacheKey = "timezones"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// storeError logs a datastore failure and wraps it for the client.
func storeError(log zerolog.Logger, op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("datastore failure")
	return apperrors.Store(op, err)
}

// lookupError maps a missing row to notFound and anything else to a StoreError.
func lookupError(log zerolog.Logger, op string, err error, notFound error) error {
	if isNotFound(err) {
		return notFound
	}
	return storeError(log, op, err)
}

func setString(dst *string, src *string) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// setText applies src unless it is missing or blank.
func setText(dst *string, src *string) bool {
	if src == nil || strings.TrimSpace(*src) == "" {
		return false
	}
	*dst = *src
	return true
}

func setBool(dst *bool, src *bool) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// optionalPhone turns an empty phone into NULL so the unique index ignores it.
func optionalPhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	p := strings.TrimSpace(*phone)
	if p == "" {
		return nil
	}
	return &p
}
