package domain

import (
	"net/url"
	"strings"
	"time"

	"cargaviva/internal/apperr"
)

// MaxPhotos caps the number of photo URLs attached to a load.
const MaxPhotos = 10

// NormalizeFields trims free-text fields in place.
func NormalizeFields(f *LoadFields) {
	f.Origin = strings.TrimSpace(f.Origin)
	f.Destination = strings.TrimSpace(f.Destination)
	f.CargoType = CargoType(strings.ToLower(strings.TrimSpace(string(f.CargoType))))
	f.Requirements = strings.TrimSpace(f.Requirements)
}

// ValidateLoadFields checks the attributes of a load; required_by must be after now.
func ValidateLoadFields(f LoadFields, now time.Time) error {
	if f.Origin == "" {
		return apperr.Validation("origin", "is required")
	}
	if f.Destination == "" {
		return apperr.Validation("destination", "is required")
	}
	if !f.CargoType.Valid() {
		return apperr.Validation("cargo_type", "is not supported")
	}
	if !(f.WeightKG > 0) {
		return apperr.Validation("weight_kg", "must be positive")
	}
	if d := f.Dimensions; d != nil {
		if !(d.LengthCM > 0 && d.WidthCM > 0 && d.HeightCM > 0) {
			return apperr.Validation("dimensions", "must all be positive")
		}
	}
	if f.RequiredBy.IsZero() || !f.RequiredBy.After(now) {
		return apperr.Validation("required_by", "must be in the future")
	}
	if f.SuggestedRate != nil && !(*f.SuggestedRate > 0) {
		return apperr.Validation("suggested_rate", "must be positive")
	}
	if len(f.PhotoURLs) > MaxPhotos {
		return apperr.Validation("photo_urls", "has too many entries")
	}
	for _, raw := range f.PhotoURLs {
		if !validPhotoURL(raw) {
			return apperr.Validation("photo_urls", "must be absolute http(s) URLs")
		}
	}
	return nil
}

// ValidateRate checks an optional agreed rate.
func ValidateRate(rate *float64) error {
	if rate != nil && !(*rate > 0) {
		return apperr.Validation("rate", "must be positive")
	}
	return nil
}

func validPhotoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
