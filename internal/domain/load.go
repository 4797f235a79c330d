package domain

import (
	"time"

	"cargaviva/internal/apperr"
)

type (
	// LoadStatus represents the lifecycle state of a load.
	LoadStatus string
	// CargoType represents the category of goods carried by a load.
	CargoType string
)

// Dimensions of a load in centimeters.
type Dimensions struct {
	LengthCM float64
	WidthCM  float64
	HeightCM float64
}

// Load is a shipment a generator wants transported.
type Load struct {
	ID            string
	OwnerID       string
	Origin        string
	Destination   string
	CargoType     CargoType
	WeightKG      float64
	Dimensions    *Dimensions
	RequiredBy    time.Time
	SuggestedRate *float64
	Requirements  string
	PhotoURLs     []string
	Status        LoadStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LoadFields carries the generator-supplied attributes of a new load.
type LoadFields struct {
	Origin        string
	Destination   string
	CargoType     CargoType
	WeightKG      float64
	Dimensions    *Dimensions
	RequiredBy    time.Time
	SuggestedRate *float64
	Requirements  string
	PhotoURLs     []string
}

// LoadUpdate carries optional fields to update a published load.
// A nil field means “do not change” that attribute. The optional
// attributes are removed with their Clear flags.
type LoadUpdate struct {
	Origin        *string
	Destination   *string
	CargoType     *CargoType
	WeightKG      *float64
	Dimensions    *Dimensions
	RequiredBy    *time.Time
	SuggestedRate *float64
	Requirements  *string
	PhotoURLs     *[]string

	ClearDimensions    bool
	ClearSuggestedRate bool
}

// Empty reports whether the update changes nothing.
func (u LoadUpdate) Empty() bool {
	return u.Origin == nil && u.Destination == nil && u.CargoType == nil &&
		u.WeightKG == nil && u.Dimensions == nil && u.RequiredBy == nil &&
		u.SuggestedRate == nil && u.Requirements == nil && u.PhotoURLs == nil &&
		!u.ClearDimensions && !u.ClearSuggestedRate
}

// Check rejects updates that both set and clear the same attribute.
func (u LoadUpdate) Check() error {
	if u.ClearDimensions && u.Dimensions != nil {
		return apperr.Validation("dimensions", "cannot be set and cleared together")
	}
	if u.ClearSuggestedRate && u.SuggestedRate != nil {
		return apperr.Validation("suggested_rate", "cannot be set and cleared together")
	}
	return nil
}

// Apply returns a copy of l with the update applied.
func (u LoadUpdate) Apply(l Load) Load {
	if u.Origin != nil {
		l.Origin = *u.Origin
	}
	if u.Destination != nil {
		l.Destination = *u.Destination
	}
	if u.CargoType != nil {
		l.CargoType = *u.CargoType
	}
	if u.WeightKG != nil {
		l.WeightKG = *u.WeightKG
	}
	if u.Dimensions != nil {
		d := *u.Dimensions
		l.Dimensions = &d
	}
	if u.ClearDimensions {
		l.Dimensions = nil
	}
	if u.RequiredBy != nil {
		l.RequiredBy = *u.RequiredBy
	}
	if u.SuggestedRate != nil {
		r := *u.SuggestedRate
		l.SuggestedRate = &r
	}
	if u.ClearSuggestedRate {
		l.SuggestedRate = nil
	}
	if u.Requirements != nil {
		l.Requirements = *u.Requirements
	}
	if u.PhotoURLs != nil {
		l.PhotoURLs = append([]string(nil), (*u.PhotoURLs)...)
	}
	return l
}

// Fields extracts the editable attributes of l.
func (l Load) Fields() LoadFields {
	return LoadFields{
		Origin:        l.Origin,
		Destination:   l.Destination,
		CargoType:     l.CargoType,
		WeightKG:      l.WeightKG,
		Dimensions:    l.Dimensions,
		RequiredBy:    l.RequiredBy,
		SuggestedRate: l.SuggestedRate,
		Requirements:  l.Requirements,
		PhotoURLs:     l.PhotoURLs,
	}
}
