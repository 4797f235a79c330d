package handlers

import "time"

type dimensionsDTO struct {
	LengthCM float64 `json:"length_cm"`
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
}

type loadDTO struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"owner_id"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	CargoType     string         `json:"cargo_type"`
	WeightKG      float64        `json:"weight_kg"`
	Dimensions    *dimensionsDTO `json:"dimensions,omitempty"`
	RequiredBy    time.Time      `json:"required_by"`
	SuggestedRate *float64       `json:"suggested_rate,omitempty"`
	Requirements  string         `json:"requirements,omitempty"`
	PhotoURLs     []string       `json:"photo_urls"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type createLoadRequest struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	CargoType     string         `json:"cargo_type"`
	WeightKG      float64        `json:"weight_kg"`
	Dimensions    *dimensionsDTO `json:"dimensions,omitempty"`
	RequiredBy    time.Time      `json:"required_by"`
	SuggestedRate *float64       `json:"suggested_rate,omitempty"`
	Requirements  string         `json:"requirements,omitempty"`
	PhotoURLs     []string       `json:"photo_urls,omitempty"`
}

type updateLoadRequest struct {
	Origin        *string        `json:"origin,omitempty"`
	Destination   *string        `json:"destination,omitempty"`
	CargoType     *string        `json:"cargo_type,omitempty"`
	WeightKG      *float64       `json:"weight_kg,omitempty"`
	Dimensions    *dimensionsDTO `json:"dimensions,omitempty"`
	RequiredBy    *time.Time     `json:"required_by,omitempty"`
	SuggestedRate *float64       `json:"suggested_rate,omitempty"`
	Requirements  *string        `json:"requirements,omitempty"`
	PhotoURLs     *[]string      `json:"photo_urls,omitempty"`

	ClearDimensions    bool `json:"clear_dimensions,omitempty"`
	ClearSuggestedRate bool `json:"clear_suggested_rate,omitempty"`
}

type acceptLoadRequest struct {
	Rate *float64 `json:"rate,omitempty"`
}

type assignmentDTO struct {
	ID            string     `json:"id"`
	LoadID        string     `json:"load_id"`
	TransporterID string     `json:"transporter_id"`
	Rate          *float64   `json:"rate,omitempty"`
	Status        string     `json:"status"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type eventDTO struct {
	ID           string    `json:"id"`
	LoadID       string    `json:"load_id"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	Trigger      string    `json:"trigger"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	ActorID      string    `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type transitionResponse struct {
	Load       loadDTO        `json:"load"`
	Assignment *assignmentDTO `json:"assignment,omitempty"`
	Event      eventDTO       `json:"event"`
}

type dashboardDTO struct {
	UserID              string         `json:"user_id"`
	Role                string         `json:"role"`
	TotalLoads          int            `json:"total_loads"`
	LoadsByStatus       map[string]int `json:"loads_by_status"`
	AssignmentsByStatus map[string]int `json:"assignments_by_status,omitempty"`
}
