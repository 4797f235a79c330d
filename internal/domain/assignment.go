package domain

import "time"

// AssignmentStatus represents the state of an assignment.
type AssignmentStatus string

// Assignment binds a load to the transporter who accepted it.
type Assignment struct {
	ID            string
	LoadID        string
	TransporterID string
	Rate          *float64
	Status        AssignmentStatus
	AcceptedAt    *time.Time
	UpdatedAt     time.Time
}

// Active reports whether the assignment still holds its load.
func (a Assignment) Active() bool {
	return a.Status != AssignmentCancelled
}
