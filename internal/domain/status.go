package domain

// List of possible load statuses
const (
	LoadPublished LoadStatus = "published"
	LoadAssigned  LoadStatus = "assigned"
	LoadInTransit LoadStatus = "in_transit"
	LoadDelivered LoadStatus = "delivered"
	LoadCancelled LoadStatus = "cancelled"
)

// List of possible assignment statuses
const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentAccepted   AssignmentStatus = "accepted"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

// List of supported cargo types
const (
	CargoGeneral      CargoType = "general"
	CargoRefrigerated CargoType = "refrigerated"
	CargoHazardous    CargoType = "hazardous"
	CargoLiquid       CargoType = "liquid"
	CargoDry          CargoType = "dry"
	CargoOther        CargoType = "other"
)

var allowedLoadStatuses = [...]LoadStatus{
	LoadPublished, LoadAssigned, LoadInTransit, LoadDelivered, LoadCancelled,
}

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentPending, AssignmentAccepted, AssignmentInProgress, AssignmentCompleted, AssignmentCancelled,
}

var allowedCargoTypes = [...]CargoType{
	CargoGeneral, CargoRefrigerated, CargoHazardous, CargoLiquid, CargoDry, CargoOther,
}

// loadEdges lists every load transition the coordinator may perform.
var loadEdges = map[LoadStatus][]LoadStatus{
	LoadPublished: {LoadAssigned, LoadCancelled},
	LoadAssigned:  {LoadInTransit, LoadCancelled, LoadPublished},
	LoadInTransit: {LoadDelivered, LoadPublished},
}

// Valid checks if the LoadStatus is valid
func (s LoadStatus) Valid() bool {
	for _, v := range allowedLoadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s LoadStatus) Terminal() bool {
	return s == LoadDelivered || s == LoadCancelled
}

// Cancellable reports whether the owner may still cancel a load in status s.
func (s LoadStatus) Cancellable() bool {
	return s == LoadPublished || s == LoadAssigned
}

// CanTransitionTo reports whether s -> next is an edge of the load lifecycle.
func (s LoadStatus) CanTransitionTo(next LoadStatus) bool {
	for _, v := range loadEdges[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Valid checks if the AssignmentStatus is valid
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the CargoType is valid
func (c CargoType) Valid() bool {
	for _, v := range allowedCargoTypes {
		if c == v {
			return true
		}
	}
	return false
}
