package domain

// DashboardSummary holds display-only counters for a user.
type DashboardSummary struct {
	UserID        string
	Role          Role
	TotalLoads    int
	LoadsByStatus map[LoadStatus]int
	// AssignmentsByStatus is only filled for transporters.
	AssignmentsByStatus map[AssignmentStatus]int
}
