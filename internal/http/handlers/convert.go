package handlers

import "cargaviva/internal/domain"

func (d *dimensionsDTO) toModel() *domain.Dimensions {
	if d == nil {
		return nil
	}
	return &domain.Dimensions{LengthCM: d.LengthCM, WidthCM: d.WidthCM, HeightCM: d.HeightCM}
}

func (r createLoadRequest) toModel() domain.LoadFields {
	return domain.LoadFields{
		Origin:        r.Origin,
		Destination:   r.Destination,
		CargoType:     domain.CargoType(r.CargoType),
		WeightKG:      r.WeightKG,
		Dimensions:    r.Dimensions.toModel(),
		RequiredBy:    r.RequiredBy,
		SuggestedRate: r.SuggestedRate,
		Requirements:  r.Requirements,
		PhotoURLs:     r.PhotoURLs,
	}
}

func (r updateLoadRequest) toModel() domain.LoadUpdate {
	u := domain.LoadUpdate{
		Origin:        r.Origin,
		Destination:   r.Destination,
		WeightKG:      r.WeightKG,
		Dimensions:    r.Dimensions.toModel(),
		RequiredBy:    r.RequiredBy,
		SuggestedRate: r.SuggestedRate,
		Requirements:  r.Requirements,
		PhotoURLs:     r.PhotoURLs,

		ClearDimensions:    r.ClearDimensions,
		ClearSuggestedRate: r.ClearSuggestedRate,
	}
	if r.CargoType != nil {
		ct := domain.CargoType(*r.CargoType)
		u.CargoType = &ct
	}
	return u
}

func loadToResponse(l domain.Load) loadDTO {
	out := loadDTO{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		Origin:        l.Origin,
		Destination:   l.Destination,
		CargoType:     string(l.CargoType),
		WeightKG:      l.WeightKG,
		RequiredBy:    l.RequiredBy,
		SuggestedRate: l.SuggestedRate,
		Requirements:  l.Requirements,
		PhotoURLs:     l.PhotoURLs,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if out.PhotoURLs == nil {
		out.PhotoURLs = []string{}
	}
	if d := l.Dimensions; d != nil {
		out.Dimensions = &dimensionsDTO{LengthCM: d.LengthCM, WidthCM: d.WidthCM, HeightCM: d.HeightCM}
	}
	return out
}

func loadsToResponse(list []domain.Load) []loadDTO {
	out := make([]loadDTO, 0, len(list))
	for _, l := range list {
		out = append(out, loadToResponse(l))
	}
	return out
}

func assignmentToResponse(a domain.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:            a.ID,
		LoadID:        a.LoadID,
		TransporterID: a.TransporterID,
		Rate:          a.Rate,
		Status:        string(a.Status),
		AcceptedAt:    a.AcceptedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func assignmentsToResponse(list []domain.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentToResponse(a))
	}
	return out
}

func eventToResponse(e domain.LifecycleEvent) eventDTO {
	return eventDTO{
		ID:           e.ID,
		LoadID:       e.LoadID,
		AssignmentID: e.AssignmentID,
		Trigger:      e.Trigger,
		OldStatus:    string(e.OldStatus),
		NewStatus:    string(e.NewStatus),
		ActorID:      e.ActorID,
		OccurredAt:   e.OccurredAt,
	}
}

func eventsToResponse(list []domain.LifecycleEvent) []eventDTO {
	out := make([]eventDTO, 0, len(list))
	for _, e := range list {
		out = append(out, eventToResponse(e))
	}
	return out
}

func transitionToResponse(res domain.TransitionResult) transitionResponse {
	out := transitionResponse{
		Load:  loadToResponse(res.Load),
		Event: eventToResponse(res.Event),
	}
	if res.Assignment != nil {
		a := assignmentToResponse(*res.Assignment)
		out.Assignment = &a
	}
	return out
}

func summaryToResponse(s domain.DashboardSummary) dashboardDTO {
	out := dashboardDTO{
		UserID:        s.UserID,
		Role:          string(s.Role),
		TotalLoads:    s.TotalLoads,
		LoadsByStatus: make(map[string]int, len(s.LoadsByStatus)),
	}
	for k, v := range s.LoadsByStatus {
		out.LoadsByStatus[string(k)] = v
	}
	if s.AssignmentsByStatus != nil {
		out.AssignmentsByStatus = make(map[string]int, len(s.AssignmentsByStatus))
		for k, v := range s.AssignmentsByStatus {
			out.AssignmentsByStatus[string(k)] = v
		}
	}
	return out
}
