package handlers

import (
	"net/http"

	"cargaviva/internal/logx"
	"cargaviva/internal/service/views"
)

// ViewHandler serves the read-only views.
type ViewHandler struct {
	usecase viewUsecase
	logger  logx.Logger
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(logger logx.Logger, uc viewUsecase) *ViewHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ViewHandler{usecase: uc, logger: logger}
}

// Available handles GET /loads/available?filter=all|urgent|nearby.
func (h *ViewHandler) Available(w http.ResponseWriter, r *http.Request) {
	filter, err := views.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	list, err := h.usecase.AvailableForTransporter(r.Context(), filter)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loadsToResponse(list))
}

// MyLoads handles GET /loads/mine.
func (h *ViewHandler) MyLoads(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.usecase.MyLoads(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loadsToResponse(list))
}

// MyAssignments handles GET /assignments/mine.
func (h *ViewHandler) MyAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	list, err := h.usecase.MyAssignments(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// Dashboard handles GET /dashboard.
func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	sum, err := h.usecase.DashboardSummary(r.Context(), actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, summaryToResponse(sum))
}

// History handles GET /loads/{id}/history.
func (h *ViewHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	events, err := h.usecase.History(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, eventsToResponse(events))
}
