package handlers

import (
	"net/http"

	"cargaviva/internal/logx"
)

// LoadHandler serves load registry endpoints.
type LoadHandler struct {
	usecase loadUsecase
	logger  logx.Logger
}

// NewLoadHandler creates a new LoadHandler.
func NewLoadHandler(logger logx.Logger, uc loadUsecase) *LoadHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LoadHandler{usecase: uc, logger: logger}
}

// Create handles POST /loads.
func (h *LoadHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	var req createLoadRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	l, err := h.usecase.Create(r.Context(), actor, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/loads/"+l.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, loadToResponse(*l))
}

// Get handles GET /loads/{id}.
func (h *LoadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	l, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loadToResponse(*l))
}

// Update handles PATCH /loads/{id}. Only fields present in the body change.
func (h *LoadHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateLoadRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	l, err := h.usecase.UpdateFields(r.Context(), id, actor, req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loadToResponse(*l))
}

// Delete handles DELETE /loads/{id}.
func (h *LoadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.usecase.Delete(r.Context(), id, actor); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
