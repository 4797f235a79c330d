package handlers

import (
	"context"
	"net/http"

	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
)

// LifecycleHandler exposes the lifecycle triggers.
type LifecycleHandler struct {
	usecase lifecycleUsecase
	logger  logx.Logger
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(logger logx.Logger, uc lifecycleUsecase) *LifecycleHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LifecycleHandler{usecase: uc, logger: logger}
}

type triggerFunc func(ctx context.Context, id string, actor domain.Actor) (domain.TransitionResult, error)

// Accept handles POST /loads/{id}/accept with an optional {"rate": ...} body.
func (h *LifecycleHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptLoadRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	h.serve(w, r, func(ctx context.Context, id string, actor domain.Actor) (domain.TransitionResult, error) {
		return h.usecase.AcceptLoad(ctx, id, actor, req.Rate)
	})
}

// CancelLoad handles POST /loads/{id}/cancel.
func (h *LifecycleHandler) CancelLoad(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.usecase.CancelLoad)
}

// StartTransit handles POST /assignments/{id}/start.
func (h *LifecycleHandler) StartTransit(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.usecase.StartTransit)
}

// Deliver handles POST /assignments/{id}/deliver.
func (h *LifecycleHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.usecase.Deliver)
}

// CancelAssignment handles POST /assignments/{id}/cancel.
func (h *LifecycleHandler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.usecase.CancelAssignment)
}

func (h *LifecycleHandler) serve(w http.ResponseWriter, r *http.Request, fn triggerFunc) {
	actor, ok := requireActor(h.logger, w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := fn(r.Context(), id, actor)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, transitionToResponse(res))
}
