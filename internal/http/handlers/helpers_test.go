package handlers_test

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cargaviva/internal/domain"
	mw "cargaviva/internal/http/middleware"
)

var (
	generator   = domain.Actor{ID: "gen-1", Role: domain.RoleGenerator}
	transporter = domain.Actor{ID: "trk-1", Role: domain.RoleTransporter}
)

func withActor(r *http.Request, a domain.Actor) *http.Request {
	return r.WithContext(mw.WithActor(r.Context(), a))
}

func withID(r *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}
