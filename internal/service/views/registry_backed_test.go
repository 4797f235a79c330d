package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/repository/memstore"
	"cargaviva/internal/service/assignment"
	"cargaviva/internal/service/history"
	"cargaviva/internal/service/lifecycle"
	"cargaviva/internal/service/load"
	"cargaviva/internal/service/views"
)

func newStoreBackedViews(st *memstore.Store) (*views.Service, *load.Registry, *lifecycle.Coordinator) {
	registry := load.NewRegistry(st.Loads(), time.Second, nil)
	ledger := assignment.NewLedger(st.Assignments(), time.Second)
	rec := history.NewRecorder(st.Events(), time.Second, nil)
	coord := lifecycle.NewCoordinator(st.Lifecycle(), rec, nil, time.Second, nil)
	return views.NewService(registry, ledger, rec, 24*time.Hour, time.Second), registry, coord
}

func TestViews_OverRegistryAndLedger(t *testing.T) {
	t.Parallel()

	st := memstore.New()
	svc, registry, coord := newStoreBackedViews(st)
	ctx := context.Background()

	created, err := registry.Create(ctx, generator, domain.LoadFields{
		Origin:      "Bogotá",
		Destination: "Medellín",
		CargoType:   domain.CargoGeneral,
		WeightKG:    500,
		RequiredBy:  time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	available, err := svc.AvailableForTransporter(ctx, views.FilterAll)
	require.NoError(t, err)
	require.Len(t, available, 1)

	_, err = coord.AcceptLoad(ctx, created.ID, transporter, nil)
	require.NoError(t, err)

	mine, err := svc.MyAssignments(ctx, transporter)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	summary, err := svc.DashboardSummary(ctx, transporter)
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalLoads)
	require.Equal(t, 1, summary.LoadsByStatus[domain.LoadAssigned])

	events, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	_, err = svc.History(ctx, "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestViews_BlankActorIsRejectedByRegistryAndLedger(t *testing.T) {
	t.Parallel()

	svc, _, _ := newStoreBackedViews(memstore.New())
	ctx := context.Background()

	_, err := svc.MyLoads(ctx, domain.Actor{ID: "  ", Role: domain.RoleGenerator})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.MyAssignments(ctx, domain.Actor{ID: "  ", Role: domain.RoleTransporter})
	require.ErrorIs(t, err, apperr.ErrValidation)
}
