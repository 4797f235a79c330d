package views_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/service/views"
)

var (
	generator   = domain.Actor{ID: "gen-1", Role: domain.RoleGenerator}
	transporter = domain.Actor{ID: "trk-1", Role: domain.RoleTransporter}
)

type deps struct {
	loads       *MockLoadReader
	assignments *MockAssignmentReader
	history     *MockHistoryReader
	svc         *views.Service
}

func newDeps(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	d := deps{
		loads:       NewMockLoadReader(ctrl),
		assignments: NewMockAssignmentReader(ctrl),
		history:     NewMockHistoryReader(ctrl),
	}
	d.svc = views.NewService(d.loads, d.assignments, d.history, 24*time.Hour, time.Second)
	return d
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    views.Filter
		wantErr bool
	}{
		{"", views.FilterAll, false},
		{"all", views.FilterAll, false},
		{" URGENT ", views.FilterUrgent, false},
		{"nearby", views.FilterNearby, false},
		{"cheapest", "", true},
	}
	for _, tt := range tests {
		got, err := views.ParseFilter(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, apperr.ErrValidation)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestAvailableForTransporter(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	published := []domain.Load{{ID: "load-1", Status: domain.LoadPublished}}

	d.loads.EXPECT().ListByStatus(gomock.Any(), domain.LoadPublished, gomock.Nil()).Return(published, nil).Times(2)
	got, err := d.svc.AvailableForTransporter(context.Background(), views.FilterAll)
	require.NoError(t, err)
	require.Equal(t, published, got)
	got, err = d.svc.AvailableForTransporter(context.Background(), views.FilterNearby)
	require.NoError(t, err)
	require.Equal(t, published, got)

	lower := time.Now().UTC().Add(24 * time.Hour)
	d.loads.EXPECT().ListByStatus(gomock.Any(), domain.LoadPublished, gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, _ domain.LoadStatus, before *time.Time) ([]domain.Load, error) {
			require.False(t, before.Before(lower))
			require.True(t, before.Before(lower.Add(time.Minute)))
			return nil, nil
		})
	got, err = d.svc.AvailableForTransporter(context.Background(), views.FilterUrgent)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = d.svc.AvailableForTransporter(context.Background(), views.Filter("far"))
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestMyLoadsAndAssignments_RoleChecks(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.loads.EXPECT().ListByOwner(gomock.Any(), generator.ID).Return([]domain.Load{{ID: "load-1"}}, nil)
	d.assignments.EXPECT().ListByTransporter(gomock.Any(), transporter.ID).Return([]domain.Assignment{{ID: "a-1"}}, nil)

	loads, err := d.svc.MyLoads(context.Background(), generator)
	require.NoError(t, err)
	require.Len(t, loads, 1)

	list, err := d.svc.MyAssignments(context.Background(), transporter)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = d.svc.MyLoads(context.Background(), transporter)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = d.svc.MyAssignments(context.Background(), generator)
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestDashboardSummary_Generator(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.loads.EXPECT().ListByOwner(gomock.Any(), generator.ID).Return([]domain.Load{
		{ID: "l1", Status: domain.LoadPublished},
		{ID: "l2", Status: domain.LoadPublished},
		{ID: "l3", Status: domain.LoadDelivered},
	}, nil)

	sum, err := d.svc.DashboardSummary(context.Background(), generator)
	require.NoError(t, err)
	require.Equal(t, 3, sum.TotalLoads)
	require.Equal(t, 2, sum.LoadsByStatus[domain.LoadPublished])
	require.Equal(t, 1, sum.LoadsByStatus[domain.LoadDelivered])
	require.Nil(t, sum.AssignmentsByStatus)
}

func TestDashboardSummary_Transporter(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.assignments.EXPECT().ListByTransporter(gomock.Any(), transporter.ID).Return([]domain.Assignment{
		{ID: "a1", LoadID: "l1", Status: domain.AssignmentCancelled},
		{ID: "a2", LoadID: "l1", Status: domain.AssignmentCompleted},
		{ID: "a3", LoadID: "l2", Status: domain.AssignmentInProgress},
	}, nil)
	d.loads.EXPECT().GetMany(gomock.Any(), []string{"l1", "l2"}).Return(map[string]domain.Load{
		"l1": {ID: "l1", Status: domain.LoadDelivered},
		"l2": {ID: "l2", Status: domain.LoadInTransit},
	}, nil)

	sum, err := d.svc.DashboardSummary(context.Background(), transporter)
	require.NoError(t, err)
	require.Equal(t, 2, sum.TotalLoads)
	require.Equal(t, 1, sum.AssignmentsByStatus[domain.AssignmentCancelled])
	require.Equal(t, 1, sum.AssignmentsByStatus[domain.AssignmentInProgress])
	require.Equal(t, 1, sum.LoadsByStatus[domain.LoadInTransit])
}

func TestDashboardSummary_PropagatesErrors(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.loads.EXPECT().ListByOwner(gomock.Any(), generator.ID).Return(nil, errors.New("db down"))

	_, err := d.svc.DashboardSummary(context.Background(), generator)
	require.EqualError(t, err, "db down")

	_, err = d.svc.DashboardSummary(context.Background(), domain.Actor{ID: "x", Role: "admin"})
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestHistory(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	events := []domain.LifecycleEvent{{ID: "ev-1", LoadID: "load-1", Trigger: domain.TriggerAccept}}
	gomock.InOrder(
		d.loads.EXPECT().Get(gomock.Any(), "load-1").Return(&domain.Load{ID: "load-1"}, nil),
		d.history.EXPECT().ListByLoad(gomock.Any(), "load-1").Return(events, nil),
	)
	d.loads.EXPECT().Get(gomock.Any(), "missing").Return(nil, nil)

	got, err := d.svc.History(context.Background(), "load-1")
	require.NoError(t, err)
	require.Equal(t, events, got)

	_, err = d.svc.History(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = d.svc.History(context.Background(), "")
	require.ErrorIs(t, err, apperr.ErrValidation)
}
