package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficience-dental/agenda-api/internal/model"
)

type fakeRepo struct {
	roster    []*model.Appointment
	listCalls int
	failWith  error
}

func (r *fakeRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	r.listCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.roster, nil
}

func (r *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) Create(ctx context.Context, apt *model.Appointment) error {
	return errors.New("not implemented")
}

func (r *fakeRepo) UpdateSchedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) error {
	return errors.New("not implemented")
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Today() time.Time { return c.now }

func visit(date string) *model.Appointment {
	return &model.Appointment{ID: uuid.New(), Date: date, Time: "09:00"}
}

func TestDashboardAggregation(t *testing.T) {
	repo := &fakeRepo{roster: []*model.Appointment{
		visit("2025-12-10"),
		visit("2025-12-10"),
		visit("2025-12-24"),
		visit("2025-11-03"),
	}}
	clock := fixedClock{now: time.Date(2025, 12, 10, 14, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clock, Config{VisitFee: 60})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalPatients)
	assert.Equal(t, 240, stats.Revenue)
	assert.Equal(t, 2, stats.AppointmentsToday)
	require.Len(t, stats.Monthly, 2)
	assert.Equal(t, model.MonthlyVisits{Month: "2025-11", Visits: 1}, stats.Monthly[0])
	assert.Equal(t, model.MonthlyVisits{Month: "2025-12", Visits: 3}, stats.Monthly[1])
}

func TestDashboardEmptyRoster(t *testing.T) {
	svc := NewService(&fakeRepo{}, fixedClock{now: time.Now()}, Config{})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalPatients)
	assert.Zero(t, stats.Revenue)
	assert.Zero(t, stats.AppointmentsToday)
	assert.Empty(t, stats.Monthly)
}

func TestDashboardIsCached(t *testing.T) {
	repo := &fakeRepo{roster: []*model.Appointment{visit("2025-12-10")}}
	svc := NewService(repo, fixedClock{now: time.Now()}, Config{CacheTTL: time.Minute})

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestDashboardStoreFailure(t *testing.T) {
	repo := &fakeRepo{failWith: errors.New("connection refused")}
	svc := NewService(repo, fixedClock{now: time.Now()}, Config{})

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}
