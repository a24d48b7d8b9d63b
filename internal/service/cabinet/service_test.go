package cabinet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficience-dental/agenda-api/internal/model"
)

type fakeCabinetRepo struct {
	cabinet model.Cabinet
	updated *model.Cabinet
}

func (r *fakeCabinetRepo) Get(ctx context.Context) (*model.Cabinet, error) {
	c := r.cabinet
	return &c, nil
}

func (r *fakeCabinetRepo) Update(ctx context.Context, c *model.Cabinet) error {
	r.updated = c
	return nil
}

type fakeAppointmentRepo struct {
	count int
}

func (r *fakeAppointmentRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	roster := make([]*model.Appointment, r.count)
	for i := range roster {
		roster[i] = &model.Appointment{ID: uuid.New()}
	}
	return roster, nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	return errors.New("not implemented")
}

func (r *fakeAppointmentRepo) UpdateSchedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) error {
	return errors.New("not implemented")
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func TestInfoComputesOccupancy(t *testing.T) {
	repo := &fakeCabinetRepo{cabinet: model.Cabinet{ID: 1, Name: "Cabinet Dentaire"}}
	svc := NewService(repo, &fakeAppointmentRepo{count: 50}, Config{RosterCapacity: 200})

	info, err := svc.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Cabinet Dentaire", info.Name)
	assert.Equal(t, 25, info.OccupancyRate)
}

func TestInfoOccupancyIsCapped(t *testing.T) {
	svc := NewService(&fakeCabinetRepo{}, &fakeAppointmentRepo{count: 500}, Config{RosterCapacity: 200})

	info, err := svc.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, info.OccupancyRate)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := &fakeCabinetRepo{cabinet: model.Cabinet{
		ID:      1,
		Name:    "Cabinet Dentaire",
		Address: "12 rue de la Paix",
		Phone:   "0102030405",
	}}
	svc := NewService(repo, &fakeAppointmentRepo{}, Config{})

	newPhone := "0607080910"
	cab, err := svc.Update(context.Background(), &model.UpdateCabinetRequest{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, "Cabinet Dentaire", cab.Name)
	assert.Equal(t, "12 rue de la Paix", cab.Address)
	assert.Equal(t, newPhone, cab.Phone)
	require.NotNil(t, repo.updated)
	assert.Equal(t, newPhone, repo.updated.Phone)
}
