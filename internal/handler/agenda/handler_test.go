package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficience-dental/agenda-api/internal/model"
	agendaService "github.com/efficience-dental/agenda-api/internal/service/agenda"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
	"github.com/efficience-dental/agenda-api/pkg/logger"
)

type stubRepo struct {
	roster []*model.Appointment
}

func (r *stubRepo) List(ctx context.Context) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, len(r.roster))
	copy(out, r.roster)
	return out, nil
}

func (r *stubRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, apt := range r.roster {
		if apt.ID == id {
			return apt, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *stubRepo) Create(ctx context.Context, apt *model.Appointment) error {
	r.roster = append(r.roster, apt)
	return nil
}

func (r *stubRepo) UpdateSchedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) error {
	for _, apt := range r.roster {
		if apt.ID == id {
			apt.Date = date
			apt.Time = timeOfDay
			return nil
		}
	}
	return apperrors.NotFound("appointment", nil)
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, apt := range r.roster {
		if apt.ID == id {
			r.roster = append(r.roster[:i], r.roster[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("appointment", nil)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Today() time.Time { return c.now }

func newTestRouter(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := fixedClock{now: time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC)}
	svc := agendaService.NewService(repo, nil, clock, nil, agendaService.Config{}, logger.NewLogger(nil), nil)
	require.NoError(t, svc.Refresh(context.Background()))

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetDayView(t *testing.T) {
	repo := &stubRepo{roster: []*model.Appointment{
		{ID: uuid.New(), PatientName: "MARTIN", Date: "2025-12-10", Time: "09:00"},
		{ID: uuid.New(), PatientName: "DUPONT", Date: "2025-12-10", Time: "08:30"},
		{ID: uuid.New(), PatientName: "BERNARD", Date: "2025-12-11", Time: "10:00"},
	}}
	r := newTestRouter(t, repo)

	w := doJSON(r, http.MethodGet, "/api/v1/agenda?date=2025-12-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.DayView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2025-12-10", resp.Data.SelectedDate)
	assert.Len(t, resp.Data.WeekWindow, 7)
	require.Len(t, resp.Data.Appointments, 2)
	assert.Equal(t, "DUPONT", resp.Data.Appointments[0].PatientName)
	assert.Equal(t, "MARTIN", resp.Data.Appointments[1].PatientName)
	assert.Equal(t, 20, resp.Data.Occupancy)
}

func TestGetDayViewInvalidDate(t *testing.T) {
	r := newTestRouter(t, &stubRepo{})

	w := doJSON(r, http.MethodGet, "/api/v1/agenda?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointment(t *testing.T) {
	repo := &stubRepo{}
	r := newTestRouter(t, repo)

	w := doJSON(r, http.MethodPost, "/api/v1/appointments", model.CreateAppointmentRequest{
		PatientName: "martin dupont",
		Time:        "9:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MARTIN DUPONT", resp.Data.PatientName)
	assert.Equal(t, "09:00", resp.Data.Time)
	assert.Equal(t, "2025-12-10", resp.Data.Date)
	assert.Equal(t, model.DefaultCategory, resp.Data.Category)
}

func TestCreateAppointmentWithoutTime(t *testing.T) {
	repo := &stubRepo{}
	r := newTestRouter(t, repo)

	w := doJSON(r, http.MethodPost, "/api/v1/appointments", model.CreateAppointmentRequest{
		PatientName: "martin dupont",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.roster)
}

func TestRescheduleAppointment(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{roster: []*model.Appointment{
		{ID: id, PatientName: "MARTIN", Date: "2025-12-10", Time: "09:00"},
	}}
	r := newTestRouter(t, repo)

	w := doJSON(r, http.MethodPut, "/api/v1/appointments/"+id.String()+"/schedule", model.RescheduleRequest{
		Date: "2025-12-12",
		Time: "14:30",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-12-12", repo.roster[0].Date)
	assert.Equal(t, "14:30", repo.roster[0].Time)
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	r := newTestRouter(t, &stubRepo{})

	w := doJSON(r, http.MethodPut, "/api/v1/appointments/"+uuid.NewString()+"/schedule", model.RescheduleRequest{
		Date: "2025-12-12",
		Time: "14:30",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRequiresConfirmFlag(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{roster: []*model.Appointment{
		{ID: id, PatientName: "MARTIN", Date: "2025-12-10", Time: "09:00"},
	}}
	r := newTestRouter(t, repo)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/v1/appointments/%s", id), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.roster, 1)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/v1/appointments/%s?confirm=true", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.roster)
}
