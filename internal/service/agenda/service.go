package agenda

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
	"github.com/efficience-dental/agenda-api/pkg/logger"
	"github.com/efficience-dental/agenda-api/pkg/messaging"
	"github.com/efficience-dental/agenda-api/pkg/metrics"
)

const (
	EventCreated     = "appointment_created"
	EventRescheduled = "appointment_rescheduled"
	EventDeleted     = "appointment_deleted"
)

// Clock supplies "today" for the default selected date and the
// jump-to-today navigation.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// Confirmer is the yes/no gate consulted before a delete reaches the
// store. A false answer aborts the mutation without any store call.
type Confirmer interface {
	ConfirmDelete(ctx context.Context, id uuid.UUID) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, id uuid.UUID) bool

func (f ConfirmerFunc) ConfirmDelete(ctx context.Context, id uuid.UUID) bool {
	return f(ctx, id)
}

type confirmationKey struct{}

// WithConfirmation records on the context whether the caller affirmed the
// deletion prompt for this request.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, confirmed)
}

// ContextConfirmer reads the confirmation flag carried by the request
// context. Absent means not confirmed.
func ContextConfirmer() Confirmer {
	return ConfirmerFunc(func(ctx context.Context, _ uuid.UUID) bool {
		confirmed, _ := ctx.Value(confirmationKey{}).(bool)
		return confirmed
	})
}

type Config struct {
	// DailyCapacity is the appointment target a fully booked day reaches.
	DailyCapacity int
	// DefaultCategory is assigned to bookings without a visit type.
	DefaultCategory string
	// PollInterval is the fixed refresh period for the roster snapshot.
	PollInterval time.Duration
	// EventChannel is the broker channel mutations are announced on.
	EventChannel string
}

func (c *Config) withDefaults() {
	if c.DailyCapacity <= 0 {
		c.DailyCapacity = 10
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = model.DefaultCategory
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.EventChannel == "" {
		c.EventChannel = "agenda.events"
	}
}

// Service is the agenda engine. It owns the in-memory roster snapshot,
// derives the day views, and applies the three mutations. The snapshot is
// only ever replaced wholesale by a re-fetch from the repository, never
// patched optimistically, so it cannot diverge from store truth.
type Service struct {
	repo      repository.AppointmentRepository
	broker    messaging.Broker
	clock     Clock
	confirmer Confirmer
	logger    *logger.Logger
	metrics   *metrics.Metrics
	cfg       Config

	mu       sync.RWMutex
	roster   []*model.Appointment
	selected string
}

func NewService(
	repo repository.AppointmentRepository,
	broker messaging.Broker,
	clock Clock,
	confirmer Confirmer,
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	cfg.withDefaults()
	if clock == nil {
		clock = SystemClock()
	}
	if confirmer == nil {
		confirmer = ContextConfirmer()
	}
	return &Service{
		repo:      repo,
		broker:    broker,
		clock:     clock,
		confirmer: confirmer,
		logger:    log,
		metrics:   m,
		cfg:       cfg,
		selected:  clock.Today().Format(model.DateLayout),
	}
}

// Refresh replaces the roster snapshot with the store's current state.
// On failure the previous snapshot is kept untouched.
func (s *Service) Refresh(ctx context.Context) error {
	roster, err := s.repo.List(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RosterRefreshFailures.Inc()
		}
		return err
	}

	s.mu.Lock()
	s.roster = roster
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RosterRefreshes.Inc()
		s.metrics.RosterSize.Set(float64(len(roster)))
	}
	return nil
}

// Start runs the fixed-interval roster poll until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error(err, "roster refresh failed")
			}
		}
	}
}

// Snapshot returns a copy of the current roster.
func (s *Service) Snapshot() []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Appointment, len(s.roster))
	copy(out, s.roster)
	return out
}

// SelectedDate returns the date the agenda is currently showing.
func (s *Service) SelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectDate navigates the agenda to an arbitrary date.
func (s *Service) SelectDate(date string) (string, error) {
	normalized, err := model.NormalizeDate(date)
	if err != nil {
		return "", apperrors.Validation("date must be YYYY-MM-DD")
	}
	s.mu.Lock()
	s.selected = normalized
	s.mu.Unlock()
	return normalized, nil
}

// JumpToToday navigates the agenda back to the clock's today.
func (s *Service) JumpToToday() string {
	today := s.clock.Today().Format(model.DateLayout)
	s.mu.Lock()
	s.selected = today
	s.mu.Unlock()
	return today
}

// DayView builds the agenda screen for the given date (or the currently
// selected date when empty): week strip, day appointments in slot order,
// and the day's occupancy.
func (s *Service) DayView(date string) (*model.DayView, error) {
	var selected string
	if date == "" {
		selected = s.SelectedDate()
	} else {
		var err error
		selected, err = s.SelectDate(date)
		if err != nil {
			return nil, err
		}
	}

	day, _ := time.Parse(model.DateLayout, selected)
	appointments := FilterDay(s.Snapshot(), selected)

	return &model.DayView{
		SelectedDate: selected,
		WeekWindow:   WeekWindow(day),
		Appointments: appointments,
		Occupancy:    OccupancyRate(len(appointments), s.cfg.DailyCapacity),
	}, nil
}

// Create validates and books a new appointment. Validation failures are
// rejected before any store call. On store failure nothing is applied and
// the last known-good roster stays in place.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return nil, apperrors.Validation("patient name is required")
	}

	// An appointment without a time cannot be placed in the day list.
	if strings.TrimSpace(req.Time) == "" {
		return nil, apperrors.Validation("time is required")
	}
	slot, err := model.NormalizeTime(req.Time)
	if err != nil {
		return nil, apperrors.Validation("time must be HH:MM")
	}

	date := req.Date
	if strings.TrimSpace(date) == "" {
		date = s.SelectedDate()
	}
	date, err = model.NormalizeDate(date)
	if err != nil {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = s.cfg.DefaultCategory
	}

	apt := &model.Appointment{
		ID:          uuid.New(),
		PatientName: model.DisplayName(name),
		Initial:     model.NameInitial(name),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Date:        date,
		Time:        slot,
		Category:    category,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, EventCreated, apt)
	if s.metrics != nil {
		s.metrics.AppointmentsCreated.Inc()
	}
	return apt, nil
}

// Reschedule moves an appointment to a new date and time. Both fields are
// required so the move never partially applies; only those two fields are
// sent to the store.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req *model.RescheduleRequest) (*model.Appointment, error) {
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, apperrors.Validation("both date and time are required")
	}
	date, err := model.NormalizeDate(req.Date)
	if err != nil {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}
	slot, err := model.NormalizeTime(req.Time)
	if err != nil {
		return nil, apperrors.Validation("time must be HH:MM")
	}

	if err := s.repo.UpdateSchedule(ctx, id, date, slot); err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			// Another session removed it; reconcile the local view.
			s.refreshQuietly(ctx)
		}
		return nil, err
	}

	s.afterMutation(ctx, EventRescheduled, map[string]interface{}{
		"id":   id,
		"date": date,
		"time": slot,
	})
	if s.metrics != nil {
		s.metrics.AppointmentsRescheduled.Inc()
	}

	// The write committed; if the refresh no longer sees the row (a
	// concurrent delete won, or the refresh itself failed), answer with
	// the schedule that was applied.
	apt := s.find(id)
	if apt == nil {
		apt = &model.Appointment{ID: id, Date: date, Time: slot}
	}
	return apt, nil
}

// Delete removes an appointment permanently. The confirmation gate is
// consulted first: a denial aborts with zero store calls.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.confirmer.ConfirmDelete(ctx, id) {
		return apperrors.Validation("deletion not confirmed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			s.refreshQuietly(ctx)
		}
		return err
	}

	s.afterMutation(ctx, EventDeleted, map[string]interface{}{"id": id})
	if s.metrics != nil {
		s.metrics.AppointmentsDeleted.Inc()
	}
	return nil
}

// afterMutation re-fetches the roster (read-after-write on the same
// client) and announces the event. Neither failure rolls back the
// already-committed write; both are logged and the snapshot keeps its
// last known-good state until the next poll.
func (s *Service) afterMutation(ctx context.Context, event string, payload interface{}) {
	s.refreshQuietly(ctx)

	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: event, Payload: payload}
	if err := s.broker.Publish(ctx, s.cfg.EventChannel, msg); err != nil {
		s.logger.Error(err, "failed to publish agenda event", "event", event)
	}
}

func (s *Service) refreshQuietly(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error(err, "roster refresh after mutation failed")
	}
}

func (s *Service) find(id uuid.UUID) *model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, apt := range s.roster {
		if apt.ID == id {
			return apt
		}
	}
	return nil
}
