package worker

import (
	"context"
	"time"

	"github.com/efficience-dental/agenda-api/internal/email"
	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	"github.com/efficience-dental/agenda-api/internal/service/agenda"
	"github.com/efficience-dental/agenda-api/pkg/logger"
	"github.com/efficience-dental/agenda-api/pkg/metrics"
)

type ReminderConfig struct {
	// Interval is how often the roster is scanned for upcoming visits.
	Interval time.Duration
}

// ReminderWorker periodically scans the roster and emails patients whose
// appointment falls on the next calendar day. Appointments without a
// contact email are skipped.
type ReminderWorker struct {
	repo    repository.AppointmentRepository
	mailer  email.Service
	clock   agenda.Clock
	logger  *logger.Logger
	metrics *metrics.Metrics
	cfg     ReminderConfig

	// sent remembers which appointments were already reminded, keyed by
	// slot and id so a reschedule earns a fresh reminder. Entries for
	// days already past are pruned on each scan.
	sent map[string]bool
}

func NewReminderWorker(
	repo repository.AppointmentRepository,
	mailer email.Service,
	clock agenda.Clock,
	cfg ReminderConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *ReminderWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if clock == nil {
		clock = agenda.SystemClock()
	}
	return &ReminderWorker{
		repo:    repo,
		mailer:  mailer,
		clock:   clock,
		logger:  log,
		metrics: m,
		cfg:     cfg,
		sent:    make(map[string]bool),
	}
}

// Start runs the scan loop until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	today := w.clock.Today().Format(model.DateLayout)
	tomorrow := w.clock.Today().AddDate(0, 0, 1).Format(model.DateLayout)

	// Keys are date-prefixed; drop entries for days already past so the
	// map stays bounded by the upcoming roster.
	for key := range w.sent {
		if key[:len(model.DateLayout)] < today {
			delete(w.sent, key)
		}
	}

	roster, err := w.repo.List(ctx)
	if err != nil {
		w.logger.Error(err, "reminder scan failed to load roster")
		return
	}

	for _, apt := range agenda.FilterDay(roster, tomorrow) {
		if apt.Email == "" {
			continue
		}
		key := apt.Date + " " + apt.Time + "@" + apt.ID.String()
		if w.sent[key] {
			continue
		}

		if err := w.mailer.SendReminder(ctx, apt); err != nil {
			w.logger.Error(err, "failed to send reminder",
				"appointment_id", apt.ID.String())
			if w.metrics != nil {
				w.metrics.RemindersFailed.Inc()
			}
			continue
		}

		w.sent[key] = true
		if w.metrics != nil {
			w.metrics.RemindersSent.Inc()
		}
		w.logger.Info("reminder sent",
			"appointment_id", apt.ID.String(), "date", apt.Date, "time", apt.Time)
	}
}
