package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	"github.com/efficience-dental/agenda-api/internal/service/agenda"
)

const dashboardCacheKey = "dashboard"

type Config struct {
	// VisitFee is the average revenue per booked visit used for the
	// dashboard estimate.
	VisitFee int
	// CacheTTL bounds how stale the dashboard figures may be.
	CacheTTL time.Duration
}

func (c *Config) withDefaults() {
	if c.VisitFee <= 0 {
		c.VisitFee = 60
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
}

// Service aggregates the roster into the dashboard KPIs. Results are
// cached for a short TTL so the dashboard can poll freely.
type Service struct {
	repo  repository.AppointmentRepository
	clock agenda.Clock
	cfg   Config
	cache *cache.Cache
}

func NewService(repo repository.AppointmentRepository, clock agenda.Clock, cfg Config) *Service {
	cfg.withDefaults()
	if clock == nil {
		clock = agenda.SystemClock()
	}
	return &Service{
		repo:  repo,
		clock: clock,
		cfg:   cfg,
		cache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

func (s *Service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	roster, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	stats := aggregate(roster, s.clock.Today().Format(model.DateLayout), s.cfg.VisitFee)
	s.cache.Set(dashboardCacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}

func aggregate(roster []*model.Appointment, today string, visitFee int) *model.DashboardStats {
	byMonth := make(map[string]int)
	appointmentsToday := 0

	for _, apt := range roster {
		if len(apt.Date) >= 7 {
			byMonth[apt.Date[:7]]++
		}
		if apt.Date == today {
			appointmentsToday++
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	monthly := make([]model.MonthlyVisits, 0, len(months))
	for _, m := range months {
		monthly = append(monthly, model.MonthlyVisits{Month: m, Visits: byMonth[m]})
	}

	return &model.DashboardStats{
		TotalPatients:     len(roster),
		Revenue:           len(roster) * visitFee,
		AppointmentsToday: appointmentsToday,
		Monthly:           monthly,
	}
}
