package cabinet

import (
	"context"
	"fmt"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	"github.com/efficience-dental/agenda-api/internal/service/agenda"
)

type Config struct {
	// RosterCapacity is the bookings count at which the practice as a
	// whole is considered fully occupied.
	RosterCapacity int
}

func (c *Config) withDefaults() {
	if c.RosterCapacity <= 0 {
		c.RosterCapacity = 200
	}
}

// Service serves the practice profile and its overall occupancy figure.
type Service struct {
	repo            repository.CabinetRepository
	appointmentRepo repository.AppointmentRepository
	cfg             Config
}

func NewService(repo repository.CabinetRepository, appointmentRepo repository.AppointmentRepository, cfg Config) *Service {
	cfg.withDefaults()
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		cfg:             cfg,
	}
}

func (s *Service) Info(ctx context.Context) (*model.CabinetInfo, error) {
	cab, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cabinet: %w", err)
	}

	roster, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	return &model.CabinetInfo{
		Cabinet:       *cab,
		OccupancyRate: agenda.OccupancyRate(len(roster), s.cfg.RosterCapacity),
	}, nil
}

func (s *Service) Update(ctx context.Context, req *model.UpdateCabinetRequest) (*model.Cabinet, error) {
	cab, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cabinet: %w", err)
	}

	if req.Name != nil {
		cab.Name = *req.Name
	}
	if req.Address != nil {
		cab.Address = *req.Address
	}
	if req.Phone != nil {
		cab.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, cab); err != nil {
		return nil, fmt.Errorf("failed to update cabinet: %w", err)
	}
	return cab, nil
}
