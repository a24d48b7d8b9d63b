package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/efficience-dental/agenda-api/internal/config"
	agendaHandler "github.com/efficience-dental/agenda-api/internal/handler/agenda"
	authHandler "github.com/efficience-dental/agenda-api/internal/handler/auth"
	cabinetHandler "github.com/efficience-dental/agenda-api/internal/handler/cabinet"
	healthHandler "github.com/efficience-dental/agenda-api/internal/handler/health"
	statsHandler "github.com/efficience-dental/agenda-api/internal/handler/stats"
	"github.com/efficience-dental/agenda-api/internal/middleware"
	"github.com/efficience-dental/agenda-api/internal/repository/postgres"
	"github.com/efficience-dental/agenda-api/internal/router"
	agendaService "github.com/efficience-dental/agenda-api/internal/service/agenda"
	authService "github.com/efficience-dental/agenda-api/internal/service/auth"
	cabinetService "github.com/efficience-dental/agenda-api/internal/service/cabinet"
	statsService "github.com/efficience-dental/agenda-api/internal/service/stats"
	"github.com/efficience-dental/agenda-api/pkg/auth"
	"github.com/efficience-dental/agenda-api/pkg/logger"
	"github.com/efficience-dental/agenda-api/pkg/messaging"
	"github.com/efficience-dental/agenda-api/pkg/messaging/redis"
	"github.com/efficience-dental/agenda-api/pkg/metrics"
	"github.com/efficience-dental/agenda-api/pkg/security"
	"github.com/efficience-dental/agenda-api/pkg/validator"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()
	}

	appointmentRepo := postgres.NewAppointmentRepository(db)
	cabinetRepo := postgres.NewCabinetRepository(db)
	userRepo := postgres.NewUserRepository(db)

	m := metrics.New("agenda_api")

	agendaSvc := agendaService.NewService(
		appointmentRepo,
		broker,
		nil, // system clock
		nil, // context-carried confirmation
		agendaService.Config{
			DailyCapacity:   cfg.Agenda.DailyCapacity,
			DefaultCategory: cfg.Agenda.DefaultCategory,
			PollInterval:    cfg.Agenda.PollInterval,
			EventChannel:    cfg.Agenda.EventChannel,
		},
		log,
		m,
	)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(userRepo, security.NewBcryptHasher(bcrypt.DefaultCost), jwtSvc)
	cabinetSvc := cabinetService.NewService(cabinetRepo, appointmentRepo, cabinetService.Config{
		RosterCapacity: cfg.Agenda.RosterCapacity,
	})
	statsSvc := statsService.NewService(appointmentRepo, nil, statsService.Config{
		VisitFee: cfg.Agenda.VisitFee,
	})

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		log,
		authMiddleware,
		authHandler.NewHandler(authSvc, validator.New()),
		healthHandler.NewHandler(db),
		agendaHandler.NewHandler(agendaSvc),
		cabinetHandler.NewHandler(cabinetSvc),
		statsHandler.NewHandler(statsSvc),
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "agenda_api",
		},
	)
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prime the roster before serving, then keep it fresh in the
	// background.
	if err := agendaSvc.Refresh(ctx); err != nil {
		log.Warn("initial roster refresh failed, starting with empty agenda")
	}
	go agendaSvc.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
