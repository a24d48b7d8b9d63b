package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efficience-dental/agenda-api/internal/config"
	"github.com/efficience-dental/agenda-api/internal/email"
	"github.com/efficience-dental/agenda-api/internal/repository/postgres"
	"github.com/efficience-dental/agenda-api/pkg/logger"
	"github.com/efficience-dental/agenda-api/pkg/metrics"
	"github.com/efficience-dental/agenda-api/pkg/worker"
)

func setupHealthCheck(log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			log.Fatal(err, "health check server failed")
		}
	}()
}

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

	mailer := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Practice: "Cabinet Dentaire",
	})

	reminder := worker.NewReminderWorker(
		postgres.NewAppointmentRepository(db),
		mailer,
		nil, // system clock
		worker.ReminderConfig{Interval: cfg.Reminder.Interval},
		log,
		metrics.New("agenda_worker"),
	)

	setupHealthCheck(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down reminder worker")
		cancel()
	}()

	log.Info("reminder worker started", "interval", cfg.Reminder.Interval.String())
	reminder.Start(ctx)
}
