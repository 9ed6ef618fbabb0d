package main

import (
	"context"
	"os/signal"
	"syscall"

	"vetconnect/internal/appointments/repository"
	"vetconnect/internal/sweeper"
	"vetconnect/pkg/config"
)

const ServiceName = "sweeper"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)

	sweeper.NewSweeper(appointmentRepo, lockRepo, cfg).Run(ctx)
}
