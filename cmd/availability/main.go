package main

import (
	"vetconnect/internal/availability/handler"
	"vetconnect/internal/availability/repository"
	"vetconnect/internal/availability/service"
	"vetconnect/internal/availability/validator"
	"vetconnect/internal/health"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	// Free-slot computation pulls booked appointments over HTTP.
	cfg.SetServiceClients()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Availability service")
	scheduleService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewScheduleHandler(scheduleService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo.Client, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ScheduleService {
	scheduleValidator := validator.NewScheduleValidator(cfg.Log)
	scheduleRepo := repository.NewMongoScheduleRepository(cfg)
	appointmentGateway := service.NewAppointmentGateway(cfg.Client.AppointmentClient)
	scheduleService := service.NewScheduleService(scheduleRepo, scheduleValidator, appointmentGateway, cfg)

	cfg.Log.Info("Schedule service initialized", "database", cfg.MongoDatabaseName)
	return scheduleService
}
