package main

import (
	"vetconnect/internal/appointments/handler"
	"vetconnect/internal/appointments/repository"
	"vetconnect/internal/appointments/service"
	"vetconnect/internal/appointments/validator"
	"vetconnect/internal/health"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
	"vetconnect/pkg/kafka"
	kafka_config "vetconnect/pkg/kafka/config"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	cfg.SetServiceClients()
	defer cfg.GracefulShutdown()

	producer, err := kafka.NewProducer(kafka_config.Load(), kafka.TopicAppointments, kafka.TopicAppointmentsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	cfg.Log.Info("Starting Appointments service")
	appointmentService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewAppointmentHandler(appointmentService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo.Client, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.AppointmentService {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		appointmentValidator,
		service.NewScheduleGateway(cfg.Client.ScheduleClient),
		service.NewPetGateway(cfg.Client.PetClient),
		producer,
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
