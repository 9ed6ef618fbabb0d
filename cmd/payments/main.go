package main

import (
	"vetconnect/internal/health"
	"vetconnect/internal/payments/handler"
	"vetconnect/internal/payments/repository"
	"vetconnect/internal/payments/service"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
	"vetconnect/pkg/kafka"
	kafka_config "vetconnect/pkg/kafka/config"
)

const ServiceName = "payments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	cfg.SetServiceClients()
	defer cfg.GracefulShutdown()

	producer, err := kafka.NewProducer(kafka_config.Load(), kafka.TopicPayments, kafka.TopicPaymentsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	cfg.Log.Info("Starting Payments service")
	paymentService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewPaymentHandler(paymentService, cfg),
		health.NewHandler(cfg.Client.Mongo.Client, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.PaymentService {
	paymentRepo := repository.NewMongoPaymentRepository(cfg)
	eventRepo := repository.NewProviderEventRepository(cfg)
	paymentService := service.NewPaymentService(
		paymentRepo,
		eventRepo,
		service.NewAppointmentGateway(cfg.Client.AppointmentClient),
		service.NewVetGateway(cfg.Client.VetClient),
		service.NewStripeIntentCreator(cfg.StripeAPIKey),
		producer,
		cfg,
	)

	cfg.Log.Info("Payment service initialized", "database", cfg.MongoDatabaseName)
	return paymentService
}
