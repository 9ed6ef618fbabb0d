package main

import (
	"vetconnect/internal/health"
	"vetconnect/internal/vets/handler"
	"vetconnect/internal/vets/repository"
	"vetconnect/internal/vets/service"
	"vetconnect/internal/vets/validator"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
)

const ServiceName = "vets"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Vets service")
	vetService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewVetHandler(vetService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo.Client, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.VetService {
	vetValidator := validator.NewVetValidator(cfg.Log)
	vetRepo := repository.NewMongoVetRepository(cfg)
	vetService := service.NewVetService(vetRepo, vetValidator, cfg)

	cfg.Log.Info("Vet service initialized", "database", cfg.MongoDatabaseName)
	return vetService
}
