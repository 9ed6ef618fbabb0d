package main

import (
	"vetconnect/internal/health"
	"vetconnect/internal/pets/handler"
	"vetconnect/internal/pets/repository"
	"vetconnect/internal/pets/service"
	"vetconnect/internal/pets/validator"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
)

const ServiceName = "pets"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Pets service")
	petService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewPetHandler(petService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo.Client, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.PetService {
	petValidator := validator.NewPetValidator(cfg.Log)
	petRepo := repository.NewMongoPetRepository(cfg)
	petService := service.NewPetService(petRepo, petValidator, cfg)

	cfg.Log.Info("Pet service initialized", "database", cfg.MongoDatabaseName)
	return petService
}
