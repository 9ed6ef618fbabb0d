package main

import (
	"vetconnect/internal/gateway/handlers"
	"vetconnect/internal/gateway/service"
	"vetconnect/internal/health"
	"vetconnect/pkg/app"
	"vetconnect/pkg/config"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)
	// Redis backs the shared idempotency and rate-limit stores; the
	// gateway itself holds no data.
	cfg.SetRedis()
	cfg.SetServiceClients()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Gateway service")
	gatewayService := service.NewGatewayService(cfg.Client, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handlers.NewFlowHandler(gatewayService, cfg.Log),
		health.NewHandler(nil, cfg.Log),
	)
	serverApp.Run()
}
