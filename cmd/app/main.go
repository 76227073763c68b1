package main

import (
	"context"

	"carnaval/config"
	"carnaval/di"
	"carnaval/shared/logger"
)

// @title Carnaval API
// @version 1.0
// @description Carnival tourism backend: events, hotels, bookings, galleries, and incident reports.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeNotificationWorker()
	go worker.Start(context.Background())

	http := di.InitializeService()
	http.Serve()
}
