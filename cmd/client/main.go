package main

import (
	"context"
	"log"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/cli"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/config"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	app := cli.NewApp(cfg, logger)
	if err := app.Bootstrap(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
