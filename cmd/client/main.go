package main

import (
	"context"
	"log"

	"gymtrack/internal/client/cli"
	"gymtrack/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
