// Command server runs the No Nut November web backend.
//
// Configuration is read from CONFIG_PATH, ./config.yaml or the environment.
// A .env file (or ENV_FILE) is loaded first when present.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nonutti-ng/web/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
