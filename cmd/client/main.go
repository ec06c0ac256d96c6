package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/avelichko/contactdesk/internal/client/cli"
	"github.com/avelichko/contactdesk/internal/client/config"
	"github.com/avelichko/contactdesk/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
