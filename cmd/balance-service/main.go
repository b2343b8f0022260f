package main

import (
	"fmt"
	"os"

	"github.com/payflow/balance-service/internal/config"
	"github.com/payflow/balance-service/internal/logging"
	"github.com/payflow/balance-service/internal/server"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)
	srv := server.NewServer(cfg, logger)

	// Runs until the process is killed; there is no shutdown path.
	if err := srv.Run(); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
