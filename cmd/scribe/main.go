package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/cli"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := cli.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps := &cli.Dependencies{
		Config: cfg,
		Log:    logger.NewCLI(),
	}

	return cli.NewRootCmd(deps).Execute()
}
