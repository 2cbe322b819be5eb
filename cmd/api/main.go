package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/coursescope/coursescope/internal/pkg/logger" // Still needed for initial error logging
	"github.com/coursescope/coursescope/internal/server"
)

// @title CourseScope API
// @version 1.0
// @description Course catalog ingestion and query service. Pulls class sections from the university bulletin, normalizes them into a relational catalog and answers search, status and per-section detail queries.

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	// Local development overrides; missing .env is fine.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment overrides from .env")
	}

	// Initialize the server with all its dependencies
	// NewServer orchestrates LoadConfigAndSetupLogger, SetupDatabase, BuildDependencies, SetupRouter
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
