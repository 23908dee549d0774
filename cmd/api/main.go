package main

import (
	"os"

	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
	"github.com/collegeconnect/collegeconnect/internal/server"
)

// @title CollegeConnect API
// @version 1.0
// @description API for the CollegeConnect inter-college collaboration platform

// @contact.name API Support
// @contact.email support@collegeconnect.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
