package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/server"
)

// @title CBPD Admin API
// @version 1.0
// @description Institutional management backend: institutions, students, bulk import, statistics and exports

// @contact.name API Support
// @contact.email support@hexendevelopers.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// .env is optional; real deployments use environment variables
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
