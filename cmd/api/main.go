package main

import (
	"os"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/logger"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/server"
)

// @title Research Portal API
// @version 1.0
// @description Backend for the university research portal: professors publish research projects, students apply with a resume, and notification emails carry tracked links.

// @contact.name API Support
// @contact.email research-portal@miami.edu

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
