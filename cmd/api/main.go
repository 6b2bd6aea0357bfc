package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/keiji0711/final-final/internal/pkg/logger"
	"github.com/keiji0711/final-final/internal/server"
)

// @title OSAS Attendance API
// @version 1.0
// @description Campus event attendance tracking: barcode scan time-in/time-out, live dashboard feed and attendance statistics

// @contact.name OSAS Office

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

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
