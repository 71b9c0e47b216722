package main

import (
	"os"

	"github.com/yigit/eduverse/internal/bootstrap"
	"github.com/yigit/eduverse/internal/pkg/logger"
	"github.com/yigit/eduverse/internal/server"
)

// @title EduVerse Reporting API
// @version 1.0
// @description Read-only engagement analytics and leaderboards for EduVerse courses
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = bootstrap.DefaultConfigPath
	}

	srv, err := server.NewServer(configPath)
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
