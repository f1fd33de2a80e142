package main

import (
	"fmt"

	"github.com/petlovers/community-server/internal/config"
	handler "github.com/petlovers/community-server/internal/handler/http"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/media"
	"github.com/petlovers/community-server/internal/server"
	"github.com/petlovers/community-server/internal/service"
	"github.com/petlovers/community-server/internal/session"
	"github.com/petlovers/community-server/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("community-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).
		Str("users_file", cfg.Storage.UsersFile).
		Str("uploads_dir", cfg.Storage.UploadsDir).
		Msg("received configs")

	users := store.NewUserRepository(cfg.Storage.UsersFile, log)
	files := media.NewManager(cfg.Storage.UploadsDir, log)

	sessions := session.NewStore(cfg.App.SessionTTL, log)
	defer sessions.Close()

	services := service.NewServices(users, files, cfg.App, log)

	handlers := handler.NewHandler(services, sessions, cfg.App, cfg.Storage.UploadsDir, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
