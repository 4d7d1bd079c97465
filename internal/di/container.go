package di

import (
	"teamboard/internal/common/logger"
	"teamboard/internal/coordinator"
	"teamboard/internal/daemon"
	"teamboard/internal/domain/repository"
	"teamboard/internal/domain/service"
	"teamboard/internal/infrastructure/config"
)

// DaemonContainer holds the server-side dependencies
type DaemonContainer struct {
	Config *config.Config
	Logger *logger.Logger

	BoardRepo    repository.BoardRepository
	BoardService *service.BoardService

	Server *daemon.Server
}

// ClientContainer holds the dependencies of CLI commands and the TUI
type ClientContainer struct {
	Config *config.Config
	Logger *logger.Logger

	Client      *daemon.Client
	Coordinator *coordinator.Coordinator
}
