package di

import (
	"context"
	"fmt"

	"teamboard/internal/common/logger"
	"teamboard/internal/coordinator"
	"teamboard/internal/daemon"
	"teamboard/internal/domain/repository"
	"teamboard/internal/domain/service"
	"teamboard/internal/infrastructure/config"
	"teamboard/internal/infrastructure/persistence/cache"
	"teamboard/internal/infrastructure/persistence/filesystem"
	"teamboard/internal/infrastructure/persistence/sqlite"
)

// Provider functions

func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// OpenRepository opens the storage driver named by driver without caching
func OpenRepository(cfg *config.Config, driver string) (repository.BoardRepository, func(), error) {
	switch driver {
	case config.DriverFilesystem:
		return filesystem.NewBoardRepository(cfg.Storage.BoardsPath), func() {}, nil
	case config.DriverSQLite:
		repo, err := sqlite.NewBoardRepository(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// ProvideBoardRepository opens the configured storage behind a cache. For
// the filesystem driver a watcher drops cached boards edited on disk.
func ProvideBoardRepository(cfg *config.Config, log *logger.Logger) (repository.BoardRepository, func(), error) {
	inner, closeInner, err := OpenRepository(cfg, cfg.Storage.Driver)
	if err != nil {
		return nil, nil, err
	}
	cached := cache.NewBoardRepository(inner, log)

	fsRepo, ok := inner.(*filesystem.BoardRepositoryImpl)
	if !ok {
		return cached, closeInner, nil
	}

	watcher, err := cache.NewWatcher(fsRepo.PathBuilder(), cached, log)
	if err != nil {
		closeInner()
		return nil, nil, err
	}
	watcher.Start(context.Background())
	cleanup := func() {
		_ = watcher.Stop()
		closeInner()
	}
	return cached, cleanup, nil
}

func ProvideValidationService(boardRepo repository.BoardRepository) *service.ValidationService {
	return service.NewValidationService(boardRepo)
}

func ProvideBoardService(
	boardRepo repository.BoardRepository,
	validationService *service.ValidationService,
	clientIDs *service.ClientIDIndex,
) *service.BoardService {
	return service.NewBoardService(boardRepo, validationService, clientIDs)
}

func ProvideHandler(uc *daemon.UseCases, log *logger.Logger, cfg *config.Config) *daemon.Handler {
	return daemon.NewHandler(uc, log, cfg.Daemon.RequestTimeout)
}

func ProvideCoordinator(client *daemon.Client, cfg *config.Config, log *logger.Logger) *coordinator.Coordinator {
	return coordinator.New(client, cfg.Daemon.RequestTimeout, log)
}
