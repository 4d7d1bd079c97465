//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"teamboard/internal/application/usecase/board"
	"teamboard/internal/application/usecase/card"
	"teamboard/internal/application/usecase/list"
	"teamboard/internal/daemon"
	"teamboard/internal/domain/service"
	"teamboard/internal/infrastructure/config"
)

// InitializeDaemon sets up the server side: storage, domain services and
// the HTTP server
func InitializeDaemon(cfg *config.Config) (*DaemonContainer, func(), error) {
	wire.Build(
		ProvideLogger,

		// Repositories
		ProvideBoardRepository,

		// Domain Services
		ProvideValidationService,
		service.NewClientIDIndex,
		ProvideBoardService,

		// Use Cases - Board
		board.NewListBoardsUseCase,
		board.NewGetBoardUseCase,
		board.NewCreateBoardUseCase,
		board.NewDeleteBoardUseCase,

		// Use Cases - List
		list.NewCreateListUseCase,
		list.NewUpdateListUseCase,
		list.NewDeleteListUseCase,
		list.NewReorderListsUseCase,

		// Use Cases - Card
		card.NewCreateCardUseCase,
		card.NewUpdateCardUseCase,
		card.NewDeleteCardUseCase,
		card.NewMoveCardsUseCase,

		// Transport
		wire.Struct(new(daemon.UseCases), "*"),
		ProvideHandler,
		daemon.NewServer,

		wire.Struct(new(DaemonContainer), "*"),
	)
	return nil, nil, nil
}

// InitializeClient sets up the client side: the daemon client and the
// optimistic coordinator over it
func InitializeClient(cfg *config.Config) (*ClientContainer, error) {
	wire.Build(
		ProvideLogger,
		daemon.NewClient,
		ProvideCoordinator,
		wire.Struct(new(ClientContainer), "*"),
	)
	return nil, nil
}
