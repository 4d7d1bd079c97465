package coordinator

import (
	"context"

	"teamboard/internal/application/dto"
)

// Remote is the persistence service. Every call returns canonical records
// with authoritative ids and positions.
type Remote interface {
	ListBoards(ctx context.Context) ([]dto.BoardListDTO, error)
	GetBoard(ctx context.Context, boardID string) (*dto.BoardDTO, error)
	CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*dto.BoardDTO, error)
	DeleteBoard(ctx context.Context, boardID string) error

	CreateList(ctx context.Context, boardID string, req dto.CreateListRequest) (*dto.ListDTO, error)
	UpdateList(ctx context.Context, listID string, req dto.UpdateListRequest) (*dto.ListDTO, error)
	DeleteList(ctx context.Context, listID string) error
	ReorderLists(ctx context.Context, boardID string, req dto.ReorderListsRequest) ([]dto.ListDTO, error)

	CreateCard(ctx context.Context, listID string, req dto.CreateCardRequest) (*dto.CardDTO, error)
	UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest) (*dto.CardDTO, error)
	DeleteCard(ctx context.Context, cardID string) error
	MoveCards(ctx context.Context, req dto.MoveCardsRequest) (*dto.MoveCardsResult, error)
}
