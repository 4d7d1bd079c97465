package board

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// GetBoardUseCase handles loading a board with its lists and cards
type GetBoardUseCase struct {
	boardService *service.BoardService
}

// NewGetBoardUseCase creates a new GetBoardUseCase
func NewGetBoardUseCase(boardService *service.BoardService) *GetBoardUseCase {
	return &GetBoardUseCase{boardService: boardService}
}

// Execute loads a board
func (uc *GetBoardUseCase) Execute(ctx context.Context, boardID string) (*dto.BoardDTO, error) {
	board, err := uc.boardService.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return dto.BoardToDTO(board), nil
}
