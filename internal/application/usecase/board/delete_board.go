package board

import (
	"context"

	"teamboard/internal/domain/service"
)

// DeleteBoardUseCase handles board removal
type DeleteBoardUseCase struct {
	boardService *service.BoardService
}

// NewDeleteBoardUseCase creates a new DeleteBoardUseCase
func NewDeleteBoardUseCase(boardService *service.BoardService) *DeleteBoardUseCase {
	return &DeleteBoardUseCase{boardService: boardService}
}

// Execute deletes a board with its lists and cards
func (uc *DeleteBoardUseCase) Execute(ctx context.Context, boardID string) error {
	return uc.boardService.DeleteBoard(ctx, boardID)
}
