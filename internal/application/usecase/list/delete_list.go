package list

import (
	"context"

	"teamboard/internal/domain/service"
)

// DeleteListUseCase handles list removal
type DeleteListUseCase struct {
	boardService *service.BoardService
}

// NewDeleteListUseCase creates a new DeleteListUseCase
func NewDeleteListUseCase(boardService *service.BoardService) *DeleteListUseCase {
	return &DeleteListUseCase{boardService: boardService}
}

// Execute deletes a list and its cards
func (uc *DeleteListUseCase) Execute(ctx context.Context, listID string) error {
	return uc.boardService.DeleteList(ctx, listID)
}
