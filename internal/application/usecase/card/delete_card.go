package card

import (
	"context"

	"teamboard/internal/domain/service"
)

// DeleteCardUseCase handles card removal
type DeleteCardUseCase struct {
	boardService *service.BoardService
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase
func NewDeleteCardUseCase(boardService *service.BoardService) *DeleteCardUseCase {
	return &DeleteCardUseCase{boardService: boardService}
}

// Execute deletes a card
func (uc *DeleteCardUseCase) Execute(ctx context.Context, cardID string) error {
	return uc.boardService.DeleteCard(ctx, cardID)
}
