package card

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// UpdateCardUseCase handles card updates
type UpdateCardUseCase struct {
	boardService *service.BoardService
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase
func NewUpdateCardUseCase(boardService *service.BoardService) *UpdateCardUseCase {
	return &UpdateCardUseCase{boardService: boardService}
}

// Execute applies the non-nil fields of req
func (uc *UpdateCardUseCase) Execute(ctx context.Context, cardID string, req dto.UpdateCardRequest) (*dto.CardDTO, error) {
	c, err := uc.boardService.UpdateCard(ctx, cardID, service.CardPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Checklist:   req.Checklist,
		Assignees:   req.Assignees,
		Position:    req.Position,
	})
	if err != nil {
		return nil, err
	}
	result := dto.CardToDTO(c)
	return &result, nil
}
