package card

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// CreateCardUseCase handles card creation
type CreateCardUseCase struct {
	boardService *service.BoardService
}

// NewCreateCardUseCase creates a new CreateCardUseCase
func NewCreateCardUseCase(boardService *service.BoardService) *CreateCardUseCase {
	return &CreateCardUseCase{boardService: boardService}
}

// Execute creates a card in listID and echoes the client id
func (uc *CreateCardUseCase) Execute(ctx context.Context, listID string, req dto.CreateCardRequest) (*dto.CardDTO, error) {
	c, err := uc.boardService.CreateCard(ctx, listID, service.CardInput{
		ClientID:    req.ClientID,
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
	result.ClientID = req.ClientID
	return &result, nil
}
