package card

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// MoveCardsUseCase handles the compound card move
type MoveCardsUseCase struct {
	boardService *service.BoardService
}

// NewMoveCardsUseCase creates a new MoveCardsUseCase
func NewMoveCardsUseCase(boardService *service.BoardService) *MoveCardsUseCase {
	return &MoveCardsUseCase{boardService: boardService}
}

// Execute moves a card and returns the moved card with the canonical
// contents of both lists. FromCards equals ToCards for a same-list move.
func (uc *MoveCardsUseCase) Execute(ctx context.Context, req dto.MoveCardsRequest) (*dto.MoveCardsResult, error) {
	c, source, target, err := uc.boardService.MoveCard(ctx, service.MoveInput{
		CardID:     req.CardID,
		FromListID: req.FromListID,
		ToListID:   req.ToListID,
		Position:   req.Position,
		FromOrder:  req.FromOrder,
		ToOrder:    req.ToOrder,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MoveCardsResult{
		Card:      dto.CardToDTO(c),
		FromCards: dto.CardsToDTO(source.Cards()),
		ToCards:   dto.CardsToDTO(target.Cards()),
	}, nil
}
