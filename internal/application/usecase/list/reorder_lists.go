package list

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// ReorderListsUseCase handles reordering a board's lists
type ReorderListsUseCase struct {
	boardService *service.BoardService
}

// NewReorderListsUseCase creates a new ReorderListsUseCase
func NewReorderListsUseCase(boardService *service.BoardService) *ReorderListsUseCase {
	return &ReorderListsUseCase{boardService: boardService}
}

// Execute renumbers the lists of boardID in the requested order
func (uc *ReorderListsUseCase) Execute(ctx context.Context, boardID string, req dto.ReorderListsRequest) ([]dto.ListDTO, error) {
	lists, err := uc.boardService.ReorderLists(ctx, boardID, req.ListIDs)
	if err != nil {
		return nil, err
	}
	return dto.ListsToDTO(lists), nil
}
