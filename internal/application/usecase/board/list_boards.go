package board

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// ListBoardsUseCase handles listing board summaries
type ListBoardsUseCase struct {
	boardService *service.BoardService
}

// NewListBoardsUseCase creates a new ListBoardsUseCase
func NewListBoardsUseCase(boardService *service.BoardService) *ListBoardsUseCase {
	return &ListBoardsUseCase{boardService: boardService}
}

// Execute returns every board ordered by ID
func (uc *ListBoardsUseCase) Execute(ctx context.Context) ([]dto.BoardListDTO, error) {
	boards, err := uc.boardService.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BoardListDTO, 0, len(boards))
	for _, b := range boards {
		result = append(result, dto.BoardToListDTO(b))
	}
	return result, nil
}
