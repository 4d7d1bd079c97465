package board

import (
	"context"
	"strings"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// CreateBoardUseCase handles board creation
type CreateBoardUseCase struct {
	boardService *service.BoardService
}

// NewCreateBoardUseCase creates a new CreateBoardUseCase
func NewCreateBoardUseCase(boardService *service.BoardService) *CreateBoardUseCase {
	return &CreateBoardUseCase{boardService: boardService}
}

// Execute creates a board. Without explicit lists the default ones are added.
func (uc *CreateBoardUseCase) Execute(ctx context.Context, req dto.CreateBoardRequest) (*dto.BoardDTO, error) {
	board, err := uc.boardService.CreateBoard(ctx, strings.TrimSpace(req.Name), req.Description, req.Lists)
	if err != nil {
		return nil, err
	}
	return dto.BoardToDTO(board), nil
}
