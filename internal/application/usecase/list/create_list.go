package list

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// CreateListUseCase handles list creation
type CreateListUseCase struct {
	boardService *service.BoardService
}

// NewCreateListUseCase creates a new CreateListUseCase
func NewCreateListUseCase(boardService *service.BoardService) *CreateListUseCase {
	return &CreateListUseCase{boardService: boardService}
}

// Execute creates a list on boardID and echoes the client id
func (uc *CreateListUseCase) Execute(ctx context.Context, boardID string, req dto.CreateListRequest) (*dto.ListDTO, error) {
	l, err := uc.boardService.CreateList(ctx, boardID, req.ClientID, req.Name, req.Position)
	if err != nil {
		return nil, err
	}
	result := dto.ListToDTO(l, false)
	result.ClientID = req.ClientID
	return &result, nil
}
