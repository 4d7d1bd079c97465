package list

import (
	"context"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/service"
)

// UpdateListUseCase handles renaming and repositioning lists
type UpdateListUseCase struct {
	boardService *service.BoardService
}

// NewUpdateListUseCase creates a new UpdateListUseCase
func NewUpdateListUseCase(boardService *service.BoardService) *UpdateListUseCase {
	return &UpdateListUseCase{boardService: boardService}
}

// Execute applies the non-nil fields of req
func (uc *UpdateListUseCase) Execute(ctx context.Context, listID string, req dto.UpdateListRequest) (*dto.ListDTO, error) {
	l, err := uc.boardService.UpdateList(ctx, listID, req.Name, req.Position)
	if err != nil {
		return nil, err
	}
	result := dto.ListToDTO(l, false)
	return &result, nil
}
