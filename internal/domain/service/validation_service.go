package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/repository"
)

// ValidationService provides validation rules shared by board operations
type ValidationService struct {
	boardRepo repository.BoardRepository
}

// NewValidationService creates a new ValidationService
func NewValidationService(boardRepo repository.BoardRepository) *ValidationService {
	return &ValidationService{boardRepo: boardRepo}
}

// ValidateBoardName validates a board name
func (s *ValidationService) ValidateBoardName(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return entity.ErrEmptyBoardName
	}
	return nil
}

// ValidateUniqueBoardName checks that no other board uses name
func (s *ValidationService) ValidateUniqueBoardName(ctx context.Context, name, excludeID string) error {
	existing, err := s.boardRepo.FindByName(ctx, name)
	if err != nil {
		if entity.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check board name: %w", err)
	}
	if existing.ID() != excludeID {
		return entity.ErrBoardAlreadyExists
	}
	return nil
}

// ValidateListName validates a list name
func (s *ValidationService) ValidateListName(name string) error {
	if strings.TrimSpace(name) == "" {
		return entity.ErrEmptyListName
	}
	return nil
}

// ValidateUniqueListName checks that no other list on the board uses name
func (s *ValidationService) ValidateUniqueListName(board *entity.Board, name, excludeID string) error {
	for _, l := range board.Lists() {
		if l.ID() != excludeID && strings.EqualFold(l.Name(), name) {
			return entity.ErrListAlreadyExists
		}
	}
	return nil
}

// ValidateCardTitle validates a card title
func (s *ValidationService) ValidateCardTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return entity.ErrEmptyCardName
	}
	return nil
}

// ValidatePosition rejects NaN and infinities
func (s *ValidationService) ValidatePosition(position *float64) error {
	if position == nil {
		return nil
	}
	if math.IsNaN(*position) || math.IsInf(*position, 0) {
		return entity.ErrInvalidPosition
	}
	return nil
}
