package dto

import (
	"time"

	"teamboard/internal/domain/entity"
)

// BoardDTO represents a board with its lists and cards
type BoardDTO struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Lists       []ListDTO `json:"lists" yaml:"lists"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	ModifiedAt  time.Time `json:"modified_at" yaml:"modified_at"`
}

// BoardListDTO is the summary shown when listing boards
type BoardListDTO struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	ListCount   int       `json:"list_count" yaml:"list_count"`
	CardCount   int       `json:"card_count" yaml:"card_count"`
	ModifiedAt  time.Time `json:"modified_at" yaml:"modified_at"`
}

// ListDTO represents a list. Cards is only filled when a whole board is
// transferred; the client store keeps cards in their own sequences.
type ListDTO struct {
	ID        string    `json:"id" yaml:"id"`
	BoardID   string    `json:"board_id" yaml:"board_id"`
	Name      string    `json:"name" yaml:"name"`
	Position  float64   `json:"position" yaml:"position"`
	Cards     []CardDTO `json:"cards,omitempty" yaml:"cards,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	ClientID  string    `json:"client_id,omitempty" yaml:"-"`
}

// ItemID implements store.Item
func (l ListDTO) ItemID() string { return l.ID }

// ItemContainerID implements store.Item
func (l ListDTO) ItemContainerID() string { return l.BoardID }

// ItemPosition implements store.Item
func (l ListDTO) ItemPosition() float64 { return l.Position }

// Placed returns a copy of the list in boardID at position
func (l ListDTO) Placed(boardID string, position float64) ListDTO {
	l.BoardID = boardID
	l.Position = position
	return l
}

// WithoutCards returns a copy of the list with Cards cleared
func (l ListDTO) WithoutCards() ListDTO {
	l.Cards = nil
	return l
}

// BoardToDTO converts a Board entity to its DTO
func BoardToDTO(board *entity.Board) *BoardDTO {
	lists := board.Lists()
	out := &BoardDTO{
		ID:          board.ID(),
		Name:        board.Name(),
		Description: board.Description(),
		Lists:       make([]ListDTO, 0, len(lists)),
		CreatedAt:   board.CreatedAt(),
		ModifiedAt:  board.ModifiedAt(),
	}
	for _, l := range lists {
		out.Lists = append(out.Lists, ListToDTO(l, true))
	}
	return out
}

// BoardToListDTO converts a Board entity to its summary
func BoardToListDTO(board *entity.Board) BoardListDTO {
	return BoardListDTO{
		ID:          board.ID(),
		Name:        board.Name(),
		Description: board.Description(),
		ListCount:   len(board.Lists()),
		CardCount:   board.CardCount(),
		ModifiedAt:  board.ModifiedAt(),
	}
}

// ListToDTO converts a List entity, optionally including its cards
func ListToDTO(list *entity.List, withCards bool) ListDTO {
	out := ListDTO{
		ID:        list.ID(),
		BoardID:   list.BoardID(),
		Name:      list.Name(),
		Position:  list.Position(),
		CreatedAt: list.CreatedAt(),
	}
	if withCards {
		out.Cards = CardsToDTO(list.Cards())
	}
	return out
}

// ListsToDTO converts lists without their cards
func ListsToDTO(lists []*entity.List) []ListDTO {
	out := make([]ListDTO, 0, len(lists))
	for _, l := range lists {
		out = append(out, ListToDTO(l, false))
	}
	return out
}

// CreateBoardRequest represents a request to create a board
type CreateBoardRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Lists       []string `json:"lists,omitempty"`
}

// CreateListRequest represents a request to create a list
type CreateListRequest struct {
	ClientID string   `json:"client_id,omitempty"`
	Name     string   `json:"name"`
	Position *float64 `json:"position,omitempty"`
}

// UpdateListRequest represents a request to update a list
type UpdateListRequest struct {
	Name     *string  `json:"name,omitempty"`
	Position *float64 `json:"position,omitempty"`
}

// Apply returns a copy of list with the request's fields applied
func (r UpdateListRequest) Apply(list ListDTO) ListDTO {
	if r.Name != nil {
		list.Name = *r.Name
	}
	if r.Position != nil {
		list.Position = *r.Position
	}
	return list
}

// ReorderListsRequest carries the full intended order of a board's lists
type ReorderListsRequest struct {
	ListIDs []string `json:"list_ids"`
}
