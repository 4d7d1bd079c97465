package dto

import (
	"time"

	"teamboard/internal/domain/entity"
)

// CardDTO represents a card data transfer object
type CardDTO struct {
	ID          string                 `json:"id" yaml:"id"`
	ListID      string                 `json:"list_id" yaml:"list_id"`
	Position    float64                `json:"position" yaml:"position"`
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    string                 `json:"priority" yaml:"priority"`
	Checklist   []entity.ChecklistItem `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Assignees   []string               `json:"assignees,omitempty" yaml:"assignees,omitempty"`
	CreatedAt   time.Time              `json:"created_at" yaml:"created_at"`
	ModifiedAt  time.Time              `json:"modified_at" yaml:"modified_at"`

	// ClientID echoes the temporary id of the create that produced the card
	ClientID string `json:"client_id,omitempty" yaml:"-"`
}

// ItemID implements store.Item
func (c CardDTO) ItemID() string { return c.ID }

// ItemContainerID implements store.Item
func (c CardDTO) ItemContainerID() string { return c.ListID }

// ItemPosition implements store.Item
func (c CardDTO) ItemPosition() float64 { return c.Position }

// Placed returns a copy of the card in listID at position
func (c CardDTO) Placed(listID string, position float64) CardDTO {
	c.ListID = listID
	c.Position = position
	return c
}

// CardToDTO converts a Card entity to its DTO
func CardToDTO(card *entity.Card) CardDTO {
	return CardDTO{
		ID:          card.ID(),
		ListID:      card.ListID(),
		Position:    card.Position(),
		Title:       card.Title(),
		Description: card.Description(),
		Priority:    card.Priority().String(),
		Checklist:   card.Checklist(),
		Assignees:   card.Assignees(),
		CreatedAt:   card.CreatedAt(),
		ModifiedAt:  card.ModifiedAt(),
	}
}

// CardsToDTO converts cards preserving their order
func CardsToDTO(cards []*entity.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardToDTO(c))
	}
	return out
}

// CreateCardRequest represents a request to create a card.
// ClientID is the temporary id the client used for its optimistic entry;
// the server echoes it back and treats repeats as the same create.
type CreateCardRequest struct {
	ClientID    string                 `json:"client_id,omitempty"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Priority    string                 `json:"priority,omitempty"`
	Checklist   []entity.ChecklistItem `json:"checklist,omitempty"`
	Assignees   []string               `json:"assignees,omitempty"`
	Position    *float64               `json:"position,omitempty"`
}

// UpdateCardRequest represents a request to update a card.
// Nil fields are left unchanged.
type UpdateCardRequest struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Priority    *string                 `json:"priority,omitempty"`
	Checklist   *[]entity.ChecklistItem `json:"checklist,omitempty"`
	Assignees   *[]string               `json:"assignees,omitempty"`
	Position    *float64                `json:"position,omitempty"`
}

// Apply returns a copy of card with the request's fields applied
func (r UpdateCardRequest) Apply(card CardDTO) CardDTO {
	if r.Title != nil {
		card.Title = *r.Title
	}
	if r.Description != nil {
		card.Description = *r.Description
	}
	if r.Priority != nil {
		card.Priority = *r.Priority
	}
	if r.Checklist != nil {
		card.Checklist = append([]entity.ChecklistItem(nil), (*r.Checklist)...)
	}
	if r.Assignees != nil {
		card.Assignees = append([]string(nil), (*r.Assignees)...)
	}
	if r.Position != nil {
		card.Position = *r.Position
	}
	return card
}

// MoveCardsRequest moves one card within or across lists in a single call.
// FromOrder and ToOrder carry the client's intended end-state orderings of
// both lists so the server can resequence when its positions disagree.
type MoveCardsRequest struct {
	CardID     string   `json:"card_id"`
	FromListID string   `json:"from_list_id"`
	ToListID   string   `json:"to_list_id"`
	Position   float64  `json:"position"`
	FromOrder  []string `json:"from_order,omitempty"`
	ToOrder    []string `json:"to_order,omitempty"`
}

// MoveCardsResult is the server's canonical state after a move
type MoveCardsResult struct {
	Card      CardDTO   `json:"card"`
	FromCards []CardDTO `json:"from_cards"`
	ToCards   []CardDTO `json:"to_cards"`
}
