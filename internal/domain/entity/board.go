package entity

import (
	"sort"
	"time"
)

// Board is an ordered container of lists
type Board struct {
	id          string
	name        string
	description string
	lists       []*List
	createdAt   time.Time
	modifiedAt  time.Time
}

// NewBoard creates a new Board entity
func NewBoard(id, name, description string) (*Board, error) {
	if id == "" {
		return nil, ErrRequiredField
	}
	if name == "" {
		return nil, ErrEmptyBoardName
	}

	now := time.Now().UTC()
	return &Board{
		id:          id,
		name:        name,
		description: description,
		lists:       make([]*List, 0),
		createdAt:   now,
		modifiedAt:  now,
	}, nil
}

// ID returns the board ID
func (b *Board) ID() string {
	return b.id
}

// Name returns the board name
func (b *Board) Name() string {
	return b.name
}

// Description returns the board description
func (b *Board) Description() string {
	return b.description
}

// CreatedAt returns when the board was created
func (b *Board) CreatedAt() time.Time {
	return b.createdAt
}

// ModifiedAt returns when the board was last modified
func (b *Board) ModifiedAt() time.Time {
	return b.modifiedAt
}

// RestoreTimestamps sets timestamps loaded from storage
func (b *Board) RestoreTimestamps(createdAt, modifiedAt time.Time) {
	if !createdAt.IsZero() {
		b.createdAt = createdAt
	}
	if !modifiedAt.IsZero() {
		b.modifiedAt = modifiedAt
	}
}

// Touch marks the board as modified
func (b *Board) Touch() {
	b.modifiedAt = time.Now().UTC()
}

// Lists returns the lists ordered by position
func (b *Board) Lists() []*List {
	out := make([]*List, len(b.lists))
	copy(out, b.lists)
	return out
}

// ListPositions returns the ascending list positions, skipping excludeID
func (b *Board) ListPositions(excludeID string) []float64 {
	keys := make([]float64, 0, len(b.lists))
	for _, l := range b.lists {
		if l.id == excludeID {
			continue
		}
		keys = append(keys, l.position)
	}
	return keys
}

// CardCount returns the number of cards across all lists
func (b *Board) CardCount() int {
	n := 0
	for _, l := range b.lists {
		n += len(l.cards)
	}
	return n
}

// FindList returns the list with the given ID
func (b *Board) FindList(listID string) (*List, error) {
	for _, l := range b.lists {
		if l.id == listID {
			return l, nil
		}
	}
	return nil, ErrListNotFound
}

// AddList adds a list to the board keeping position order
func (b *Board) AddList(list *List) error {
	for _, l := range b.lists {
		if l.id == list.id {
			return ErrListAlreadyExists
		}
	}
	list.boardID = b.id
	b.lists = append(b.lists, list)
	b.SortLists()
	return nil
}

// RemoveList removes and returns the list with the given ID
func (b *Board) RemoveList(listID string) (*List, error) {
	for i, l := range b.lists {
		if l.id == listID {
			b.lists = append(b.lists[:i], b.lists[i+1:]...)
			return l, nil
		}
	}
	return nil, ErrListNotFound
}

// HasListPositionConflict reports whether a list other than excludeID
// already holds position.
func (b *Board) HasListPositionConflict(position float64, excludeID string) bool {
	for _, l := range b.lists {
		if l.id != excludeID && l.position == position {
			return true
		}
	}
	return false
}

// SortLists restores position order after a list was repositioned
func (b *Board) SortLists() {
	sort.SliceStable(b.lists, func(i, j int) bool {
		return b.lists[i].position < b.lists[j].position
	})
}

// FindCard locates a card and the list holding it
func (b *Board) FindCard(cardID string) (*Card, *List, error) {
	for _, l := range b.lists {
		if c, err := l.FindCard(cardID); err == nil {
			return c, l, nil
		}
	}
	return nil, nil, ErrCardNotFound
}

// MoveCard moves a card to targetListID at position. The list and position
// change in one step.
func (b *Board) MoveCard(cardID, targetListID string, position float64) (*Card, error) {
	card, source, err := b.FindCard(cardID)
	if err != nil {
		return nil, err
	}
	target, err := b.FindList(targetListID)
	if err != nil {
		return nil, err
	}
	if !isFinite(position) {
		return nil, ErrInvalidPosition
	}

	if _, err := source.RemoveCard(cardID); err != nil {
		return nil, err
	}
	card.position = position
	if err := target.AddCard(card); err != nil {
		return nil, err
	}
	return card, nil
}
