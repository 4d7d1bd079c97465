package entity

import (
	"sort"
	"time"
)

// List is an ordered container of cards within a board
type List struct {
	id        string
	boardID   string
	name      string
	position  float64
	cards     []*Card
	createdAt time.Time
}

// NewList creates a new List entity
func NewList(id, boardID, name string, position float64) (*List, error) {
	if id == "" {
		return nil, ErrRequiredField
	}
	if name == "" {
		return nil, ErrEmptyListName
	}
	if !isFinite(position) {
		return nil, ErrInvalidPosition
	}

	return &List{
		id:        id,
		boardID:   boardID,
		name:      name,
		position:  position,
		cards:     make([]*Card, 0),
		createdAt: time.Now().UTC(),
	}, nil
}

// ID returns the list ID
func (l *List) ID() string {
	return l.id
}

// BoardID returns the owning board ID
func (l *List) BoardID() string {
	return l.boardID
}

// Name returns the list name
func (l *List) Name() string {
	return l.name
}

// Position returns the order key of the list within its board
func (l *List) Position() float64 {
	return l.position
}

// CreatedAt returns when the list was created
func (l *List) CreatedAt() time.Time {
	return l.createdAt
}

// Rename changes the list name
func (l *List) Rename(name string) error {
	if name == "" {
		return ErrEmptyListName
	}
	l.name = name
	return nil
}

// SetPosition changes the order key of the list
func (l *List) SetPosition(position float64) error {
	if !isFinite(position) {
		return ErrInvalidPosition
	}
	l.position = position
	return nil
}

// RestoreCreatedAt sets the creation time loaded from storage
func (l *List) RestoreCreatedAt(createdAt time.Time) {
	if !createdAt.IsZero() {
		l.createdAt = createdAt
	}
}

// Cards returns the cards ordered by position
func (l *List) Cards() []*Card {
	out := make([]*Card, len(l.cards))
	copy(out, l.cards)
	return out
}

// CardPositions returns the ascending positions of the cards, skipping
// the card with excludeID.
func (l *List) CardPositions(excludeID string) []float64 {
	keys := make([]float64, 0, len(l.cards))
	for _, c := range l.cards {
		if c.id == excludeID {
			continue
		}
		keys = append(keys, c.position)
	}
	return keys
}

// FindCard returns the card with the given ID
func (l *List) FindCard(cardID string) (*Card, error) {
	for _, c := range l.cards {
		if c.id == cardID {
			return c, nil
		}
	}
	return nil, ErrCardNotFound
}

// AddCard places the card into this list keeping position order
func (l *List) AddCard(card *Card) error {
	if err := card.Place(l.id, card.position); err != nil {
		return err
	}
	l.cards = append(l.cards, card)
	l.sortCards()
	return nil
}

// RemoveCard removes and returns the card with the given ID
func (l *List) RemoveCard(cardID string) (*Card, error) {
	for i, c := range l.cards {
		if c.id == cardID {
			l.cards = append(l.cards[:i], l.cards[i+1:]...)
			return c, nil
		}
	}
	return nil, ErrCardNotFound
}

// HasPositionConflict reports whether a card other than excludeID already
// holds position.
func (l *List) HasPositionConflict(position float64, excludeID string) bool {
	for _, c := range l.cards {
		if c.id != excludeID && c.position == position {
			return true
		}
	}
	return false
}

// SortCards restores position order after a card was repositioned in place
func (l *List) SortCards() {
	l.sortCards()
}

func (l *List) sortCards() {
	sort.SliceStable(l.cards, func(i, j int) bool {
		return l.cards[i].position < l.cards[j].position
	})
}
