// Package dnd turns drag gestures into moves with allocated positions.
package dnd

import (
	"errors"

	"teamboard/internal/domain/position"
	"teamboard/internal/store"
)

var (
	// ErrNoMove is returned when an item is dropped where it started.
	ErrNoMove = errors.New("item dropped at its original place")
	// ErrInvalidGesture is returned when the source index does not exist.
	ErrInvalidGesture = errors.New("invalid drag source")
)

// Gesture is a completed drag. DestIndex is the item's index in the
// destination once the drag is done, i.e. counted without the dragged item.
type Gesture struct {
	SourceContainer string
	SourceIndex     int
	DestContainer   string
	DestIndex       int
}

// Move is what a gesture means for the store.
type Move struct {
	ItemID   string
	From     string
	To       string
	Position float64
	// Reorder is true when the item stays in its container.
	Reorder bool
}

// Source is anything that can list a container's items in order.
type Source[T store.Item[T]] interface {
	Items(containerID string) []T
}

// Plan computes the move for g. The new position is allocated from the
// destination neighbours at DestIndex, ignoring the dragged item.
func Plan[T store.Item[T]](items Source[T], g Gesture) (Move, error) {
	src := items.Items(g.SourceContainer)
	if g.SourceIndex < 0 || g.SourceIndex >= len(src) {
		return Move{}, ErrInvalidGesture
	}
	same := g.SourceContainer == g.DestContainer
	if same && g.SourceIndex == g.DestIndex {
		return Move{}, ErrNoMove
	}

	dragged := src[g.SourceIndex]
	dest := items.Items(g.DestContainer)
	keys := make([]float64, 0, len(dest))
	for _, it := range dest {
		if it.ItemID() == dragged.ItemID() {
			continue
		}
		keys = append(keys, it.ItemPosition())
	}

	return Move{
		ItemID:   dragged.ItemID(),
		From:     g.SourceContainer,
		To:       g.DestContainer,
		Position: position.Between(keys, g.DestIndex),
		Reorder:  same,
	}, nil
}
