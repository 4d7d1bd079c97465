package dnd

import (
	"teamboard/internal/application/dto"
	"teamboard/internal/coordinator"
)

// Adapter feeds drop events into the coordinator.
type Adapter struct {
	coord *coordinator.Coordinator
}

// NewAdapter creates an Adapter
func NewAdapter(coord *coordinator.Coordinator) *Adapter {
	return &Adapter{coord: coord}
}

// DropCard moves a card as described by g.
func (a *Adapter) DropCard(g Gesture) (*coordinator.Pending, error) {
	m, err := Plan[dto.CardDTO](a.coord.Cards(), g)
	if err != nil {
		return nil, err
	}
	return a.coord.MoveCard(m.ItemID, m.From, m.To, m.Position)
}

// DropList moves a list within its board.
func (a *Adapter) DropList(boardID string, sourceIndex, destIndex int) (*coordinator.Pending, error) {
	m, err := Plan[dto.ListDTO](a.coord.Lists(), Gesture{
		SourceContainer: boardID,
		SourceIndex:     sourceIndex,
		DestContainer:   boardID,
		DestIndex:       destIndex,
	})
	if err != nil {
		return nil, err
	}
	return a.coord.MoveList(m.ItemID, boardID, m.Position)
}
