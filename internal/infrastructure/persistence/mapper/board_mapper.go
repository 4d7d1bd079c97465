package mapper

import (
	"fmt"
	"time"

	"teamboard/internal/domain/entity"
)

// BoardRecord represents board storage format
type BoardRecord struct {
	ID          string    `yaml:"id" db:"id"`
	Name        string    `yaml:"name" db:"name"`
	Description string    `yaml:"-" db:"description"`
	Created     time.Time `yaml:"created" db:"created_at"`
	Modified    time.Time `yaml:"modified" db:"modified_at"`
}

// BoardSnapshot is a board flattened into records. Lists and cards are in
// position order.
type BoardSnapshot struct {
	Board BoardRecord
	Lists []ListRecord
	Cards []CardRecord
}

// BoardToRecord converts a Board entity to storage format
func BoardToRecord(board *entity.Board) BoardRecord {
	return BoardRecord{
		ID:          board.ID(),
		Name:        board.Name(),
		Description: board.Description(),
		Created:     board.CreatedAt(),
		Modified:    board.ModifiedAt(),
	}
}

// BoardFromRecord converts storage format to a Board entity without lists
func BoardFromRecord(rec BoardRecord) (*entity.Board, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("missing board ID")
	}
	name := rec.Name
	if name == "" {
		name = rec.ID
	}
	board, err := entity.NewBoard(rec.ID, name, rec.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	board.RestoreTimestamps(rec.Created, rec.Modified)
	return board, nil
}

// Snapshot flattens a board with its lists and cards
func Snapshot(board *entity.Board) BoardSnapshot {
	snap := BoardSnapshot{Board: BoardToRecord(board)}
	for _, l := range board.Lists() {
		snap.Lists = append(snap.Lists, ListToRecord(l))
		for _, c := range l.Cards() {
			snap.Cards = append(snap.Cards, CardToRecord(c))
		}
	}
	return snap
}

// Restore rebuilds a board from a snapshot. Cards whose list is missing
// are dropped.
func Restore(snap BoardSnapshot) (*entity.Board, error) {
	board, err := BoardFromRecord(snap.Board)
	if err != nil {
		return nil, err
	}

	for _, lr := range snap.Lists {
		list, err := ListFromRecord(lr)
		if err != nil {
			return nil, fmt.Errorf("failed to restore list %s: %w", lr.ID, err)
		}
		if err := board.AddList(list); err != nil {
			return nil, err
		}
	}

	for _, cr := range snap.Cards {
		list, err := board.FindList(cr.ListID)
		if err != nil {
			continue
		}
		card, err := CardFromRecord(cr)
		if err != nil {
			return nil, fmt.Errorf("failed to restore card %s: %w", cr.ID, err)
		}
		if err := list.AddCard(card); err != nil {
			return nil, err
		}
		// AddCard touches the card
		card.RestoreTimestamps(cr.Created, cr.Modified)
	}

	return board, nil
}

// Clone deep-copies a board through its snapshot
func Clone(board *entity.Board) (*entity.Board, error) {
	return Restore(Snapshot(board))
}
