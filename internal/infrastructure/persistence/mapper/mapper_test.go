package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/domain/entity"
)

func sampleBoard(t *testing.T) *entity.Board {
	t.Helper()
	board, err := entity.NewBoard("team", "Team", "the board")
	require.NoError(t, err)
	todo, err := entity.NewList("list-1", "team", "Todo", 1000)
	require.NoError(t, err)
	done, err := entity.NewList("list-2", "team", "Done", 2000)
	require.NoError(t, err)
	require.NoError(t, board.AddList(done))
	require.NoError(t, board.AddList(todo))

	card, err := entity.NewCard("card-1", "list-1", "Write docs", 1500)
	require.NoError(t, err)
	require.NoError(t, card.UpdatePriority(entity.PriorityHigh))
	card.SetChecklist([]entity.ChecklistItem{{Text: "outline", Done: true}})
	card.SetAssignees([]string{"ana"})
	require.NoError(t, todo.AddCard(card))
	card.RestoreTimestamps(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), time.Date(2024, 2, 2, 3, 4, 5, 0, time.UTC))
	return board
}

func TestSnapshotRestore(t *testing.T) {
	board := sampleBoard(t)

	snap := Snapshot(board)
	require.Len(t, snap.Lists, 2)
	assert.Equal(t, "list-1", snap.Lists[0].ID)
	require.Len(t, snap.Cards, 1)

	restored, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, Snapshot(restored))
}

func TestClone_IsIndependent(t *testing.T) {
	board := sampleBoard(t)

	clone, err := Clone(board)
	require.NoError(t, err)
	_, err = clone.RemoveList("list-2")
	require.NoError(t, err)

	assert.Len(t, board.Lists(), 2)
	assert.Len(t, clone.Lists(), 1)
}

func TestRestore_DropsOrphanCards(t *testing.T) {
	snap := Snapshot(sampleBoard(t))
	snap.Cards[0].ListID = "gone"

	restored, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.CardCount())
}

func TestCardFromRecord_InvalidPriority(t *testing.T) {
	_, err := CardFromRecord(CardRecord{ID: "c", Title: "t", Priority: "urgent"})
	assert.ErrorIs(t, err, entity.ErrInvalidPriority)
}
