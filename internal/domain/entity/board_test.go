package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) (*Board, *List, *List) {
	t.Helper()
	board, err := NewBoard("b1", "Board", "")
	require.NoError(t, err)

	todo, err := NewList("l1", "", "Todo", 1000)
	require.NoError(t, err)
	done, err := NewList("l2", "", "Done", 2000)
	require.NoError(t, err)

	require.NoError(t, board.AddList(done))
	require.NoError(t, board.AddList(todo))
	return board, todo, done
}

func TestBoard_ListsSortedByPosition(t *testing.T) {
	board, _, _ := newTestBoard(t)

	lists := board.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Todo", lists[0].Name())
	assert.Equal(t, "Done", lists[1].Name())
	assert.Equal(t, "b1", lists[0].BoardID())
}

func TestBoard_AddListRejectsDuplicate(t *testing.T) {
	board, todo, _ := newTestBoard(t)
	assert.ErrorIs(t, board.AddList(todo), ErrListAlreadyExists)
}

func TestBoard_MoveCard(t *testing.T) {
	board, todo, done := newTestBoard(t)

	x, _ := NewCard("x", "", "X", 1000)
	y, _ := NewCard("y", "", "Y", 2000)
	z, _ := NewCard("z", "", "Z", 1000)
	require.NoError(t, todo.AddCard(x))
	require.NoError(t, todo.AddCard(y))
	require.NoError(t, done.AddCard(z))

	moved, err := board.MoveCard("x", "l2", 500)
	require.NoError(t, err)
	assert.Equal(t, "l2", moved.ListID())
	assert.Equal(t, 500.0, moved.Position())

	require.Len(t, todo.Cards(), 1)
	assert.Equal(t, "y", todo.Cards()[0].ID())

	cards := done.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "x", cards[0].ID())
	assert.Equal(t, "z", cards[1].ID())
}

func TestBoard_MoveCardErrors(t *testing.T) {
	board, todo, _ := newTestBoard(t)
	c, _ := NewCard("c", "", "C", 1000)
	require.NoError(t, todo.AddCard(c))

	_, err := board.MoveCard("missing", "l2", 1)
	assert.ErrorIs(t, err, ErrCardNotFound)

	_, err = board.MoveCard("c", "missing", 1)
	assert.ErrorIs(t, err, ErrListNotFound)

	_, err = board.MoveCard("c", "l2", math.NaN())
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, "l1", c.ListID(), "failed move must leave the card in place")
}

func TestList_PositionConflict(t *testing.T) {
	_, todo, _ := newTestBoard(t)
	c, _ := NewCard("c", "", "C", 1000)
	require.NoError(t, todo.AddCard(c))

	assert.True(t, todo.HasPositionConflict(1000, "other"))
	assert.False(t, todo.HasPositionConflict(1000, "c"))
	assert.Equal(t, []float64{}, todo.CardPositions("c"))
}

func TestCard_Validation(t *testing.T) {
	_, err := NewCard("", "l1", "title", 1)
	assert.ErrorIs(t, err, ErrInvalidCardID)

	_, err = NewCard("c", "l1", "", 1)
	assert.ErrorIs(t, err, ErrEmptyCardName)

	c, err := NewCard("c", "l1", "title", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, c.UpdatePriority(Priority("urgent")), ErrInvalidPriority)

	c.SetAssignees([]string{"ann", "", "ann", "bob"})
	assert.Equal(t, []string{"ann", "bob"}, c.Assignees())
	assert.True(t, IsValidation(ErrEmptyCardName))
	assert.True(t, IsNotFound(ErrListNotFound))
}

func TestTempID(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))
	assert.False(t, IsTempID(NewID("card")))
}
