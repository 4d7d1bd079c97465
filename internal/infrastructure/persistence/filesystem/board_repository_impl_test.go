package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/domain/entity"
)

func newBoard(t *testing.T) *entity.Board {
	t.Helper()
	board, err := entity.NewBoard("team", "Team", "Shared *board*")
	require.NoError(t, err)
	for i, name := range []string{"Todo", "Done"} {
		l, err := entity.NewList("list-"+name, "team", name, float64(i+1)*1000)
		require.NoError(t, err)
		require.NoError(t, board.AddList(l))
	}
	todo, _ := board.FindList("list-Todo")
	for i, title := range []string{"first", "second"} {
		c, err := entity.NewCard("card-"+title, "", title, float64(2-i)*1000)
		require.NoError(t, err)
		require.NoError(t, todo.AddCard(c))
	}
	card, _ := todo.FindCard("card-first")
	card.UpdateDescription("line one\n\nline two")
	card.SetChecklist([]entity.ChecklistItem{{Text: "check", Done: true}})
	return board
}

func TestBoardRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	repo := NewBoardRepository(root)

	require.NoError(t, repo.Save(ctx, newBoard(t)))

	_, err := os.Stat(filepath.Join(root, "team", "lists", "list-Todo", "cards", "card-first.md"))
	require.NoError(t, err)

	board, err := repo.FindByID(ctx, "team")
	require.NoError(t, err)
	assert.Equal(t, "Team", board.Name())
	assert.Equal(t, "Shared *board*", board.Description())

	lists := board.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Todo", lists[0].Name())

	cards := lists[0].Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "second", cards[0].Title())
	assert.Equal(t, 1000.0, cards[0].Position())
	assert.Equal(t, "line one\n\nline two", cards[1].Description())
	assert.Equal(t, []entity.ChecklistItem{{Text: "check", Done: true}}, cards[1].Checklist())
	assert.Equal(t, "list-Todo", cards[1].ListID())
}

func TestBoardRepository_SaveRemovesStaleEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(t.TempDir())
	board := newBoard(t)
	require.NoError(t, repo.Save(ctx, board))

	_, err := board.RemoveList("list-Done")
	require.NoError(t, err)
	todo, _ := board.FindList("list-Todo")
	_, err = todo.RemoveCard("card-first")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, board))

	loaded, err := repo.FindByID(ctx, "team")
	require.NoError(t, err)
	require.Len(t, loaded.Lists(), 1)
	assert.Len(t, loaded.Lists()[0].Cards(), 1)
}

func TestBoardRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(t.TempDir())
	require.NoError(t, repo.Save(ctx, newBoard(t)))

	b, err := repo.FindByListID(ctx, "list-Done")
	require.NoError(t, err)
	assert.Equal(t, "team", b.ID())

	b, err = repo.FindByCardID(ctx, "card-second")
	require.NoError(t, err)
	assert.Equal(t, "team", b.ID())

	b, err = repo.FindByName(ctx, "Team")
	require.NoError(t, err)
	assert.Equal(t, "team", b.ID())

	_, err = repo.FindByCardID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrCardNotFound)
	_, err = repo.FindByListID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrListNotFound)
	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrBoardNotFound)
}

func TestBoardRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(t.TempDir())
	require.NoError(t, repo.Save(ctx, newBoard(t)))

	require.NoError(t, repo.Delete(ctx, "team"))
	exists, err := repo.Exists(ctx, "team")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.Delete(ctx, "team"), entity.ErrBoardNotFound)
}

func TestPathBuilder_BoardIDFromPath(t *testing.T) {
	pb := NewPathBuilder("/data/boards")

	id, ok := pb.BoardIDFromPath("/data/boards/team/lists/l1/cards/c1.md")
	require.True(t, ok)
	assert.Equal(t, "team", id)

	_, ok = pb.BoardIDFromPath("/data/boards")
	assert.False(t, ok)
	_, ok = pb.BoardIDFromPath("/elsewhere/x")
	assert.False(t, ok)
}
