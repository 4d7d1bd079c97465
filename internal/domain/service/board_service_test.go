package service

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
)

type memRepo struct {
	mu     sync.Mutex
	boards map[string]*entity.Board
	saves  int
}

func newMemRepo() *memRepo {
	return &memRepo{boards: make(map[string]*entity.Board)}
}

func (r *memRepo) Save(ctx context.Context, board *entity.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards[board.ID()] = board
	r.saves++
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*entity.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.boards[id]; ok {
		return b, nil
	}
	return nil, entity.ErrBoardNotFound
}

func (r *memRepo) FindAll(ctx context.Context) ([]*entity.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Board, 0, len(r.boards))
	for _, b := range r.boards {
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, id)
	return nil
}

func (r *memRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.boards[id]
	return ok, nil
}

func (r *memRepo) FindByName(ctx context.Context, name string) (*entity.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.boards {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, entity.ErrBoardNotFound
}

func (r *memRepo) FindByListID(ctx context.Context, listID string) (*entity.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.boards {
		if _, err := b.FindList(listID); err == nil {
			return b, nil
		}
	}
	return nil, entity.ErrListNotFound
}

func (r *memRepo) FindByCardID(ctx context.Context, cardID string) (*entity.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.boards {
		if _, _, err := b.FindCard(cardID); err == nil {
			return b, nil
		}
	}
	return nil, entity.ErrCardNotFound
}

func newService() (*BoardService, *memRepo) {
	repo := newMemRepo()
	return NewBoardService(repo, NewValidationService(repo), NewClientIDIndex()), repo
}

// fixture builds board "b" with lists A=[X,Y] and B=[Z].
func fixture(t *testing.T) (*BoardService, map[string]string) {
	t.Helper()
	ctx := context.Background()
	svc, _ := newService()

	board, err := svc.CreateBoard(ctx, "b", "", []string{"A", "B"})
	require.NoError(t, err)
	ids := map[string]string{}
	for _, l := range board.Lists() {
		ids[l.Name()] = l.ID()
	}
	for _, c := range []struct{ list, title string }{{"A", "X"}, {"A", "Y"}, {"B", "Z"}} {
		card, err := svc.CreateCard(ctx, ids[c.list], CardInput{Title: c.title})
		require.NoError(t, err)
		ids[c.title] = card.ID()
	}
	return svc, ids
}

func titles(cards []*entity.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title()
	}
	return out
}

func TestCreateBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("default lists", func(t *testing.T) {
		svc, _ := newService()
		board, err := svc.CreateBoard(ctx, "Team Board", "desc", nil)
		require.NoError(t, err)

		assert.Equal(t, "team-board", board.ID())
		lists := board.Lists()
		require.Len(t, lists, 3)
		assert.Equal(t, "Todo", lists[0].Name())
		assert.Equal(t, 1000.0, lists[0].Position())
		assert.Equal(t, 3000.0, lists[2].Position())
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.CreateBoard(ctx, "Team", "", nil)
		require.NoError(t, err)
		_, err = svc.CreateBoard(ctx, "Team", "", nil)
		assert.ErrorIs(t, err, entity.ErrBoardAlreadyExists)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.CreateBoard(ctx, "  ", "", nil)
		assert.ErrorIs(t, err, entity.ErrEmptyBoardName)
	})
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end", func(t *testing.T) {
		svc, ids := fixture(t)
		board, err := svc.GetBoard(ctx, "b")
		require.NoError(t, err)
		list, err := board.FindList(ids["A"])
		require.NoError(t, err)

		cards := list.Cards()
		assert.Equal(t, []string{"X", "Y"}, titles(cards))
		assert.Equal(t, 1000.0, cards[0].Position())
		assert.Equal(t, 2000.0, cards[1].Position())
	})

	t.Run("colliding position is recomputed", func(t *testing.T) {
		svc, ids := fixture(t)

		card, err := svc.CreateCard(ctx, ids["A"], CardInput{Title: "W", Position: position.Ptr(1000)})
		require.NoError(t, err)
		assert.Equal(t, 1500.0, card.Position())
	})

	t.Run("exhausted gap renumbers the list", func(t *testing.T) {
		svc, ids := fixture(t)
		tight := math.Nextafter(1000, 2000)
		_, err := svc.UpdateCard(ctx, ids["Y"], CardPatch{Position: &tight})
		require.NoError(t, err)

		card, err := svc.CreateCard(ctx, ids["A"], CardInput{Title: "W", Position: position.Ptr(1000)})
		require.NoError(t, err)

		board, _ := svc.GetBoard(ctx, "b")
		list, _ := board.FindList(ids["A"])
		assert.Equal(t, []string{"X", "W", "Y"}, titles(list.Cards()))
		assert.Equal(t, 1500.0, card.Position())
	})

	t.Run("same client id returns the first card", func(t *testing.T) {
		svc, ids := fixture(t)
		in := CardInput{ClientID: "tmp-1", Title: "W"}

		first, err := svc.CreateCard(ctx, ids["B"], in)
		require.NoError(t, err)
		second, err := svc.CreateCard(ctx, ids["B"], in)
		require.NoError(t, err)

		assert.Equal(t, first.ID(), second.ID())
		board, _ := svc.GetBoard(ctx, "b")
		list, _ := board.FindList(ids["B"])
		assert.Len(t, list.Cards(), 2)
	})

	t.Run("validation", func(t *testing.T) {
		svc, ids := fixture(t)

		_, err := svc.CreateCard(ctx, ids["A"], CardInput{Title: ""})
		assert.ErrorIs(t, err, entity.ErrEmptyCardName)

		_, err = svc.CreateCard(ctx, ids["A"], CardInput{Title: "x", Priority: "urgent"})
		assert.ErrorIs(t, err, entity.ErrInvalidPriority)

		_, err = svc.CreateCard(ctx, "missing", CardInput{Title: "x"})
		assert.ErrorIs(t, err, entity.ErrListNotFound)
	})
}

func TestUpdateCard(t *testing.T) {
	svc, ids := fixture(t)
	ctx := context.Background()
	title := "X2"
	prio := "high"
	checklist := []entity.ChecklistItem{{Text: "write tests", Done: true}}

	card, err := svc.UpdateCard(ctx, ids["X"], CardPatch{Title: &title, Priority: &prio, Checklist: &checklist})
	require.NoError(t, err)

	assert.Equal(t, "X2", card.Title())
	assert.Equal(t, entity.PriorityHigh, card.Priority())
	assert.Equal(t, checklist, card.Checklist())

	_, err = svc.UpdateCard(ctx, "missing", CardPatch{})
	assert.ErrorIs(t, err, entity.ErrCardNotFound)
}

func TestMoveCard(t *testing.T) {
	ctx := context.Background()

	t.Run("cross list", func(t *testing.T) {
		svc, ids := fixture(t)

		card, from, to, err := svc.MoveCard(ctx, MoveInput{
			CardID: ids["X"], FromListID: ids["A"], ToListID: ids["B"], Position: 500,
		})
		require.NoError(t, err)

		assert.Equal(t, ids["B"], card.ListID())
		assert.Equal(t, 500.0, card.Position())
		assert.Equal(t, []string{"Y"}, titles(from.Cards()))
		assert.Equal(t, []string{"X", "Z"}, titles(to.Cards()))
	})

	t.Run("declared order wins when positions disagree", func(t *testing.T) {
		svc, ids := fixture(t)
		_, err := svc.CreateCard(ctx, ids["B"], CardInput{Title: "W"})
		require.NoError(t, err)
		board, _ := svc.GetBoard(ctx, "b")
		list, _ := board.FindList(ids["B"])
		w := list.Cards()[1].ID()

		_, _, to, err := svc.MoveCard(ctx, MoveInput{
			CardID:   ids["X"],
			ToListID: ids["B"],
			Position: 500,
			ToOrder:  []string{ids["Z"], ids["X"], w},
		})
		require.NoError(t, err)

		cards := to.Cards()
		assert.Equal(t, []string{"Z", "X", "W"}, titles(cards))
		assert.Equal(t, []float64{1000, 2000, 3000},
			[]float64{cards[0].Position(), cards[1].Position(), cards[2].Position()})
	})

	t.Run("unknown target list leaves card in place", func(t *testing.T) {
		svc, ids := fixture(t)

		_, _, _, err := svc.MoveCard(ctx, MoveInput{CardID: ids["X"], ToListID: "nope", Position: 1})
		assert.ErrorIs(t, err, entity.ErrListNotFound)

		board, _ := svc.GetBoard(ctx, "b")
		_, list, err := board.FindCard(ids["X"])
		require.NoError(t, err)
		assert.Equal(t, ids["A"], list.ID())
	})

	t.Run("non finite position", func(t *testing.T) {
		svc, ids := fixture(t)
		_, _, _, err := svc.MoveCard(ctx, MoveInput{CardID: ids["X"], ToListID: ids["B"], Position: math.Inf(1)})
		assert.ErrorIs(t, err, entity.ErrInvalidPosition)
	})
}

func TestLists(t *testing.T) {
	ctx := context.Background()

	t.Run("create with client id is idempotent", func(t *testing.T) {
		svc, _ := fixture(t)

		first, err := svc.CreateList(ctx, "b", "tmp-l", "C", nil)
		require.NoError(t, err)
		second, err := svc.CreateList(ctx, "b", "tmp-l", "C", nil)
		require.NoError(t, err)

		assert.Equal(t, first.ID(), second.ID())
		assert.Equal(t, 3000.0, first.Position())
	})

	t.Run("rename to existing name", func(t *testing.T) {
		svc, ids := fixture(t)
		name := "b"
		_, err := svc.UpdateList(ctx, ids["A"], &name, nil)
		assert.ErrorIs(t, err, entity.ErrListAlreadyExists)
	})

	t.Run("reorder resequences", func(t *testing.T) {
		svc, ids := fixture(t)

		lists, err := svc.ReorderLists(ctx, "b", []string{ids["B"], ids["A"]})
		require.NoError(t, err)
		require.Len(t, lists, 2)
		assert.Equal(t, ids["B"], lists[0].ID())
		assert.Equal(t, 1000.0, lists[0].Position())
		assert.Equal(t, 2000.0, lists[1].Position())
	})

	t.Run("reorder keeps unnamed lists after named ones", func(t *testing.T) {
		svc, ids := fixture(t)

		lists, err := svc.ReorderLists(ctx, "b", []string{ids["B"], "unknown"})
		require.NoError(t, err)
		assert.Equal(t, ids["B"], lists[0].ID())
		assert.Equal(t, ids["A"], lists[1].ID())
	})

	t.Run("reorder rejects duplicates", func(t *testing.T) {
		svc, ids := fixture(t)
		_, err := svc.ReorderLists(ctx, "b", []string{ids["A"], ids["A"]})
		assert.ErrorIs(t, err, entity.ErrInvalidListOrder)
	})

	t.Run("delete removes cards", func(t *testing.T) {
		svc, ids := fixture(t)
		require.NoError(t, svc.DeleteList(ctx, ids["A"]))

		_, err := svc.UpdateCard(ctx, ids["X"], CardPatch{})
		assert.ErrorIs(t, err, entity.ErrCardNotFound)
		assert.ErrorIs(t, svc.DeleteList(ctx, ids["A"]), entity.ErrListNotFound)
	})
}

func TestDeleteCard(t *testing.T) {
	svc, ids := fixture(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteCard(ctx, ids["X"]))
	assert.ErrorIs(t, svc.DeleteCard(ctx, ids["X"]), entity.ErrCardNotFound)
}
