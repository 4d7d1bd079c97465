package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/application/dto"
	"teamboard/internal/common/logger"
	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
)

type remoteErr struct {
	msg      string
	notFound bool
}

func (e *remoteErr) Error() string         { return "remote: " + e.msg }
func (e *remoteErr) RemoteMessage() string { return e.msg }
func (e *remoteErr) NotFound() bool        { return e.notFound }

// fakeRemote records calls and fails any method named in fail.
type fakeRemote struct {
	mu    sync.Mutex
	seq   int
	calls []string
	fail  map[string]error

	lastMove    dto.MoveCardsRequest
	lastReorder dto.ReorderListsRequest
	deleted     []string
	// createPosition overrides the position returned for created cards.
	createPosition *float64
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{fail: map[string]error{}}
}

func (f *fakeRemote) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeRemote) nextID(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) ListBoards(ctx context.Context) ([]dto.BoardListDTO, error) {
	return nil, f.record("ListBoards")
}

func (f *fakeRemote) GetBoard(ctx context.Context, boardID string) (*dto.BoardDTO, error) {
	if err := f.record("GetBoard"); err != nil {
		return nil, err
	}
	return &dto.BoardDTO{
		ID: boardID,
		Lists: []dto.ListDTO{
			{ID: "B", BoardID: boardID, Position: 2000, Cards: []dto.CardDTO{
				{ID: "Z", ListID: "B", Position: 1000, Title: "Z"},
			}},
			{ID: "A", BoardID: boardID, Position: 1000, Cards: []dto.CardDTO{
				{ID: "Y", ListID: "A", Position: 2000, Title: "Y"},
				{ID: "X", ListID: "A", Position: 1000, Title: "X"},
			}},
		},
	}, nil
}

func (f *fakeRemote) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*dto.BoardDTO, error) {
	return nil, f.record("CreateBoard")
}

func (f *fakeRemote) DeleteBoard(ctx context.Context, boardID string) error {
	return f.record("DeleteBoard")
}

func (f *fakeRemote) CreateList(ctx context.Context, boardID string, req dto.CreateListRequest) (*dto.ListDTO, error) {
	if err := f.record("CreateList"); err != nil {
		return nil, err
	}
	return &dto.ListDTO{ID: f.nextID("list"), BoardID: boardID, Name: req.Name, Position: *req.Position}, nil
}

func (f *fakeRemote) UpdateList(ctx context.Context, listID string, req dto.UpdateListRequest) (*dto.ListDTO, error) {
	if err := f.record("UpdateList"); err != nil {
		return nil, err
	}
	l := dto.ListDTO{ID: listID, BoardID: "board"}
	l = req.Apply(l)
	return &l, nil
}

func (f *fakeRemote) DeleteList(ctx context.Context, listID string) error {
	if err := f.record("DeleteList"); err != nil {
		return err
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, listID)
	f.mu.Unlock()
	return nil
}

func (f *fakeRemote) ReorderLists(ctx context.Context, boardID string, req dto.ReorderListsRequest) ([]dto.ListDTO, error) {
	if err := f.record("ReorderLists"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastReorder = req
	f.mu.Unlock()
	keys := position.Resequence(len(req.ListIDs), position.DefaultGap)
	out := make([]dto.ListDTO, len(req.ListIDs))
	for i, id := range req.ListIDs {
		out[i] = dto.ListDTO{ID: id, BoardID: boardID, Position: keys[i]}
	}
	return out, nil
}

func (f *fakeRemote) CreateCard(ctx context.Context, listID string, req dto.CreateCardRequest) (*dto.CardDTO, error) {
	if err := f.record("CreateCard"); err != nil {
		return nil, err
	}
	pos := *req.Position
	if f.createPosition != nil {
		pos = *f.createPosition
	}
	return &dto.CardDTO{ID: f.nextID("card"), ListID: listID, Title: req.Title, Position: pos}, nil
}

func (f *fakeRemote) UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest) (*dto.CardDTO, error) {
	if err := f.record("UpdateCard"); err != nil {
		return nil, err
	}
	c := req.Apply(dto.CardDTO{ID: cardID, ListID: "A", Position: 1000, Title: "X"})
	return &c, nil
}

func (f *fakeRemote) DeleteCard(ctx context.Context, cardID string) error {
	if err := f.record("DeleteCard"); err != nil {
		return err
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, cardID)
	f.mu.Unlock()
	return nil
}

func (f *fakeRemote) MoveCards(ctx context.Context, req dto.MoveCardsRequest) (*dto.MoveCardsResult, error) {
	if err := f.record("MoveCards"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastMove = req
	f.mu.Unlock()
	keys := position.Resequence(len(req.ToOrder), position.DefaultGap)
	res := &dto.MoveCardsResult{}
	for i, id := range req.ToOrder {
		c := dto.CardDTO{ID: id, ListID: req.ToListID, Position: keys[i], Title: id}
		if id == req.CardID {
			res.Card = c
		}
		res.ToCards = append(res.ToCards, c)
	}
	return res, nil
}

func setup(t *testing.T) (*Coordinator, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	c := New(remote, 0, logger.Nop())
	_, err := c.LoadBoard(context.Background(), "board")
	require.NoError(t, err)
	return c, remote
}

func cardIDs(items []dto.CardDTO) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestLoadBoard_SortsListsAndCards(t *testing.T) {
	c, _ := setup(t)

	lists := c.Lists().Items("board")
	require.Len(t, lists, 2)
	assert.Equal(t, "A", lists[0].ID)
	assert.Nil(t, lists[0].Cards)
	assert.Equal(t, []string{"X", "Y"}, cardIDs(c.Cards().Items("A")))
	assert.Equal(t, []string{"Z"}, cardIDs(c.Cards().Items("B")))
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("appears immediately and is replaced on confirm", func(t *testing.T) {
		c, remote := setup(t)
		remote.createPosition = position.Ptr(2500)

		p, err := c.CreateCard("A", dto.CreateCardRequest{Title: "new"})
		require.NoError(t, err)

		items := c.Cards().Items("A")
		require.Len(t, items, 3)
		assert.True(t, entity.IsTempID(items[2].ID))
		assert.Equal(t, 3000.0, items[2].Position)

		out := p.Await(ctx)
		require.NoError(t, out.Err())
		assert.Equal(t, "card-1", out.ConfirmedID)

		items = c.Cards().Items("A")
		assert.Equal(t, []string{"X", "Y", "card-1"}, cardIDs(items))
		assert.Equal(t, 2500.0, items[2].Position)
	})

	t.Run("failure rolls back and surfaces remote message", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["CreateCard"] = &remoteErr{msg: "list is archived"}
		before := c.Cards().Snapshot()

		p, err := c.CreateCard("A", dto.CreateCardRequest{Title: "new"})
		require.NoError(t, err)
		out := p.Await(ctx)

		require.NotNil(t, out.Failure)
		assert.Equal(t, "list is archived", out.Failure.Message)
		assert.Equal(t, ActionCreate, out.Failure.Action)
		assert.Equal(t, before, c.Cards().Snapshot())
	})

	t.Run("rollback in a list never loaded restores the exact snapshot", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["CreateCard"] = &remoteErr{msg: "list not found", notFound: true}
		before := c.Cards().Snapshot()

		p, err := c.CreateCard("ghost", dto.CreateCardRequest{Title: "new"})
		require.NoError(t, err)
		require.True(t, c.Cards().Has("ghost"))

		out := p.Await(ctx)
		require.NotNil(t, out.Failure)
		assert.Equal(t, before, c.Cards().Snapshot())
		assert.False(t, c.Cards().Has("ghost"))
	})

	t.Run("failure without remote message uses generic text", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["CreateCard"] = errors.New("connection refused")

		p, err := c.CreateCard("A", dto.CreateCardRequest{Title: "new"})
		require.NoError(t, err)
		out := p.Await(ctx)

		require.Error(t, out.Err())
		assert.Equal(t, "Failed to create card", out.Failure.Message)
	})

	t.Run("validation failure changes nothing", func(t *testing.T) {
		c, remote := setup(t)
		version := c.Cards().Version()

		_, err := c.CreateCard("A", dto.CreateCardRequest{Title: "  "})
		assert.ErrorIs(t, err, entity.ErrEmptyCardName)

		_, err = c.CreateCard("A", dto.CreateCardRequest{Title: "x", Priority: "urgent"})
		assert.ErrorIs(t, err, entity.ErrInvalidPriority)

		assert.Equal(t, version, c.Cards().Version())
		assert.Len(t, remote.calls, 1)
	})

	t.Run("explicit position is kept", func(t *testing.T) {
		c, _ := setup(t)

		p, err := c.CreateCard("A", dto.CreateCardRequest{Title: "head", Position: position.Ptr(500)})
		require.NoError(t, err)
		assert.Equal(t, p.ItemID, c.Cards().Items("A")[0].ID)
	})
}

func TestCreateCard_OutOfOrderResponses(t *testing.T) {
	c, _ := setup(t)
	ctx := context.Background()

	first, err := c.CreateCard("A", dto.CreateCardRequest{Title: "first"})
	require.NoError(t, err)
	second, err := c.CreateCard("A", dto.CreateCardRequest{Title: "second"})
	require.NoError(t, err)

	r1 := first.Dispatch(ctx)
	r2 := second.Dispatch(ctx)
	require.NoError(t, c.Settle(r2).Err())
	require.NoError(t, c.Settle(r1).Err())

	items := c.Cards().Items("A")
	assert.Equal(t, []string{"X", "Y", "card-1", "card-2"}, cardIDs(items))
	assert.Equal(t, "first", items[2].Title)
	assert.Equal(t, "second", items[3].Title)
}

func TestDeleteWhileCreateInFlight(t *testing.T) {
	c, remote := setup(t)
	ctx := context.Background()

	create, err := c.CreateCard("A", dto.CreateCardRequest{Title: "oops"})
	require.NoError(t, err)
	res := create.Dispatch(ctx)

	del, err := c.DeleteCard(create.ItemID)
	require.NoError(t, err)
	assert.True(t, del.Local())
	assert.Equal(t, []string{"X", "Y"}, cardIDs(c.Cards().Items("A")))

	out := c.Settle(res)
	require.NoError(t, out.Err())
	require.NotNil(t, out.FollowUp)
	assert.Equal(t, []string{"X", "Y"}, cardIDs(c.Cards().Items("A")))

	follow := out.FollowUp.Await(ctx)
	require.NoError(t, follow.Err())
	assert.Equal(t, []string{"card-1"}, remote.deleted)
}

func TestDeleteWhileCreateInFlight_CreateFails(t *testing.T) {
	c, remote := setup(t)
	remote.fail["CreateCard"] = errors.New("boom")

	create, err := c.CreateCard("A", dto.CreateCardRequest{Title: "oops"})
	require.NoError(t, err)
	_, err = c.DeleteCard(create.ItemID)
	require.NoError(t, err)

	out := create.Await(context.Background())
	assert.Nil(t, out.Failure)
	assert.Equal(t, []string{"X", "Y"}, cardIDs(c.Cards().Items("A")))
}

func TestUpdateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("success takes server record", func(t *testing.T) {
		c, _ := setup(t)
		title := "renamed"

		p, err := c.UpdateCard("X", dto.UpdateCardRequest{Title: &title})
		require.NoError(t, err)
		got, _ := c.Cards().Get("A", "X")
		assert.Equal(t, "renamed", got.Title)

		require.NoError(t, p.Await(ctx).Err())
		got, _ = c.Cards().Get("A", "X")
		assert.Equal(t, "renamed", got.Title)
	})

	t.Run("failure restores previous value", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["UpdateCard"] = errors.New("boom")
		before := c.Cards().Snapshot()
		title := "renamed"

		p, err := c.UpdateCard("X", dto.UpdateCardRequest{Title: &title})
		require.NoError(t, err)
		out := p.Await(ctx)

		assert.Equal(t, "Failed to update card", out.Failure.Message)
		assert.Equal(t, before, c.Cards().Snapshot())
	})

	t.Run("temp id is rejected", func(t *testing.T) {
		c, _ := setup(t)
		create, err := c.CreateCard("A", dto.CreateCardRequest{Title: "new"})
		require.NoError(t, err)
		title := "x"

		_, err = c.UpdateCard(create.ItemID, dto.UpdateCardRequest{Title: &title})
		assert.ErrorIs(t, err, ErrItemPending)

		_, err = c.MoveCard(create.ItemID, "A", "B", 1)
		assert.ErrorIs(t, err, ErrItemPending)
	})

	t.Run("unknown card", func(t *testing.T) {
		c, _ := setup(t)
		_, err := c.UpdateCard("nope", dto.UpdateCardRequest{})
		assert.ErrorIs(t, err, entity.ErrCardNotFound)
	})
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()

	t.Run("failure reinserts at original position", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["DeleteCard"] = &remoteErr{msg: "locked"}
		before := c.Cards().Snapshot()

		p, err := c.DeleteCard("X")
		require.NoError(t, err)
		assert.Equal(t, []string{"Y"}, cardIDs(c.Cards().Items("A")))

		out := p.Await(ctx)
		assert.Equal(t, "locked", out.Failure.Message)
		assert.Equal(t, before, c.Cards().Snapshot())
	})

	t.Run("remote not found counts as deleted", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["DeleteCard"] = &remoteErr{msg: "card not found", notFound: true}

		p, err := c.DeleteCard("X")
		require.NoError(t, err)

		require.NoError(t, p.Await(ctx).Err())
		assert.Equal(t, []string{"Y"}, cardIDs(c.Cards().Items("A")))
	})
}

func TestMoveCard(t *testing.T) {
	ctx := context.Background()

	t.Run("cross list sends one compound call", func(t *testing.T) {
		c, remote := setup(t)

		p, err := c.MoveCard("X", "A", "B", 500)
		require.NoError(t, err)
		assert.Equal(t, []string{"Y"}, cardIDs(c.Cards().Items("A")))
		assert.Equal(t, []string{"X", "Z"}, cardIDs(c.Cards().Items("B")))

		require.NoError(t, p.Await(ctx).Err())
		assert.Equal(t, []string{"GetBoard", "MoveCards"}, remote.calls)
		assert.Equal(t, []string{"Y"}, remote.lastMove.FromOrder)
		assert.Equal(t, []string{"X", "Z"}, remote.lastMove.ToOrder)

		b := c.Cards().Items("B")
		assert.Equal(t, []string{"X", "Z"}, cardIDs(b))
		assert.Equal(t, 1000.0, b[0].Position)
		assert.Equal(t, 2000.0, b[1].Position)
		assert.Equal(t, "X", b[0].Title)
	})

	t.Run("failed move into a list never loaded leaves no trace", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["MoveCards"] = errors.New("boom")
		before := c.Cards().Snapshot()

		p, err := c.MoveCard("X", "A", "C", 500)
		require.NoError(t, err)
		require.NotNil(t, p.Await(ctx).Failure)

		assert.Equal(t, before, c.Cards().Snapshot())
		assert.False(t, c.Cards().Has("C"))
	})

	t.Run("failure moves the card back", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["MoveCards"] = errors.New("boom")
		before := c.Cards().Snapshot()

		p, err := c.MoveCard("X", "A", "B", 500)
		require.NoError(t, err)
		out := p.Await(ctx)

		assert.Equal(t, "Failed to move card", out.Failure.Message)
		assert.Equal(t, before, c.Cards().Snapshot())
	})

	t.Run("invalid position", func(t *testing.T) {
		c, _ := setup(t)
		version := c.Cards().Version()

		_, err := c.MoveCard("X", "A", "B", nan())
		assert.ErrorIs(t, err, entity.ErrInvalidPosition)
		assert.Equal(t, version, c.Cards().Version())
	})
}

func TestLists(t *testing.T) {
	ctx := context.Background()

	t.Run("create appends to board", func(t *testing.T) {
		c, _ := setup(t)

		p, err := c.CreateList("board", dto.CreateListRequest{Name: "Review"})
		require.NoError(t, err)
		lists := c.Lists().Items("board")
		assert.Equal(t, 3000.0, lists[2].Position)

		out := p.Await(ctx)
		require.NoError(t, out.Err())
		_, ok := c.Lists().Get("board", out.ConfirmedID)
		assert.True(t, ok)
	})

	t.Run("move reorders and takes resequenced positions", func(t *testing.T) {
		c, remote := setup(t)

		p, err := c.MoveList("B", "board", 500)
		require.NoError(t, err)
		require.NoError(t, p.Await(ctx).Err())

		assert.Equal(t, []string{"B", "A"}, remote.lastReorder.ListIDs)
		lists := c.Lists().Items("board")
		assert.Equal(t, "B", lists[0].ID)
		assert.Equal(t, 1000.0, lists[0].Position)
		assert.Equal(t, 2000.0, lists[1].Position)
	})

	t.Run("delete failure restores list and cards", func(t *testing.T) {
		c, remote := setup(t)
		remote.fail["DeleteList"] = errors.New("boom")
		lists := c.Lists().Snapshot()
		cards := c.Cards().Items("A")

		p, err := c.DeleteList("A")
		require.NoError(t, err)
		assert.Empty(t, c.Cards().Items("A"))

		out := p.Await(ctx)
		assert.Equal(t, "Failed to delete list", out.Failure.Message)
		assert.Equal(t, lists, c.Lists().Snapshot())
		assert.Equal(t, cards, c.Cards().Items("A"))
	})

	t.Run("rename rejects empty name", func(t *testing.T) {
		c, _ := setup(t)
		empty := " "
		_, err := c.UpdateList("A", dto.UpdateListRequest{Name: &empty})
		assert.ErrorIs(t, err, entity.ErrEmptyListName)
	})
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}
