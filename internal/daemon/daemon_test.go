package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/application/dto"
	"teamboard/internal/application/usecase/board"
	"teamboard/internal/application/usecase/card"
	"teamboard/internal/application/usecase/list"
	"teamboard/internal/common/logger"
	"teamboard/internal/coordinator"
	"teamboard/internal/domain/service"
	"teamboard/internal/infrastructure/persistence/filesystem"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := filesystem.NewBoardRepository(t.TempDir())
	svc := service.NewBoardService(repo, service.NewValidationService(repo), service.NewClientIDIndex())
	uc := &UseCases{
		ListBoards:   board.NewListBoardsUseCase(svc),
		GetBoard:     board.NewGetBoardUseCase(svc),
		CreateBoard:  board.NewCreateBoardUseCase(svc),
		DeleteBoard:  board.NewDeleteBoardUseCase(svc),
		CreateList:   list.NewCreateListUseCase(svc),
		UpdateList:   list.NewUpdateListUseCase(svc),
		DeleteList:   list.NewDeleteListUseCase(svc),
		ReorderLists: list.NewReorderListsUseCase(svc),
		CreateCard:   card.NewCreateCardUseCase(svc),
		UpdateCard:   card.NewUpdateCardUseCase(svc),
		DeleteCard:   card.NewDeleteCardUseCase(svc),
		MoveCards:    card.NewMoveCardsUseCase(svc),
	}
	return NewRouter(NewHandler(uc, logger.Nop(), time.Second), logger.Nop())
}

func perform(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope[json.RawMessage]) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestHandler_Health(t *testing.T) {
	router := setupRouter(t)
	w, env := perform(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestHandler_CreateBoard(t *testing.T) {
	router := setupRouter(t)

	w, env := perform(t, router, http.MethodPost, "/api/v1/boards", dto.CreateBoardRequest{Name: "Team Board"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var b dto.BoardDTO
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, "team-board", b.ID)
	require.Len(t, b.Lists, 3)
	assert.Equal(t, "Todo", b.Lists[0].Name)

	w, env = perform(t, router, http.MethodPost, "/api/v1/boards", dto.CreateBoardRequest{Name: "Team Board"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestHandler_ErrorMapping(t *testing.T) {
	router := setupRouter(t)
	perform(t, router, http.MethodPost, "/api/v1/boards", dto.CreateBoardRequest{Name: "b"})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing board", http.MethodGet, "/api/v1/boards/nope", nil, http.StatusNotFound},
		{"missing card", http.MethodDelete, "/api/v1/cards/nope", nil, http.StatusNotFound},
		{"empty board name", http.MethodPost, "/api/v1/boards", dto.CreateBoardRequest{Name: " "}, http.StatusBadRequest},
		{"move without target", http.MethodPost, "/api/v1/cards/move", dto.MoveCardsRequest{CardID: "x"}, http.StatusBadRequest},
		{"empty reorder", http.MethodPut, "/api/v1/boards/b/lists/order", dto.ReorderListsRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := perform(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestHandler_MalformedJSON(t *testing.T) {
	router := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/boards", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newClient(t *testing.T) *Client {
	t.Helper()
	ts := httptest.NewServer(setupRouter(t))
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, ts.Client())
}

func TestClient_CardLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)
	require.NoError(t, c.Ping(ctx))

	b, err := c.CreateBoard(ctx, dto.CreateBoardRequest{Name: "Team", Lists: []string{"A", "B"}})
	require.NoError(t, err)
	listA, listB := b.Lists[0].ID, b.Lists[1].ID

	created, err := c.CreateCard(ctx, listA, dto.CreateCardRequest{ClientID: "tmp-1", Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, "tmp-1", created.ClientID)
	assert.Equal(t, listA, created.ListID)

	again, err := c.CreateCard(ctx, listA, dto.CreateCardRequest{ClientID: "tmp-1", Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	title := "X2"
	updated, err := c.UpdateCard(ctx, created.ID, dto.UpdateCardRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "X2", updated.Title)

	moved, err := c.MoveCards(ctx, dto.MoveCardsRequest{
		CardID: created.ID, FromListID: listA, ToListID: listB, Position: 500,
		ToOrder: []string{created.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, listB, moved.Card.ListID)
	assert.Empty(t, moved.FromCards)
	require.Len(t, moved.ToCards, 1)

	require.NoError(t, c.DeleteCard(ctx, created.ID))
	err = c.DeleteCard(ctx, created.ID)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, remoteErr.NotFound())
	assert.Equal(t, "card not found", remoteErr.RemoteMessage())
}

func TestClient_Lists(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	b, err := c.CreateBoard(ctx, dto.CreateBoardRequest{Name: "Team"})
	require.NoError(t, err)

	added, err := c.CreateList(ctx, b.ID, dto.CreateListRequest{ClientID: "tmp-l", Name: "Review"})
	require.NoError(t, err)
	assert.Equal(t, "tmp-l", added.ClientID)

	ids := []string{added.ID}
	for _, l := range b.Lists {
		ids = append(ids, l.ID)
	}
	lists, err := c.ReorderLists(ctx, b.ID, dto.ReorderListsRequest{ListIDs: ids})
	require.NoError(t, err)
	require.Len(t, lists, 4)
	assert.Equal(t, "Review", lists[0].Name)
	assert.Less(t, lists[0].Position, lists[1].Position)

	name := "Done"
	_, err = c.UpdateList(ctx, added.ID, dto.UpdateListRequest{Name: &name})
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusConflict, remoteErr.Status)

	require.NoError(t, c.DeleteList(ctx, added.ID))
	boards, err := c.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, 3, boards[0].ListCount)

	require.NoError(t, c.DeleteBoard(ctx, b.ID))
	_, err = c.GetBoard(ctx, b.ID)
	assert.Error(t, err)
}

// The coordinator against a live daemon: optimistic state is confirmed
// with the server's ids, and failures carry the server's message.
func TestCoordinator_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)
	b, err := c.CreateBoard(ctx, dto.CreateBoardRequest{Name: "Team", Lists: []string{"A", "B"}})
	require.NoError(t, err)

	coord := coordinator.New(c, time.Second, logger.Nop())
	_, err = coord.LoadBoard(ctx, b.ID)
	require.NoError(t, err)
	listA := b.Lists[0].ID

	p, err := coord.CreateCard(listA, dto.CreateCardRequest{Title: "X"})
	require.NoError(t, err)
	out := p.Await(ctx)
	require.NoError(t, out.Err())
	require.NotEmpty(t, out.ConfirmedID)

	cards := coord.Cards().Items(listA)
	require.Len(t, cards, 1)
	assert.Equal(t, out.ConfirmedID, cards[0].ID)

	p, err = coord.CreateCard("missing-list", dto.CreateCardRequest{Title: "Y"})
	require.NoError(t, err)
	out = p.Await(ctx)
	require.Error(t, out.Err())
	assert.Equal(t, "list not found", out.Failure.Message)
	assert.Empty(t, coord.Cards().Items("missing-list"))
}
