package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamboard/internal/application/dto"
	"teamboard/internal/application/usecase/board"
	"teamboard/internal/application/usecase/card"
	"teamboard/internal/application/usecase/list"
	"teamboard/internal/common/logger"
	"teamboard/internal/domain/entity"
)

// UseCases are the operations the daemon serves
type UseCases struct {
	ListBoards   *board.ListBoardsUseCase
	GetBoard     *board.GetBoardUseCase
	CreateBoard  *board.CreateBoardUseCase
	DeleteBoard  *board.DeleteBoardUseCase
	CreateList   *list.CreateListUseCase
	UpdateList   *list.UpdateListUseCase
	DeleteList   *list.DeleteListUseCase
	ReorderLists *list.ReorderListsUseCase
	CreateCard   *card.CreateCardUseCase
	UpdateCard   *card.UpdateCardUseCase
	DeleteCard   *card.DeleteCardUseCase
	MoveCards    *card.MoveCardsUseCase
}

// Handler contains the HTTP handlers of the board API
type Handler struct {
	uc      *UseCases
	logger  *logger.Logger
	timeout time.Duration
}

// NewHandler creates a new API handler. Each request runs under timeout
// when it is positive.
func NewHandler(uc *UseCases, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{uc: uc, logger: log, timeout: timeout}
}

func (h *Handler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}

// fail maps domain errors onto HTTP statuses and keeps the message
func (h *Handler) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case entity.IsNotFound(err):
		status = http.StatusNotFound
	case entity.IsValidation(err):
		status = http.StatusBadRequest
	case entity.IsConflict(err):
		status = http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	log := h.logger.WithError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("op", op))
	} else {
		log.Debug("request rejected", zap.String("op", op), zap.Int("status", status))
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// Health reports that the daemon is serving
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

// ListBoards lists board summaries
// GET /api/v1/boards
func (h *Handler) ListBoards(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	boards, err := h.uc.ListBoards.Execute(ctx)
	if err != nil {
		h.fail(c, "list boards", err)
		return
	}
	ok(c, http.StatusOK, boards)
}

// CreateBoard creates a board
// POST /api/v1/boards
func (h *Handler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	b, err := h.uc.CreateBoard.Execute(ctx, req)
	if err != nil {
		h.fail(c, "create board", err)
		return
	}
	ok(c, http.StatusCreated, b)
}

// GetBoard returns a board with its lists and cards
// GET /api/v1/boards/:boardId
func (h *Handler) GetBoard(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	b, err := h.uc.GetBoard.Execute(ctx, c.Param("boardId"))
	if err != nil {
		h.fail(c, "get board", err)
		return
	}
	ok(c, http.StatusOK, b)
}

// DeleteBoard removes a board
// DELETE /api/v1/boards/:boardId
func (h *Handler) DeleteBoard(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.uc.DeleteBoard.Execute(ctx, c.Param("boardId")); err != nil {
		h.fail(c, "delete board", err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// CreateList adds a list to a board
// POST /api/v1/boards/:boardId/lists
func (h *Handler) CreateList(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	l, err := h.uc.CreateList.Execute(ctx, c.Param("boardId"), req)
	if err != nil {
		h.fail(c, "create list", err)
		return
	}
	ok(c, http.StatusCreated, l)
}

// UpdateList renames or repositions a list
// PUT /api/v1/lists/:listId
func (h *Handler) UpdateList(c *gin.Context) {
	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	l, err := h.uc.UpdateList.Execute(ctx, c.Param("listId"), req)
	if err != nil {
		h.fail(c, "update list", err)
		return
	}
	ok(c, http.StatusOK, l)
}

// DeleteList removes a list with its cards
// DELETE /api/v1/lists/:listId
func (h *Handler) DeleteList(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.uc.DeleteList.Execute(ctx, c.Param("listId")); err != nil {
		h.fail(c, "delete list", err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// ReorderLists renumbers a board's lists in the given order
// PUT /api/v1/boards/:boardId/lists/order
func (h *Handler) ReorderLists(c *gin.Context) {
	var req dto.ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	lists, err := h.uc.ReorderLists.Execute(ctx, c.Param("boardId"), req)
	if err != nil {
		h.fail(c, "reorder lists", err)
		return
	}
	ok(c, http.StatusOK, lists)
}

// CreateCard adds a card to a list
// POST /api/v1/lists/:listId/cards
func (h *Handler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	created, err := h.uc.CreateCard.Execute(ctx, c.Param("listId"), req)
	if err != nil {
		h.fail(c, "create card", err)
		return
	}
	ok(c, http.StatusCreated, created)
}

// UpdateCard changes card fields
// PUT /api/v1/cards/:cardId
func (h *Handler) UpdateCard(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	updated, err := h.uc.UpdateCard.Execute(ctx, c.Param("cardId"), req)
	if err != nil {
		h.fail(c, "update card", err)
		return
	}
	ok(c, http.StatusOK, updated)
}

// DeleteCard removes a card
// DELETE /api/v1/cards/:cardId
func (h *Handler) DeleteCard(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.uc.DeleteCard.Execute(ctx, c.Param("cardId")); err != nil {
		h.fail(c, "delete card", err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// MoveCards moves a card within or across lists
// POST /api/v1/cards/move
func (h *Handler) MoveCards(c *gin.Context) {
	var req dto.MoveCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.CardID == "" || req.ToListID == "" {
		badRequest(c, "card_id and to_list_id are required")
		return
	}
	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.uc.MoveCards.Execute(ctx, req)
	if err != nil {
		h.fail(c, "move cards", err)
		return
	}
	ok(c, http.StatusOK, res)
}
