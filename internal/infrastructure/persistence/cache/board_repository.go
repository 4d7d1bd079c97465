// Package cache keeps loaded boards in memory in front of a slower
// repository. Entries are clones so callers may mutate what they get back.
package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"teamboard/internal/common/logger"
	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/repository"
	"teamboard/internal/infrastructure/persistence/mapper"
)

// BoardRepository caches boards by ID
type BoardRepository struct {
	inner repository.BoardRepository
	log   *logger.Logger

	mu     sync.RWMutex
	boards map[string]*entity.Board
}

var _ repository.BoardRepository = (*BoardRepository)(nil)

// NewBoardRepository wraps inner with a board cache
func NewBoardRepository(inner repository.BoardRepository, log *logger.Logger) *BoardRepository {
	return &BoardRepository{
		inner:  inner,
		log:    log.WithFields(zap.String("component", "board-cache")),
		boards: make(map[string]*entity.Board),
	}
}

// Invalidate drops the cached copy of a board
func (r *BoardRepository) Invalidate(boardID string) {
	r.mu.Lock()
	_, ok := r.boards[boardID]
	delete(r.boards, boardID)
	r.mu.Unlock()
	if ok {
		r.log.Debug("board invalidated", zap.String("board_id", boardID))
	}
}

// InvalidateAll empties the cache
func (r *BoardRepository) InvalidateAll() {
	r.mu.Lock()
	r.boards = make(map[string]*entity.Board)
	r.mu.Unlock()
}

// Cached reports whether a board is currently held in memory
func (r *BoardRepository) Cached(boardID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.boards[boardID]
	return ok
}

func (r *BoardRepository) get(boardID string) (*entity.Board, bool) {
	r.mu.RLock()
	board, ok := r.boards[boardID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	clone, err := mapper.Clone(board)
	if err != nil {
		r.log.Warn("failed to clone cached board", zap.String("board_id", boardID), zap.Error(err))
		r.Invalidate(boardID)
		return nil, false
	}
	return clone, true
}

func (r *BoardRepository) put(board *entity.Board) {
	clone, err := mapper.Clone(board)
	if err != nil {
		r.log.Warn("failed to cache board", zap.String("board_id", board.ID()), zap.Error(err))
		return
	}
	r.mu.Lock()
	r.boards[board.ID()] = clone
	r.mu.Unlock()
}

// Save writes through and refreshes the cached copy
func (r *BoardRepository) Save(ctx context.Context, board *entity.Board) error {
	if err := r.inner.Save(ctx, board); err != nil {
		r.Invalidate(board.ID())
		return err
	}
	r.put(board)
	return nil
}

// FindByID serves from cache, loading on a miss
func (r *BoardRepository) FindByID(ctx context.Context, id string) (*entity.Board, error) {
	if board, ok := r.get(id); ok {
		return board, nil
	}
	board, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.put(board)
	return board, nil
}

// FindAll always reads the underlying store and refreshes the cache
func (r *BoardRepository) FindAll(ctx context.Context) ([]*entity.Board, error) {
	boards, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.boards = make(map[string]*entity.Board, len(boards))
	r.mu.Unlock()
	for _, b := range boards {
		r.put(b)
	}
	return boards, nil
}

// Delete removes the board and its cached copy
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	r.Invalidate(id)
	return r.inner.Delete(ctx, id)
}

// Exists checks the cache before the underlying store
func (r *BoardRepository) Exists(ctx context.Context, id string) (bool, error) {
	if r.Cached(id) {
		return true, nil
	}
	return r.inner.Exists(ctx, id)
}

// FindByName finds a board by its name
func (r *BoardRepository) FindByName(ctx context.Context, name string) (*entity.Board, error) {
	return r.find(ctx, func(b *entity.Board) bool { return b.Name() == name },
		func() (*entity.Board, error) { return r.inner.FindByName(ctx, name) })
}

// FindByListID finds the board that holds a list
func (r *BoardRepository) FindByListID(ctx context.Context, listID string) (*entity.Board, error) {
	return r.find(ctx, func(b *entity.Board) bool {
		_, err := b.FindList(listID)
		return err == nil
	}, func() (*entity.Board, error) { return r.inner.FindByListID(ctx, listID) })
}

// FindByCardID finds the board that holds a card
func (r *BoardRepository) FindByCardID(ctx context.Context, cardID string) (*entity.Board, error) {
	return r.find(ctx, func(b *entity.Board) bool {
		_, _, err := b.FindCard(cardID)
		return err == nil
	}, func() (*entity.Board, error) { return r.inner.FindByCardID(ctx, cardID) })
}

func (r *BoardRepository) find(ctx context.Context, match func(*entity.Board) bool, load func() (*entity.Board, error)) (*entity.Board, error) {
	r.mu.RLock()
	var hit string
	for id, b := range r.boards {
		if match(b) {
			hit = id
			break
		}
	}
	r.mu.RUnlock()

	if hit != "" {
		if board, ok := r.get(hit); ok {
			return board, nil
		}
	}

	board, err := load()
	if err != nil {
		return nil, err
	}
	r.put(board)
	return board, nil
}
