package filesystem

import (
	"context"
	"fmt"
	"os"
	"sort"

	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/repository"
	"teamboard/internal/infrastructure/persistence/mapper"
	"teamboard/internal/infrastructure/serialization"
	"teamboard/pkg/filesystem"
)

// BoardRepositoryImpl implements BoardRepository using markdown files with
// YAML frontmatter, one directory per board and list.
type BoardRepositoryImpl struct {
	pathBuilder *PathBuilder
}

// NewBoardRepository creates a new filesystem-based board repository
func NewBoardRepository(boardsPath string) *BoardRepositoryImpl {
	return &BoardRepositoryImpl{
		pathBuilder: NewPathBuilder(boardsPath),
	}
}

var _ repository.BoardRepository = (*BoardRepositoryImpl)(nil)

// PathBuilder exposes the layout, used by the change watcher
func (r *BoardRepositoryImpl) PathBuilder() *PathBuilder {
	return r.pathBuilder
}

// Save persists a board to the filesystem
func (r *BoardRepositoryImpl) Save(ctx context.Context, board *entity.Board) error {
	if err := filesystem.EnsureDir(r.pathBuilder.ListsDir(board.ID()), 0755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}

	if err := r.saveBoardMetadata(board); err != nil {
		return fmt.Errorf("failed to save board metadata: %w", err)
	}

	for _, list := range board.Lists() {
		if err := r.saveList(board.ID(), list); err != nil {
			return fmt.Errorf("failed to save list %s: %w", list.ID(), err)
		}
	}

	if err := r.cleanupOldLists(board); err != nil {
		return fmt.Errorf("failed to cleanup old lists: %w", err)
	}

	return nil
}

// FindByID retrieves a board by its ID
func (r *BoardRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Board, error) {
	exists, err := filesystem.Exists(r.pathBuilder.BoardMetadata(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entity.ErrBoardNotFound
	}

	board, err := r.loadBoardMetadata(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load board metadata: %w", err)
	}

	if err := r.loadLists(board); err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}

	return board, nil
}

// FindAll retrieves all boards ordered by ID
func (r *BoardRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Board, error) {
	rootPath := r.pathBuilder.BoardsRoot()

	if err := filesystem.EnsureDir(rootPath, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards directory: %w", err)
	}

	boards := make([]*entity.Board, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		board, err := r.FindByID(ctx, entry.Name())
		if err != nil {
			// Skip boards that can't be loaded
			continue
		}

		boards = append(boards, board)
	}

	sort.Slice(boards, func(i, j int) bool { return boards[i].ID() < boards[j].ID() })
	return boards, nil
}

// Delete removes a board from storage
func (r *BoardRepositoryImpl) Delete(ctx context.Context, id string) error {
	boardDir := r.pathBuilder.BoardDir(id)

	exists, err := filesystem.Exists(boardDir)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrBoardNotFound
	}

	return filesystem.RemoveDir(boardDir)
}

// Exists checks if a board exists
func (r *BoardRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return filesystem.Exists(r.pathBuilder.BoardMetadata(id))
}

// FindByName finds a board by its name
func (r *BoardRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Board, error) {
	return r.findFirst(ctx, entity.ErrBoardNotFound, func(b *entity.Board) bool {
		return b.Name() == name
	})
}

// FindByListID finds the board that holds a list
func (r *BoardRepositoryImpl) FindByListID(ctx context.Context, listID string) (*entity.Board, error) {
	return r.findFirst(ctx, entity.ErrListNotFound, func(b *entity.Board) bool {
		_, err := b.FindList(listID)
		return err == nil
	})
}

// FindByCardID finds the board that holds a card
func (r *BoardRepositoryImpl) FindByCardID(ctx context.Context, cardID string) (*entity.Board, error) {
	return r.findFirst(ctx, entity.ErrCardNotFound, func(b *entity.Board) bool {
		_, _, err := b.FindCard(cardID)
		return err == nil
	})
}

func (r *BoardRepositoryImpl) findFirst(ctx context.Context, notFound error, match func(*entity.Board) bool) (*entity.Board, error) {
	boards, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, board := range boards {
		if match(board) {
			return board, nil
		}
	}
	return nil, notFound
}

// saveBoardMetadata saves board metadata to board.md
func (r *BoardRepositoryImpl) saveBoardMetadata(board *entity.Board) error {
	rec := mapper.BoardToRecord(board)
	data, err := serialization.MarshalFrontmatter(rec, rec.Description)
	if err != nil {
		return err
	}
	_, err = filesystem.WriteIfChanged(r.pathBuilder.BoardMetadata(board.ID()), data, 0644)
	return err
}

// loadBoardMetadata loads board metadata from board.md
func (r *BoardRepositoryImpl) loadBoardMetadata(boardID string) (*entity.Board, error) {
	data, err := os.ReadFile(r.pathBuilder.BoardMetadata(boardID))
	if err != nil {
		return nil, fmt.Errorf("failed to read board metadata: %w", err)
	}

	var rec mapper.BoardRecord
	body, err := serialization.UnmarshalFrontmatter(data, &rec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board metadata: %w", err)
	}
	rec.Description = body
	if rec.ID == "" {
		rec.ID = boardID
	}

	return mapper.BoardFromRecord(rec)
}

// saveList saves a list and all its cards
func (r *BoardRepositoryImpl) saveList(boardID string, list *entity.List) error {
	if err := filesystem.EnsureDir(r.pathBuilder.CardsDir(boardID, list.ID()), 0755); err != nil {
		return err
	}

	data, err := serialization.MarshalFrontmatter(mapper.ListToRecord(list), "")
	if err != nil {
		return err
	}
	if _, err := filesystem.WriteIfChanged(r.pathBuilder.ListMetadata(boardID, list.ID()), data, 0644); err != nil {
		return err
	}

	for _, card := range list.Cards() {
		if err := r.saveCard(boardID, list.ID(), card); err != nil {
			return fmt.Errorf("failed to save card %s: %w", card.ID(), err)
		}
	}

	if err := r.cleanupOldCards(boardID, list); err != nil {
		return fmt.Errorf("failed to cleanup old cards: %w", err)
	}

	return nil
}

// loadLists loads all lists for a board
func (r *BoardRepositoryImpl) loadLists(board *entity.Board) error {
	entries, err := os.ReadDir(r.pathBuilder.ListsDir(board.ID()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		list, err := r.loadList(board.ID(), entry.Name())
		if err != nil {
			// Skip lists that can't be loaded
			continue
		}

		if err := board.AddList(list); err != nil {
			return err
		}
	}

	return nil
}

// loadList loads a list and its cards
func (r *BoardRepositoryImpl) loadList(boardID, listID string) (*entity.List, error) {
	data, err := os.ReadFile(r.pathBuilder.ListMetadata(boardID, listID))
	if err != nil {
		return nil, fmt.Errorf("failed to read list metadata: %w", err)
	}

	var rec mapper.ListRecord
	if _, err := serialization.UnmarshalFrontmatter(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse list metadata: %w", err)
	}
	rec.ID = listID
	rec.BoardID = boardID

	list, err := mapper.ListFromRecord(rec)
	if err != nil {
		return nil, err
	}

	if err := r.loadCards(boardID, list); err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	return list, nil
}

// saveCard writes a card file; the description is the markdown body
func (r *BoardRepositoryImpl) saveCard(boardID, listID string, card *entity.Card) error {
	rec := mapper.CardToRecord(card)
	data, err := serialization.MarshalFrontmatter(rec, rec.Description)
	if err != nil {
		return err
	}
	_, err = filesystem.WriteIfChanged(r.pathBuilder.CardFile(boardID, listID, card.ID()), data, 0644)
	return err
}

// loadCards loads all cards for a list
func (r *BoardRepositoryImpl) loadCards(boardID string, list *entity.List) error {
	entries, err := os.ReadDir(r.pathBuilder.CardsDir(boardID, list.ID()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		cardID, ok := CardIDFromFile(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}

		card, err := r.loadCard(boardID, list.ID(), cardID)
		if err != nil {
			// Skip cards that can't be loaded
			continue
		}

		modified := card.ModifiedAt()
		if err := list.AddCard(card); err != nil {
			return err
		}
		card.RestoreTimestamps(card.CreatedAt(), modified)
	}

	return nil
}

// loadCard loads a single card
func (r *BoardRepositoryImpl) loadCard(boardID, listID, cardID string) (*entity.Card, error) {
	data, err := os.ReadFile(r.pathBuilder.CardFile(boardID, listID, cardID))
	if err != nil {
		return nil, fmt.Errorf("failed to read card: %w", err)
	}

	var rec mapper.CardRecord
	body, err := serialization.UnmarshalFrontmatter(data, &rec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card: %w", err)
	}
	rec.ID = cardID
	rec.ListID = listID
	rec.Description = body

	return mapper.CardFromRecord(rec)
}

// cleanupOldLists removes list directories that no longer exist in the board
func (r *BoardRepositoryImpl) cleanupOldLists(board *entity.Board) error {
	entries, err := os.ReadDir(r.pathBuilder.ListsDir(board.ID()))
	if err != nil {
		return err
	}

	current := make(map[string]bool)
	for _, l := range board.Lists() {
		current[l.ID()] = true
	}

	for _, entry := range entries {
		if !entry.IsDir() || current[entry.Name()] {
			continue
		}
		if err := filesystem.RemoveDir(r.pathBuilder.ListDir(board.ID(), entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// cleanupOldCards removes card files that no longer exist in the list
func (r *BoardRepositoryImpl) cleanupOldCards(boardID string, list *entity.List) error {
	entries, err := os.ReadDir(r.pathBuilder.CardsDir(boardID, list.ID()))
	if err != nil {
		return err
	}

	current := make(map[string]bool)
	for _, c := range list.Cards() {
		current[c.ID()] = true
	}

	for _, entry := range entries {
		cardID, ok := CardIDFromFile(entry.Name())
		if entry.IsDir() || !ok || current[cardID] {
			continue
		}
		if err := os.Remove(r.pathBuilder.CardFile(boardID, list.ID(), cardID)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}
