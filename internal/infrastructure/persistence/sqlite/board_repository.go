package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/repository"
	"teamboard/internal/infrastructure/persistence/mapper"
)

// BoardRepository implements repository.BoardRepository on SQLite
type BoardRepository struct {
	db     *sqlx.DB
	ownsDB bool
}

var _ repository.BoardRepository = (*BoardRepository)(nil)

// NewBoardRepository opens dbPath and prepares the schema
func NewBoardRepository(dbPath string) (*BoardRepository, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return newBoardRepository(db, true)
}

// NewBoardRepositoryWithDB uses an existing connection (shared ownership)
func NewBoardRepositoryWithDB(db *sqlx.DB) (*BoardRepository, error) {
	return newBoardRepository(db, false)
}

func newBoardRepository(db *sqlx.DB, ownsDB bool) (*BoardRepository, error) {
	repo := &BoardRepository{db: db, ownsDB: ownsDB}
	if err := repo.initSchema(); err != nil {
		if ownsDB {
			if closeErr := db.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close database after schema error: %w", closeErr)
			}
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

// Close closes the database connection if the repository opened it
func (r *BoardRepository) Close() error {
	if !r.ownsDB {
		return nil
	}
	return r.db.Close()
}

func (r *BoardRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		position REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'none',
		position REAL NOT NULL,
		checklist TEXT NOT NULL DEFAULT '[]',
		assignees TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lists_board_id ON lists(board_id);
	CREATE INDEX IF NOT EXISTS idx_cards_list_id ON cards(list_id);
	`
	_, err := r.db.Exec(schema)
	return err
}

// cardRow is the cards table shape; checklist and assignees are JSON text
type cardRow struct {
	ID          string    `db:"id"`
	ListID      string    `db:"list_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Priority    string    `db:"priority"`
	Position    float64   `db:"position"`
	Checklist   string    `db:"checklist"`
	Assignees   string    `db:"assignees"`
	Created     time.Time `db:"created_at"`
	Modified    time.Time `db:"modified_at"`
}

func toCardRow(rec mapper.CardRecord) (cardRow, error) {
	checklist := rec.Checklist
	if checklist == nil {
		checklist = []entity.ChecklistItem{}
	}
	assignees := rec.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	cl, err := json.Marshal(checklist)
	if err != nil {
		return cardRow{}, err
	}
	as, err := json.Marshal(assignees)
	if err != nil {
		return cardRow{}, err
	}
	return cardRow{
		ID:          rec.ID,
		ListID:      rec.ListID,
		Title:       rec.Title,
		Description: rec.Description,
		Priority:    rec.Priority,
		Position:    rec.Position,
		Checklist:   string(cl),
		Assignees:   string(as),
		Created:     rec.Created,
		Modified:    rec.Modified,
	}, nil
}

func (row cardRow) record() (mapper.CardRecord, error) {
	rec := mapper.CardRecord{
		ID:          row.ID,
		ListID:      row.ListID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    row.Priority,
		Position:    row.Position,
		Created:     row.Created,
		Modified:    row.Modified,
	}
	if row.Checklist != "" {
		if err := json.Unmarshal([]byte(row.Checklist), &rec.Checklist); err != nil {
			return rec, fmt.Errorf("invalid checklist for card %s: %w", row.ID, err)
		}
	}
	if row.Assignees != "" {
		if err := json.Unmarshal([]byte(row.Assignees), &rec.Assignees); err != nil {
			return rec, fmt.Errorf("invalid assignees for card %s: %w", row.ID, err)
		}
	}
	return rec, nil
}

// Save replaces the stored board, lists and cards in one transaction
func (r *BoardRepository) Save(ctx context.Context, board *entity.Board) error {
	snap := mapper.Snapshot(board)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO boards (id, name, description, created_at, modified_at)
		VALUES (:id, :name, :description, :created_at, :modified_at)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			modified_at = excluded.modified_at
	`, snap.Board); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	// Cards cascade with their lists
	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE board_id = ?`, board.ID()); err != nil {
		return fmt.Errorf("failed to clear lists: %w", err)
	}

	for _, lr := range snap.Lists {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO lists (id, board_id, name, position, created_at)
			VALUES (:id, :board_id, :name, :position, :created_at)
		`, lr); err != nil {
			return fmt.Errorf("failed to save list %s: %w", lr.ID, err)
		}
	}

	for _, cr := range snap.Cards {
		row, err := toCardRow(cr)
		if err != nil {
			return fmt.Errorf("failed to encode card %s: %w", cr.ID, err)
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO cards (id, list_id, title, description, priority, position, checklist, assignees, created_at, modified_at)
			VALUES (:id, :list_id, :title, :description, :priority, :position, :checklist, :assignees, :created_at, :modified_at)
		`, row); err != nil {
			return fmt.Errorf("failed to save card %s: %w", cr.ID, err)
		}
	}

	return tx.Commit()
}

// FindByID retrieves a board by its ID
func (r *BoardRepository) FindByID(ctx context.Context, id string) (*entity.Board, error) {
	var snap mapper.BoardSnapshot
	err := r.db.GetContext(ctx, &snap.Board, `
		SELECT id, name, description, created_at, modified_at FROM boards WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &snap.Lists, `
		SELECT id, board_id, name, position, created_at
		FROM lists WHERE board_id = ?
		ORDER BY position ASC
	`, id); err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}

	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT c.id, c.list_id, c.title, c.description, c.priority, c.position,
			c.checklist, c.assignees, c.created_at, c.modified_at
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE l.board_id = ?
		ORDER BY c.position ASC
	`, id); err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		snap.Cards = append(snap.Cards, rec)
	}

	return mapper.Restore(snap)
}

// FindAll retrieves all boards ordered by ID
func (r *BoardRepository) FindAll(ctx context.Context) ([]*entity.Board, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM boards ORDER BY id ASC`); err != nil {
		return nil, err
	}
	boards := make([]*entity.Board, 0, len(ids))
	for _, id := range ids {
		board, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load board %s: %w", id, err)
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// Delete removes a board with its lists and cards
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrBoardNotFound
	}
	return nil
}

// Exists checks if a board exists
func (r *BoardRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM boards WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByName finds a board by its name
func (r *BoardRepository) FindByName(ctx context.Context, name string) (*entity.Board, error) {
	return r.findBy(ctx, entity.ErrBoardNotFound, `SELECT id FROM boards WHERE name = ? ORDER BY id LIMIT 1`, name)
}

// FindByListID finds the board that holds a list
func (r *BoardRepository) FindByListID(ctx context.Context, listID string) (*entity.Board, error) {
	return r.findBy(ctx, entity.ErrListNotFound, `SELECT board_id FROM lists WHERE id = ?`, listID)
}

// FindByCardID finds the board that holds a card
func (r *BoardRepository) FindByCardID(ctx context.Context, cardID string) (*entity.Board, error) {
	return r.findBy(ctx, entity.ErrCardNotFound, `
		SELECT l.board_id FROM cards c JOIN lists l ON l.id = c.list_id WHERE c.id = ?
	`, cardID)
}

func (r *BoardRepository) findBy(ctx context.Context, notFound error, query string, arg string) (*entity.Board, error) {
	var boardID string
	err := r.db.GetContext(ctx, &boardID, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, boardID)
}
