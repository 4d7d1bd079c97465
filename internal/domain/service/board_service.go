package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
	"teamboard/internal/domain/repository"
	"teamboard/pkg/slug"
)

// DefaultListNames are created on a new board when no lists are given
var DefaultListNames = []string{"Todo", "In Progress", "Done"}

// CardInput holds the fields of a new card
type CardInput struct {
	ClientID    string
	Title       string
	Description string
	Priority    string
	Checklist   []entity.ChecklistItem
	Assignees   []string
	Position    *float64
}

// CardPatch holds optional card changes; nil fields are left alone
type CardPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Checklist   *[]entity.ChecklistItem
	Assignees   *[]string
	Position    *float64
}

// MoveInput describes a card move and the orders the client expects
// both lists to end up in.
type MoveInput struct {
	CardID     string
	FromListID string
	ToListID   string
	Position   float64
	FromOrder  []string
	ToOrder    []string
}

// BoardService provides high-level domain operations for boards.
// It is the authority on ids and positions: every mutation loads the
// board, applies the change and saves it under one lock.
type BoardService struct {
	boardRepo         repository.BoardRepository
	validationService *ValidationService
	clientIDs         *ClientIDIndex
	mu                sync.Mutex
}

// NewBoardService creates a new BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	validationService *ValidationService,
	clientIDs *ClientIDIndex,
) *BoardService {
	return &BoardService{
		boardRepo:         boardRepo,
		validationService: validationService,
		clientIDs:         clientIDs,
	}
}

// ListBoards returns every board
func (s *BoardService) ListBoards(ctx context.Context) ([]*entity.Board, error) {
	return s.boardRepo.FindAll(ctx)
}

// GetBoard returns one board with its lists and cards
func (s *BoardService) GetBoard(ctx context.Context, boardID string) (*entity.Board, error) {
	return s.boardRepo.FindByID(ctx, boardID)
}

// CreateBoard creates a new board. A nil listNames gets DefaultListNames.
func (s *BoardService) CreateBoard(ctx context.Context, name, description string, listNames []string) (*entity.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := s.validationService.ValidateBoardName(ctx, name); err != nil {
		return nil, err
	}
	if err := s.validationService.ValidateUniqueBoardName(ctx, name, ""); err != nil {
		return nil, err
	}

	boardID := slug.Generate(name)
	exists, err := s.boardRepo.Exists(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to check board existence: %w", err)
	}
	if exists {
		return nil, entity.ErrBoardAlreadyExists
	}

	board, err := entity.NewBoard(boardID, name, description)
	if err != nil {
		return nil, err
	}

	if listNames == nil {
		listNames = DefaultListNames
	}
	keys := position.Resequence(len(listNames), position.DefaultGap)
	for i, ln := range listNames {
		ln = strings.TrimSpace(ln)
		if err := s.validationService.ValidateListName(ln); err != nil {
			return nil, err
		}
		if err := s.validationService.ValidateUniqueListName(board, ln, ""); err != nil {
			return nil, err
		}
		list, err := entity.NewList(entity.NewID("list"), boardID, ln, keys[i])
		if err != nil {
			return nil, err
		}
		if err := board.AddList(list); err != nil {
			return nil, err
		}
	}

	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes a board with everything on it
func (s *BoardService) DeleteBoard(ctx context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.boardRepo.Exists(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to check board existence: %w", err)
	}
	if !exists {
		return entity.ErrBoardNotFound
	}
	return s.boardRepo.Delete(ctx, boardID)
}

// CreateList adds a list to a board. A retried create with the same
// client id returns the list made the first time.
func (s *BoardService) CreateList(ctx context.Context, boardID, clientID, name string, pos *float64) (*entity.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if listID, ok := s.clientIDs.Lookup(clientID); ok {
		board, err := s.boardRepo.FindByListID(ctx, listID)
		if err != nil {
			return nil, err
		}
		return board.FindList(listID)
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validationService.ValidateListName(name); err != nil {
		return nil, err
	}
	if err := s.validationService.ValidateUniqueListName(board, name, ""); err != nil {
		return nil, err
	}
	if err := s.validationService.ValidatePosition(pos); err != nil {
		return nil, err
	}

	list, err := entity.NewList(entity.NewID("list"), boardID, name, 0)
	if err != nil {
		return nil, err
	}
	s.placeList(board, list, pos)
	if err := board.AddList(list); err != nil {
		return nil, err
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	s.clientIDs.Remember(clientID, list.ID())
	return list, nil
}

// UpdateList renames and/or repositions a list
func (s *BoardService) UpdateList(ctx context.Context, listID string, name *string, pos *float64) (*entity.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardRepo.FindByListID(ctx, listID)
	if err != nil {
		return nil, err
	}
	list, err := board.FindList(listID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		n := strings.TrimSpace(*name)
		if err := s.validationService.ValidateListName(n); err != nil {
			return nil, err
		}
		if err := s.validationService.ValidateUniqueListName(board, n, listID); err != nil {
			return nil, err
		}
		if err := list.Rename(n); err != nil {
			return nil, err
		}
	}
	if pos != nil {
		if err := s.validationService.ValidatePosition(pos); err != nil {
			return nil, err
		}
		s.placeList(board, list, pos)
		board.SortLists()
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return list, nil
}

// DeleteList removes a list and its cards
func (s *BoardService) DeleteList(ctx context.Context, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardRepo.FindByListID(ctx, listID)
	if err != nil {
		return err
	}
	if _, err := board.RemoveList(listID); err != nil {
		return err
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// ReorderLists puts the board's lists in the given order and renumbers
// them. Lists missing from listIDs keep their relative order after the
// named ones; unknown ids are ignored.
func (s *BoardService) ReorderLists(ctx context.Context, boardID string, listIDs []string) ([]*entity.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(listIDs) == 0 {
		return nil, entity.ErrInvalidListOrder
	}
	seen := make(map[string]bool, len(listIDs))
	for _, id := range listIDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate list %s: %w", id, entity.ErrInvalidListOrder)
		}
		seen[id] = true
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	ordered := arrange(board.Lists(), listIDs, func(l *entity.List) string { return l.ID() })
	keys := position.Resequence(len(ordered), position.DefaultGap)
	for i, l := range ordered {
		if err := l.SetPosition(keys[i]); err != nil {
			return nil, err
		}
	}
	board.SortLists()

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return board.Lists(), nil
}

// CreateCard adds a card to a list. A retried create with the same client
// id returns the card made the first time.
func (s *BoardService) CreateCard(ctx context.Context, listID string, in CardInput) (*entity.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cardID, ok := s.clientIDs.Lookup(in.ClientID); ok {
		board, err := s.boardRepo.FindByCardID(ctx, cardID)
		if err != nil {
			return nil, err
		}
		card, _, err := board.FindCard(cardID)
		return card, err
	}

	board, err := s.boardRepo.FindByListID(ctx, listID)
	if err != nil {
		return nil, err
	}
	list, err := board.FindList(listID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if err := s.validationService.ValidateCardTitle(title); err != nil {
		return nil, err
	}
	if err := s.validationService.ValidatePosition(in.Position); err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	card, err := entity.NewCard(entity.NewID("card"), listID, title, 0)
	if err != nil {
		return nil, err
	}
	card.UpdateDescription(in.Description)
	if err := card.UpdatePriority(priority); err != nil {
		return nil, err
	}
	card.SetChecklist(in.Checklist)
	card.SetAssignees(in.Assignees)

	if err := card.Place(listID, s.cardPosition(list, "", in.Position)); err != nil {
		return nil, err
	}
	if err := list.AddCard(card); err != nil {
		return nil, err
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	s.clientIDs.Remember(in.ClientID, card.ID())
	return card, nil
}

// UpdateCard updates card details
func (s *BoardService) UpdateCard(ctx context.Context, cardID string, patch CardPatch) (*entity.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	card, list, err := board.FindCard(cardID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := s.validationService.ValidateCardTitle(title); err != nil {
			return nil, err
		}
		if err := card.UpdateTitle(title); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		card.UpdateDescription(*patch.Description)
	}
	if patch.Priority != nil {
		priority, err := entity.ParsePriority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		if err := card.UpdatePriority(priority); err != nil {
			return nil, err
		}
	}
	if patch.Checklist != nil {
		card.SetChecklist(*patch.Checklist)
	}
	if patch.Assignees != nil {
		card.SetAssignees(*patch.Assignees)
	}
	if patch.Position != nil {
		if err := s.validationService.ValidatePosition(patch.Position); err != nil {
			return nil, err
		}
		if err := card.Place(list.ID(), s.cardPosition(list, cardID, patch.Position)); err != nil {
			return nil, err
		}
		list.SortCards()
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return card, nil
}

// DeleteCard deletes a card from its list
func (s *BoardService) DeleteCard(ctx context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return err
	}
	_, list, err := board.FindCard(cardID)
	if err != nil {
		return err
	}
	if _, err := list.RemoveCard(cardID); err != nil {
		return err
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// MoveCard moves a card within or across lists. The card's current list
// is used as the source even if the caller named another one. When the
// stored order of either list disagrees with the order the caller
// declared, that list is renumbered to match the declaration.
func (s *BoardService) MoveCard(ctx context.Context, in MoveInput) (*entity.Card, *entity.List, *entity.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validationService.ValidatePosition(&in.Position); err != nil {
		return nil, nil, nil, err
	}

	board, err := s.boardRepo.FindByCardID(ctx, in.CardID)
	if err != nil {
		return nil, nil, nil, err
	}
	_, source, err := board.FindCard(in.CardID)
	if err != nil {
		return nil, nil, nil, err
	}
	target, err := board.FindList(in.ToListID)
	if err != nil {
		return nil, nil, nil, err
	}

	pos := s.cardPosition(target, in.CardID, &in.Position)
	card, err := board.MoveCard(in.CardID, target.ID(), pos)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := resequenceCards(target, in.ToOrder); err != nil {
		return nil, nil, nil, err
	}
	if source.ID() != target.ID() {
		if err := resequenceCards(source, in.FromOrder); err != nil {
			return nil, nil, nil, err
		}
	}

	board.Touch()
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save board: %w", err)
	}
	return card, source, target, nil
}

// placeList gives list a position among the board's other lists
func (s *BoardService) placeList(board *entity.Board, list *entity.List, requested *float64) {
	keys := board.ListPositions(list.ID())
	pos, crowded := resolve(keys, requested)
	if crowded {
		rank := rankOf(keys, requested)
		renumberLists(board, list.ID())
		pos = position.Between(board.ListPositions(list.ID()), rank)
	}
	_ = list.SetPosition(pos)
}

// cardPosition returns a free position in list for the card excludeID
func (s *BoardService) cardPosition(list *entity.List, excludeID string, requested *float64) float64 {
	keys := list.CardPositions(excludeID)
	pos, crowded := resolve(keys, requested)
	if !crowded {
		return pos
	}
	ids := make([]string, 0, len(keys))
	for _, c := range list.Cards() {
		if c.ID() != excludeID {
			ids = append(ids, c.ID())
		}
	}
	// Renumbering keeps relative order, so the requested slot is found again
	// by rank rather than by the stale key.
	rank := rankOf(keys, requested)
	renumbered := position.Resequence(len(ids), position.DefaultGap)
	for i, id := range ids {
		c, _ := list.FindCard(id)
		_ = c.Place(list.ID(), renumbered[i])
	}
	list.SortCards()
	return position.Between(renumbered, rank)
}

func renumberLists(board *entity.Board, excludeID string) {
	keys := position.Resequence(len(board.Lists()), position.DefaultGap)
	i := 0
	for _, l := range board.Lists() {
		if l.ID() == excludeID {
			continue
		}
		_ = l.SetPosition(keys[i])
		i++
	}
	board.SortLists()
}

// resolve returns the requested position when it is free, otherwise a
// position right after the sibling it collides with. A nil request means
// the end of the sequence. crowded is true when no float64 fits between
// the neighbours and the sequence must be renumbered first.
func resolve(keys []float64, requested *float64) (float64, bool) {
	if requested == nil {
		return position.Between(keys, len(keys)), false
	}
	rank := rankOf(keys, requested)
	if rank == 0 || keys[rank-1] != *requested {
		return *requested, false
	}
	if rank < len(keys) && position.Exhausted(keys[rank-1], keys[rank]) {
		return 0, true
	}
	return position.Between(keys, rank), false
}

// rankOf counts keys <= requested
func rankOf(keys []float64, requested *float64) int {
	if requested == nil {
		return len(keys)
	}
	n := 0
	for _, k := range keys {
		if k <= *requested {
			n++
		}
	}
	return n
}

// resequenceCards renumbers list when its order differs from declared
func resequenceCards(list *entity.List, declared []string) error {
	if len(declared) == 0 {
		return nil
	}
	cards := list.Cards()
	ordered := arrange(cards, declared, func(c *entity.Card) string { return c.ID() })
	same := true
	for i := range cards {
		if cards[i] != ordered[i] {
			same = false
			break
		}
	}
	if same {
		return nil
	}

	keys := position.Resequence(len(ordered), position.DefaultGap)
	for i, c := range ordered {
		if err := c.Place(list.ID(), keys[i]); err != nil {
			return err
		}
	}
	list.SortCards()
	return nil
}

// arrange orders items by declared ids first, then the rest in their
// current order. Unknown ids in declared are skipped.
func arrange[T any](items []T, declared []string, id func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}
	out := make([]T, 0, len(items))
	used := make(map[string]bool, len(items))
	for _, d := range declared {
		if it, ok := byID[d]; ok && !used[d] {
			out = append(out, it)
			used[d] = true
		}
	}
	for _, it := range items {
		if !used[id(it)] {
			out = append(out, it)
		}
	}
	return out
}
