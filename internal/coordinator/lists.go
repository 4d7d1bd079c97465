package coordinator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
)

// CreateList appends a list to a board, or inserts it at req.Position.
func (c *Coordinator) CreateList(boardID string, req dto.CreateListRequest) (*Pending, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id: %w", entity.ErrRequiredField)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entity.ErrEmptyListName
	}
	if req.Position != nil && !finite(*req.Position) {
		return nil, entity.ErrInvalidPosition
	}

	siblings := c.lists.Items(boardID)
	pos := position.Between(positions(siblings, ""), len(siblings))
	if req.Position != nil {
		pos = *req.Position
	}

	tempID := entity.NewTempID()
	known := c.lists.Has(boardID)
	c.lists.InsertOptimistic(boardID, dto.ListDTO{
		ID:        tempID,
		BoardID:   boardID,
		Name:      name,
		Position:  pos,
		CreatedAt: time.Now(),
	})

	req.ClientID = tempID
	req.Name = name
	req.Position = position.Ptr(pos)

	p := c.pending(ActionCreate, KindList, tempID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.CreateList(ctx, boardID, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		confirmed := data.(*dto.ListDTO)
		out.ConfirmedID = confirmed.ID
		if c.exhume(tempID) {
			out.FollowUp = c.compensateList(confirmed.ID)
			return
		}
		c.lists.ReplaceItem(boardID, tempID, confirmed.WithoutCards())
		c.cards.SetContainerItems(confirmed.ID, confirmed.Cards)
	}
	p.rollback = func() bool {
		if c.exhume(tempID) {
			return false
		}
		c.lists.RemoveItem(boardID, tempID)
		dropIfCreated(c.lists, boardID, known)
		return true
	}
	return p, nil
}

// UpdateList renames or repositions a confirmed list.
func (c *Coordinator) UpdateList(listID string, req dto.UpdateListRequest) (*Pending, error) {
	if entity.IsTempID(listID) {
		return nil, fmt.Errorf("failed to update list %s: %w", listID, ErrItemPending)
	}
	previous, boardID, _, ok := c.lists.Locate(listID)
	if !ok {
		return nil, fmt.Errorf("failed to update list %s: %w", listID, entity.ErrListNotFound)
	}
	if req.Name != nil {
		n := strings.TrimSpace(*req.Name)
		if n == "" {
			return nil, entity.ErrEmptyListName
		}
		req.Name = &n
	}
	if req.Position != nil && !finite(*req.Position) {
		return nil, entity.ErrInvalidPosition
	}

	c.lists.UpdateItem(boardID, req.Apply(previous))

	p := c.pending(ActionUpdate, KindList, listID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.UpdateList(ctx, listID, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		confirmed := data.(*dto.ListDTO).WithoutCards()
		if !c.lists.ReplaceItem(boardID, listID, confirmed) {
			c.log.Warn("confirmed list no longer in store", zap.String("list_id", listID))
		}
	}
	p.rollback = func() bool {
		c.lists.UpdateItem(boardID, previous)
		return true
	}
	return p, nil
}

// DeleteList removes a list together with its cards.
func (c *Coordinator) DeleteList(listID string) (*Pending, error) {
	previous, boardID, _, ok := c.lists.Locate(listID)
	if !ok {
		return nil, fmt.Errorf("failed to delete list %s: %w", listID, entity.ErrListNotFound)
	}
	cards := c.cards.Items(listID)
	c.lists.RemoveItem(boardID, listID)
	c.cards.DropContainer(listID)

	p := c.pending(ActionDelete, KindList, listID)
	if entity.IsTempID(listID) {
		c.bury(listID)
		return p, nil
	}
	p.call = func(ctx context.Context) (any, error) {
		err := c.remote.DeleteList(ctx, listID)
		if err != nil && isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p.rollback = func() bool {
		if _, _, _, ok := c.lists.Locate(listID); !ok {
			c.lists.InsertOptimistic(boardID, previous)
			c.cards.SetContainerItems(listID, cards)
		}
		return true
	}
	return p, nil
}

// MoveList repositions a list within its board. The remote receives the
// full resulting order and answers with resequenced positions.
func (c *Coordinator) MoveList(listID, boardID string, pos float64) (*Pending, error) {
	if entity.IsTempID(listID) {
		return nil, fmt.Errorf("failed to move list %s: %w", listID, ErrItemPending)
	}
	if !finite(pos) {
		return nil, entity.ErrInvalidPosition
	}
	previous, ok := c.lists.Get(boardID, listID)
	if !ok {
		return nil, fmt.Errorf("failed to move list %s: %w", listID, entity.ErrListNotFound)
	}
	if err := c.lists.MoveItem(listID, boardID, boardID, pos); err != nil {
		return nil, err
	}

	var ids []string
	for _, l := range c.lists.Items(boardID) {
		if entity.IsTempID(l.ID) {
			continue
		}
		ids = append(ids, l.ID)
	}
	req := dto.ReorderListsRequest{ListIDs: ids}

	p := c.pending(ActionMove, KindList, listID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.ReorderLists(ctx, boardID, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		for _, l := range data.([]dto.ListDTO) {
			cur, ok := c.lists.Get(boardID, l.ID)
			if !ok || cur.Position == l.Position {
				continue
			}
			c.lists.UpdateItem(boardID, cur.Placed(boardID, l.Position))
		}
	}
	p.rollback = func() bool {
		cur, ok := c.lists.Get(boardID, listID)
		if !ok || cur.Position != pos {
			c.log.Warn("list moved again before rollback, leaving it in place",
				zap.String("list_id", listID))
			return true
		}
		c.lists.UpdateItem(boardID, cur.Placed(boardID, previous.Position))
		return true
	}
	return p, nil
}

func (c *Coordinator) compensateList(listID string) *Pending {
	p := c.pending(ActionDelete, KindList, listID)
	p.call = func(ctx context.Context) (any, error) {
		err := c.remote.DeleteList(ctx, listID)
		if err != nil && isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p.rollback = func() bool { return true }
	return p
}
