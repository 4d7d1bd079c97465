package coordinator

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"teamboard/internal/application/dto"
	"teamboard/internal/domain/entity"
	"teamboard/internal/domain/position"
)

// CreateCard inserts a card with a temporary id at the requested position,
// or at the end of the list when req.Position is nil.
func (c *Coordinator) CreateCard(listID string, req dto.CreateCardRequest) (*Pending, error) {
	if listID == "" {
		return nil, fmt.Errorf("list id: %w", entity.ErrRequiredField)
	}
	if entity.IsTempID(listID) {
		return nil, fmt.Errorf("failed to create card in %s: %w", listID, ErrItemPending)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entity.ErrEmptyCardName
	}
	priority, err := entity.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	if req.Position != nil && !finite(*req.Position) {
		return nil, entity.ErrInvalidPosition
	}

	pos := position.Between(positions(c.cards.Items(listID), ""), len(c.cards.Items(listID)))
	if req.Position != nil {
		pos = *req.Position
	}

	tempID := entity.NewTempID()
	now := time.Now()
	optimistic := dto.CardDTO{
		ID:          tempID,
		ListID:      listID,
		Position:    pos,
		Title:       title,
		Description: req.Description,
		Priority:    priority.String(),
		Checklist:   req.Checklist,
		Assignees:   req.Assignees,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	known := c.cards.Has(listID)
	c.cards.InsertOptimistic(listID, optimistic)

	req.ClientID = tempID
	req.Title = title
	req.Priority = priority.String()
	req.Position = position.Ptr(pos)

	p := c.pending(ActionCreate, KindCard, tempID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.CreateCard(ctx, listID, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		confirmed := data.(*dto.CardDTO)
		out.ConfirmedID = confirmed.ID
		if c.exhume(tempID) {
			out.FollowUp = c.compensateCard(confirmed.ID)
			return
		}
		c.cards.ReplaceItem(listID, tempID, *confirmed)
	}
	p.rollback = func() bool {
		if c.exhume(tempID) {
			return false
		}
		c.cards.RemoveItem(listID, tempID)
		dropIfCreated(c.cards, listID, known)
		return true
	}
	return p, nil
}

// UpdateCard applies req to a confirmed card.
func (c *Coordinator) UpdateCard(cardID string, req dto.UpdateCardRequest) (*Pending, error) {
	if entity.IsTempID(cardID) {
		return nil, fmt.Errorf("failed to update card %s: %w", cardID, ErrItemPending)
	}
	previous, listID, _, ok := c.cards.Locate(cardID)
	if !ok {
		return nil, fmt.Errorf("failed to update card %s: %w", cardID, entity.ErrCardNotFound)
	}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return nil, entity.ErrEmptyCardName
		}
		req.Title = &t
	}
	if req.Priority != nil {
		pr, err := entity.ParsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		s := pr.String()
		req.Priority = &s
	}
	if req.Position != nil && !finite(*req.Position) {
		return nil, entity.ErrInvalidPosition
	}

	updated := req.Apply(previous)
	updated.ModifiedAt = time.Now()
	c.cards.UpdateItem(listID, updated)

	p := c.pending(ActionUpdate, KindCard, cardID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.UpdateCard(ctx, cardID, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		c.reconcileCard(*data.(*dto.CardDTO))
	}
	p.rollback = func() bool {
		if _, cur, _, ok := c.cards.Locate(cardID); ok {
			c.cards.ReplaceItem(cur, cardID, previous)
		}
		return true
	}
	return p, nil
}

// DeleteCard removes a card. Deleting a card whose create is still in
// flight is local only; the create's confirmation is then undone remotely.
func (c *Coordinator) DeleteCard(cardID string) (*Pending, error) {
	previous, listID, _, ok := c.cards.Locate(cardID)
	if !ok {
		return nil, fmt.Errorf("failed to delete card %s: %w", cardID, entity.ErrCardNotFound)
	}
	c.cards.RemoveItem(listID, cardID)

	p := c.pending(ActionDelete, KindCard, cardID)
	if entity.IsTempID(cardID) {
		c.bury(cardID)
		return p, nil
	}
	p.call = func(ctx context.Context) (any, error) {
		err := c.remote.DeleteCard(ctx, cardID)
		if err != nil && isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p.rollback = func() bool {
		if _, _, _, ok := c.cards.Locate(cardID); !ok {
			c.cards.InsertOptimistic(listID, previous)
		}
		return true
	}
	return p, nil
}

// MoveCard moves a card to toListID at pos. The remote receives the
// resulting order of both lists in one call.
func (c *Coordinator) MoveCard(cardID, fromListID, toListID string, pos float64) (*Pending, error) {
	if entity.IsTempID(cardID) || entity.IsTempID(toListID) {
		return nil, fmt.Errorf("failed to move card %s: %w", cardID, ErrItemPending)
	}
	if !finite(pos) {
		return nil, entity.ErrInvalidPosition
	}
	previous, ok := c.cards.Get(fromListID, cardID)
	if !ok {
		return nil, fmt.Errorf("failed to move card %s: %w", cardID, entity.ErrCardNotFound)
	}
	known := c.cards.Has(toListID)
	if err := c.cards.MoveItem(cardID, fromListID, toListID, pos); err != nil {
		return nil, err
	}

	req := dto.MoveCardsRequest{
		CardID:     cardID,
		FromListID: fromListID,
		ToListID:   toListID,
		Position:   pos,
		ToOrder:    order(c.cards.Items(toListID)),
	}
	if fromListID != toListID {
		req.FromOrder = order(c.cards.Items(fromListID))
	}

	p := c.pending(ActionMove, KindCard, cardID)
	p.call = func(ctx context.Context) (any, error) {
		return c.remote.MoveCards(ctx, req)
	}
	p.reconcile = func(data any, out *Outcome) {
		res := data.(*dto.MoveCardsResult)
		c.reconcileCard(res.Card)
		c.reconcileSiblings(fromListID, res.FromCards, cardID)
		c.reconcileSiblings(toListID, res.ToCards, cardID)
	}
	p.rollback = func() bool {
		cur, ok := c.cards.Get(toListID, cardID)
		if !ok || cur.Position != pos {
			c.log.Warn("card moved again before rollback, leaving it in place",
				zap.String("card_id", cardID))
			return true
		}
		if err := c.cards.MoveItem(cardID, toListID, fromListID, previous.Position); err != nil {
			c.log.Warn("failed to roll back card move", zap.String("card_id", cardID), zap.Error(err))
		}
		dropIfCreated(c.cards, toListID, known)
		return true
	}
	return p, nil
}

// reconcileCard replaces a card wherever it currently lives.
func (c *Coordinator) reconcileCard(confirmed dto.CardDTO) {
	_, cur, _, ok := c.cards.Locate(confirmed.ID)
	if !ok {
		c.log.Warn("confirmed card no longer in store", zap.String("card_id", confirmed.ID))
		return
	}
	c.cards.ReplaceItem(cur, confirmed.ID, confirmed)
}

// reconcileSiblings takes server positions for cards still in listID.
func (c *Coordinator) reconcileSiblings(listID string, cards []dto.CardDTO, skipID string) {
	for _, card := range cards {
		if card.ID == skipID {
			continue
		}
		cur, ok := c.cards.Get(listID, card.ID)
		if !ok || cur.Position == card.Position {
			continue
		}
		c.cards.UpdateItem(listID, cur.Placed(listID, card.Position))
	}
}

// compensateCard deletes a card that was confirmed after being removed locally.
func (c *Coordinator) compensateCard(cardID string) *Pending {
	p := c.pending(ActionDelete, KindCard, cardID)
	p.call = func(ctx context.Context) (any, error) {
		err := c.remote.DeleteCard(ctx, cardID)
		if err != nil && isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p.rollback = func() bool { return true }
	return p
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
