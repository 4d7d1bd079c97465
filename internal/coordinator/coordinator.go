// Package coordinator applies board mutations to the local store first,
// sends them to the persistence service, and then reconciles the store with
// the server's answer or rolls the local change back.
package coordinator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"teamboard/internal/application/dto"
	"teamboard/internal/common/logger"
	"teamboard/internal/store"
)

// DefaultTimeout bounds a single remote call when none is configured.
const DefaultTimeout = 10 * time.Second

// Coordinator owns the client-side stores for one session.
// Apply and Settle are expected to run on a single event loop.
type Coordinator struct {
	remote  Remote
	cards   *store.Store[dto.CardDTO]
	lists   *store.Store[dto.ListDTO]
	timeout time.Duration
	log     *logger.Logger

	mu         sync.Mutex
	tombstones map[string]struct{}
}

// New creates a Coordinator with empty stores.
func New(remote Remote, timeout time.Duration, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{
		remote:     remote,
		cards:      store.New[dto.CardDTO](log),
		lists:      store.New[dto.ListDTO](log),
		timeout:    timeout,
		log:        log,
		tombstones: make(map[string]struct{}),
	}
}

// Cards returns the card store, keyed by list id.
func (c *Coordinator) Cards() *store.Store[dto.CardDTO] { return c.cards }

// Lists returns the list store, keyed by board id.
func (c *Coordinator) Lists() *store.Store[dto.ListDTO] { return c.lists }

// Remote returns the persistence service.
func (c *Coordinator) Remote() Remote { return c.remote }

// FetchBoard loads a board from the remote without touching the stores.
func (c *Coordinator) FetchBoard(ctx context.Context, boardID string) (*dto.BoardDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.remote.GetBoard(ctx, boardID)
}

// ApplyBoard replaces the local view of a board with a server snapshot.
func (c *Coordinator) ApplyBoard(board *dto.BoardDTO) {
	lists := make([]dto.ListDTO, 0, len(board.Lists))
	for _, l := range board.Lists {
		c.cards.SetContainerItems(l.ID, l.Cards)
		lists = append(lists, l.WithoutCards())
	}
	c.lists.SetContainerItems(board.ID, lists)
}

// LoadBoard fetches a board and applies it.
func (c *Coordinator) LoadBoard(ctx context.Context, boardID string) (*dto.BoardDTO, error) {
	board, err := c.FetchBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	c.ApplyBoard(board)
	return board, nil
}

// Pending is a mutation that has been applied locally and still has to be
// sent to the remote.
type Pending struct {
	Action Action
	Kind   Kind
	ItemID string

	coord *Coordinator
	// call is nil for changes that never leave the client.
	call      func(ctx context.Context) (any, error)
	reconcile func(data any, out *Outcome)
	// rollback undoes the local change and reports whether the failure
	// should be surfaced.
	rollback func() bool
}

// Result is the raw answer to a dispatched Pending.
type Result struct {
	Pending *Pending
	Data    any
	Err     error
}

// Outcome is what Settle did with a Result.
type Outcome struct {
	Action Action
	Kind   Kind
	ItemID string
	// ConfirmedID is the server id after a successful create.
	ConfirmedID string
	Failure     *Failure
	// FollowUp is a mutation that must be dispatched next, e.g. deleting a
	// record whose create confirmed after it was removed locally.
	FollowUp *Pending
}

// Err returns the failure as an error, or nil.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

// Local reports whether the mutation has no remote part.
func (p *Pending) Local() bool {
	return p.call == nil
}

// Dispatch performs the remote call. It never touches the stores and may
// run on any goroutine.
func (p *Pending) Dispatch(ctx context.Context) Result {
	if p.call == nil {
		return Result{Pending: p}
	}
	ctx, cancel := context.WithTimeout(ctx, p.coord.timeout)
	defer cancel()

	data, err := p.call(ctx)
	return Result{Pending: p, Data: data, Err: err}
}

// Await dispatches and settles synchronously, following up if needed.
func (p *Pending) Await(ctx context.Context) Outcome {
	out := p.coord.Settle(p.Dispatch(ctx))
	if out.FollowUp != nil {
		next := out.FollowUp.Await(ctx)
		if out.Failure == nil {
			out.Failure = next.Failure
		}
	}
	return out
}

// Settle reconciles the stores with a dispatched result.
func (c *Coordinator) Settle(r Result) Outcome {
	p := r.Pending
	out := Outcome{Action: p.Action, Kind: p.Kind, ItemID: p.ItemID}
	if p.call == nil {
		return out
	}

	if r.Err != nil {
		report := p.rollback()
		c.log.Error("remote mutation failed, rolled back",
			zap.String("action", string(p.Action)),
			zap.String("kind", string(p.Kind)),
			zap.String("item_id", p.ItemID),
			zap.Error(r.Err))
		if report {
			out.Failure = newFailure(p, r.Err)
		}
		return out
	}

	if p.reconcile != nil {
		p.reconcile(r.Data, &out)
	}
	c.log.Debug("remote mutation confirmed",
		zap.String("action", string(p.Action)),
		zap.String("kind", string(p.Kind)),
		zap.String("item_id", p.ItemID))
	return out
}

func (c *Coordinator) pending(action Action, kind Kind, id string) *Pending {
	return &Pending{Action: action, Kind: kind, ItemID: id, coord: c}
}

func (c *Coordinator) bury(id string) {
	c.mu.Lock()
	c.tombstones[id] = struct{}{}
	c.mu.Unlock()
}

// exhume removes a tombstone and reports whether one existed.
func (c *Coordinator) exhume(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tombstones[id]
	delete(c.tombstones, id)
	return ok
}

// dropIfCreated forgets a container that an optimistic apply brought into
// existence once it is empty again.
func dropIfCreated[T store.Item[T]](s *store.Store[T], containerID string, known bool) {
	if !known && len(s.Items(containerID)) == 0 {
		s.DropContainer(containerID)
	}
}

func positions[T store.Item[T]](items []T, excludeID string) []float64 {
	out := make([]float64, 0, len(items))
	for _, it := range items {
		if it.ItemID() == excludeID {
			continue
		}
		out = append(out, it.ItemPosition())
	}
	return out
}

func order[T store.Item[T]](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID()
	}
	return out
}
