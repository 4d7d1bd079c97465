// Package store holds the client-side ordered view of a board: one sorted
// sequence of items per container.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"teamboard/internal/common/logger"
)

// Item is an element ordered within a container. Implementations are value
// types; Placed returns a copy with container and position changed together.
type Item[T any] interface {
	ItemID() string
	ItemContainerID() string
	ItemPosition() float64
	Placed(containerID string, position float64) T
}

// ErrItemNotFound is returned by MoveItem when the item is not in the source container.
var ErrItemNotFound = errors.New("item not found in container")

// Listener is notified after every change with the store version.
type Listener func(version uint64)

// Store is a map of container id to a position-sorted sequence of items.
type Store[T Item[T]] struct {
	mu         sync.RWMutex
	containers map[string][]T
	version    uint64
	listeners  []Listener
	log        *logger.Logger
}

// New creates an empty store.
func New[T Item[T]](log *logger.Logger) *Store[T] {
	if log == nil {
		log = logger.Default()
	}
	return &Store[T]{
		containers: make(map[string][]T),
		log:        log,
	}
}

// SetContainerItems replaces the whole sequence of a container.
func (s *Store[T]) SetContainerItems(containerID string, items []T) {
	seq := make([]T, len(items))
	copy(seq, items)
	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].ItemPosition() < seq[j].ItemPosition()
	})

	s.mu.Lock()
	s.containers[containerID] = seq
	s.mu.Unlock()
	s.changed()
}

// InsertOptimistic inserts an item that has not been confirmed yet.
func (s *Store[T]) InsertOptimistic(containerID string, item T) {
	s.mu.Lock()
	s.containers[containerID] = insertSorted(s.containers[containerID], item)
	s.mu.Unlock()
	s.changed()
}

// ReplaceItem swaps the entry with id oldID for the confirmed record. The
// confirmed record lands in its own container at its own position. When
// oldID is not present the confirmed record is discarded and false is returned.
func (s *Store[T]) ReplaceItem(containerID, oldID string, confirmed T) bool {
	s.mu.Lock()
	seq := s.seq(containerID)
	idx := indexOf(seq, oldID)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("replace target missing, discarding confirmed item",
			zap.String("container_id", containerID),
			zap.String("item_id", oldID),
			zap.String("confirmed_id", confirmed.ItemID()))
		return false
	}
	s.containers[containerID] = removeAt(seq, idx)

	target := confirmed.ItemContainerID()
	if target == "" {
		target = containerID
	}
	dest := s.seq(target)
	if i := indexOf(dest, confirmed.ItemID()); i >= 0 {
		dest = removeAt(dest, i)
	}
	s.containers[target] = insertSorted(dest, confirmed)
	s.mu.Unlock()
	s.changed()
	return true
}

// UpdateItem overwrites an item in place, re-sorting if its position changed.
func (s *Store[T]) UpdateItem(containerID string, item T) bool {
	s.mu.Lock()
	seq := s.seq(containerID)
	idx := indexOf(seq, item.ItemID())
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.containers[containerID] = insertSorted(removeAt(seq, idx), item)
	s.mu.Unlock()
	s.changed()
	return true
}

// RemoveItem deletes an item. Removing a missing item is a no-op.
func (s *Store[T]) RemoveItem(containerID, itemID string) {
	s.mu.Lock()
	seq := s.seq(containerID)
	idx := indexOf(seq, itemID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.containers[containerID] = removeAt(seq, idx)
	s.mu.Unlock()
	s.changed()
}

// MoveItem moves an item between containers (or within one) and gives it
// newPosition. It is the only operation that changes an item's container.
func (s *Store[T]) MoveItem(itemID, from, to string, newPosition float64) error {
	s.mu.Lock()
	src := s.seq(from)
	idx := indexOf(src, itemID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("failed to move %s from %s: %w", itemID, from, ErrItemNotFound)
	}
	moved := src[idx].Placed(to, newPosition)
	s.containers[from] = removeAt(src, idx)
	s.containers[to] = insertSorted(s.seq(to), moved)
	s.mu.Unlock()
	s.changed()
	return nil
}

// Items returns a sorted copy of a container's sequence.
func (s *Store[T]) Items(containerID string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq := s.containers[containerID]
	out := make([]T, len(seq))
	copy(out, seq)
	return out
}

// Get returns an item by id within a container.
func (s *Store[T]) Get(containerID, itemID string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq := s.containers[containerID]
	if idx := indexOf(seq, itemID); idx >= 0 {
		return seq[idx], true
	}
	var zero T
	return zero, false
}

// Locate finds an item in any container.
func (s *Store[T]) Locate(itemID string) (item T, containerID string, index int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for cid, seq := range s.containers {
		if idx := indexOf(seq, itemID); idx >= 0 {
			return seq[idx], cid, idx, true
		}
	}
	var zero T
	return zero, "", -1, false
}

// Has reports whether containerID has a sequence, empty or not.
func (s *Store[T]) Has(containerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.containers[containerID]
	return ok
}

// Containers returns the ids of every known container.
func (s *Store[T]) Containers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DropContainer forgets a container and its items.
func (s *Store[T]) DropContainer(containerID string) {
	s.mu.Lock()
	_, ok := s.containers[containerID]
	delete(s.containers, containerID)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
}

// Snapshot returns a deep copy of all sequences.
func (s *Store[T]) Snapshot() map[string][]T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]T, len(s.containers))
	for id, seq := range s.containers {
		cp := make([]T, len(seq))
		copy(cp, seq)
		out[id] = cp
	}
	return out
}

// Subscribe registers a listener called after each change.
func (s *Store[T]) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Version is incremented on every change.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[T]) changed() {
	s.mu.Lock()
	s.version++
	v := s.version
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// seq returns the sequence for a container, creating it if unknown.
// Caller must hold the write lock.
func (s *Store[T]) seq(containerID string) []T {
	seq, ok := s.containers[containerID]
	if !ok {
		seq = []T{}
		s.containers[containerID] = seq
	}
	return seq
}

// insertSorted places item after every element with position <= its own.
func insertSorted[T Item[T]](seq []T, item T) []T {
	rank := sort.Search(len(seq), func(i int) bool {
		return seq[i].ItemPosition() > item.ItemPosition()
	})
	out := make([]T, 0, len(seq)+1)
	out = append(out, seq[:rank]...)
	out = append(out, item)
	out = append(out, seq[rank:]...)
	return out
}

func removeAt[T any](seq []T, idx int) []T {
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	return append(out, seq[idx+1:]...)
}

func indexOf[T Item[T]](seq []T, id string) int {
	for i, it := range seq {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}
