package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// collection is an ordered, id-indexed list of records. Readers always get
// copies so that nothing outside the lock can reach the stored values.
type collection[T any] struct {
	mu    sync.RWMutex
	items []*T
	index map[uuid.UUID]int

	idOf  func(*T) uuid.UUID
	clone func(*T) *T
}

func newCollection[T any](seed []*T, idOf func(*T) uuid.UUID, clone func(*T) *T) *collection[T] {
	c := &collection[T]{
		items: make([]*T, 0, len(seed)),
		index: make(map[uuid.UUID]int, len(seed)),
		idOf:  idOf,
		clone: clone,
	}
	for _, item := range seed {
		c.appendLocked(clone(item))
	}
	return c
}

// shallow is the clone func for records without reference-typed fields.
func shallow[T any](v *T) *T {
	cp := *v
	return &cp
}

func (c *collection[T]) appendLocked(item *T) {
	c.index[c.idOf(item)] = len(c.items)
	c.items = append(c.items, item)
}

func (c *collection[T]) list(match func(*T) bool) []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.items))
	for _, item := range c.items {
		if match == nil || match(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

func (c *collection[T]) get(id uuid.UUID) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return nil
	}
	return c.clone(c.items[i])
}

func (c *collection[T]) find(match func(*T) bool) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			return c.clone(item)
		}
	}
	return nil
}

func (c *collection[T]) add(item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked(c.clone(item))
}

// update replaces the record at its current position with the result of
// patching a copy. Returns nil when id is unknown.
func (c *collection[T]) update(id uuid.UUID, patch func(*T)) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return nil
	}
	next := c.clone(c.items[i])
	patch(next)
	c.items[i] = next
	return c.clone(next)
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Latency is the artificial delay each kind of call waits before answering.
type Latency struct {
	List  time.Duration
	Get   time.Duration
	Write time.Duration
	Login time.Duration
}

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
