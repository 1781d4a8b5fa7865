// Package pool provides fixed-capacity slot arenas for simulation species.
// Allocation always takes the lowest inactive slot and iteration always runs
// in ascending slot order, so identical inputs produce identical outcomes.
package pool

import (
	"errors"
	"iter"
)

// ErrPoolExhausted is returned by Acquire when every slot is active
var ErrPoolExhausted = errors.New("pool exhausted")

type slot[T any] struct {
	value      T
	active     bool
	generation uint32
}

// Pool is a fixed-size arena of T values with a per-slot active flag
type Pool[T any] struct {
	slots  []slot[T]
	active int
}

// New creates a pool with the given capacity. The capacity never changes.
func New[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		slots: make([]slot[T], capacity),
	}
}

// Cap returns the fixed number of slots
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// ActiveCount returns the number of active slots
func (p *Pool[T]) ActiveCount() int {
	return p.active
}

// Acquire activates the lowest inactive slot and returns its index and value.
// The previous contents of the slot are left in place; callers must overwrite
// every field they rely on before anything else observes the slot.
func (p *Pool[T]) Acquire() (int, *T, error) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.active {
			continue
		}
		s.active = true
		s.generation++
		p.active++
		return i, &s.value, nil
	}
	return -1, nil, ErrPoolExhausted
}

// Release marks a slot inactive. Other fields are left untouched.
func (p *Pool[T]) Release(index int) {
	if index < 0 || index >= len(p.slots) {
		return
	}
	s := &p.slots[index]
	if !s.active {
		return
	}
	s.active = false
	p.active--
}

// IsActive reports whether the slot at index is active
func (p *Pool[T]) IsActive(index int) bool {
	if index < 0 || index >= len(p.slots) {
		return false
	}
	return p.slots[index].active
}

// Get returns the value at index if that slot is active
func (p *Pool[T]) Get(index int) (*T, bool) {
	if !p.IsActive(index) {
		return nil, false
	}
	return &p.slots[index].value, true
}

// ForEachActive calls fn for every active slot in ascending index order.
// Iteration stops early when fn returns false.
func (p *Pool[T]) ForEachActive(fn func(index int, value *T) bool) {
	for i := range p.slots {
		if !p.slots[i].active {
			continue
		}
		if !fn(i, &p.slots[i].value) {
			return
		}
	}
}

// All returns an iterator over active slots in ascending index order.
// A slot released during iteration is skipped once the loop reaches it.
func (p *Pool[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		p.ForEachActive(yield)
	}
}

// Reset deactivates every slot. Generations keep counting so refs taken
// before the reset stay stale.
func (p *Pool[T]) Reset() {
	for i := range p.slots {
		p.slots[i].active = false
	}
	p.active = 0
}
