// Package pool hands out unique identifiers drawn without replacement from
// finite candidate lists.
//
// Pools are plain values owned by an Allocator that is passed to whoever builds
// a port. Nothing here is global and nothing here is goroutine-safe: callers that
// share one Allocator between goroutines must serialize access themselves.
package pool

import (
	"fmt"
	"math/rand/v2"
)

// ExhaustionError is returned when a pool has no candidates left
type ExhaustionError struct {
	Pool string
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("pool %q exhausted", e.Pool)
}

// Pool is a named, mutable list of candidates
type Pool struct {
	name  string
	items []string
}

// New creates a pool holding a copy of items
func New(name string, items []string) *Pool {
	return &Pool{
		name:  name,
		items: append([]string(nil), items...),
	}
}

// Name returns the pool name
func (p *Pool) Name() string {
	return p.name
}

// Len returns the number of candidates left
func (p *Pool) Len() int {
	return len(p.items)
}

// Draw removes and returns a uniformly random candidate.
// Order of the remaining candidates is preserved.
func (p *Pool) Draw(rnd *rand.Rand) (string, error) {
	if len(p.items) == 0 {
		return "", &ExhaustionError{Pool: p.name}
	}
	i := rnd.IntN(len(p.items))
	item := p.items[i]
	p.items = append(p.items[:i], p.items[i+1:]...)
	return item, nil
}
