package tasks

import (
	"sync"

	"github.com/idilsaglam/taskman/internal/model"
)

// IDAllocator hands out task ids.
type IDAllocator interface {
	Next() int64
}

// Counter is a monotonic IDAllocator. Ids start above every id in the list
// it was seeded with, so reloaded tasks never collide with new ones.
type Counter struct {
	mu   sync.Mutex
	last int64
}

// NewCounter seeds a Counter from existing tasks.
func NewCounter(seed []model.Task) *Counter {
	c := &Counter{}
	for _, t := range seed {
		if t.ID > c.last {
			c.last = t.ID
		}
	}
	return c
}

func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last++
	return c.last
}
