package services

import (
	"context"
	"sync"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
	ctxErr error
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctxErr = ctx.Err()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type memoryCache struct {
	mu          sync.Mutex
	gen         int64
	byLimit     map[int][]uint
	gets, sets  int
	invalidated int

	// beforeSet runs at the start of Set without the lock held
	beforeSet    func()
	onInvalidate func()
	invalidCtx   error
}

func newMemoryCache() *memoryCache { return &memoryCache{byLimit: map[int][]uint{}} }

func (c *memoryCache) Get(_ context.Context, limit int) ([]uint, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	ids, ok := c.byLimit[limit]
	return ids, c.gen, ok, nil
}

func (c *memoryCache) Set(_ context.Context, gen int64, limit int, ids []uint) error {
	if c.beforeSet != nil {
		hook := c.beforeSet
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.sets++
	c.byLimit[limit] = ids
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	if c.onInvalidate != nil {
		c.onInvalidate()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidCtx = ctx.Err()
	c.invalidated++
	c.gen++
	c.byLimit = map[int][]uint{}
	return nil
}
