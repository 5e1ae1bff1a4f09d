package llmcache

import (
	"context"
	"sync"
	"time"

	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedAdvisor wraps an Advisor with an in-memory TTL+LRU cache keyed on the
// prompt. Identical requests inside the TTL reuse the completion instead of
// re-billing the provider.
type CachedAdvisor struct {
	inner   domain.Advisor
	cache   *lruCache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedAdvisor creates a cache decorator around an advisor.
func NewCachedAdvisor(inner domain.Advisor, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedAdvisor {
	return &CachedAdvisor{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
	}
}

// SetClock swaps the time source for TTL expiry. Pass nil to reset to real time.
// Tests inject a fake for deterministic expiry.
func (c *CachedAdvisor) SetClock(clk clockwork.Clock) {
	if clk == nil {
		c.clock = clockwork.NewRealClock()
		return
	}
	c.clock = clk
}

func (c *CachedAdvisor) Advise(ctx context.Context, prompt domain.Prompt) (string, error) {
	key := prompt.System + "\x00" + prompt.User
	if reply, ok := c.cache.get(key, c.clock.Now()); ok {
		c.metrics.AdvisorCache.WithLabelValues("hit").Inc()
		return reply, nil
	}
	c.metrics.AdvisorCache.WithLabelValues("miss").Inc()

	reply, err := c.inner.Advise(ctx, prompt)
	if err != nil {
		return reply, err
	}
	// Only cache non-empty replies so transient degraded responses are retried.
	if reply != "" {
		c.cache.put(key, reply, c.clock.Now().Add(c.ttl))
	}
	return reply, nil
}

// lruCache is a simple thread-safe LRU cache with per-entry expiry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key       string
	value     string
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string, now time.Time) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if now.After(e.expiresAt) {
		delete(c.entries, e.key)
		c.remove(e)
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key, value string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
