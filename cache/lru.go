package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/dnsname"
)

// lruNode is what the recency list holds; list.List already provides the
// sentinel + circular doubly-linked structure spec.md §4.B/§9 describe, so
// there is no need to hand-roll an arena of prev/next indices the way a
// non-GC'd language would.
type lruNode struct {
	key   dnsname.CacheKey
	value answer.Answer
}

// LRU is a thread-safe, capacity-bounded answer cache. The most recently
// used entry sits at the front of the list; the entry evicted on overflow
// is the one at the back. Grounded on the teacher's cache/cache.go
// (container/list + map), generalized from its addr+question key to
// dnsname.CacheKey and from *dns.Msg to answer.Answer.
type LRU struct {
	mu      sync.Mutex
	maxSize int
	index   map[dnsname.CacheKey]*list.Element
	order   *list.List // of *lruNode; front = most recently used

	now func() time.Time
}

// NewLRU returns an LRU cache bounded to maxSize entries. Values below one
// are clamped to one.
func NewLRU(maxSize int) *LRU {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU{
		maxSize: maxSize,
		index:   make(map[dnsname.CacheKey]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get locates key, promotes it to most-recently-used, and returns its
// value. It returns (zero, false) if the key is absent or its entry has
// expired — an expired entry is dropped as a side effect of Get.
func (c *LRU) Get(key dnsname.CacheKey) (answer.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return answer.Answer{}, false
	}

	node := elem.Value.(*lruNode)
	c.order.Remove(elem)
	delete(c.index, key)

	if node.value.Expired(c.now()) {
		return answer.Answer{}, false
	}

	newElem := c.order.PushFront(node)
	c.index[key] = newElem

	return node.value, true
}

// Put stores value under key as the most-recently-used entry, evicting the
// least-recently-used entry if the cache is at capacity.
func (c *LRU) Put(key dnsname.CacheKey, value answer.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.order.Remove(elem)
		delete(c.index, key)
	}

	for len(c.index) >= c.maxSize {
		back := c.order.Back()
		if back == nil {
			break
		}
		victim := back.Value.(*lruNode)
		c.order.Remove(back)
		delete(c.index, victim.key)
	}

	elem := c.order.PushFront(&lruNode{key: key, value: value})
	c.index[key] = elem
}

// Flush removes the entry for key. With no key given, flush discards every
// entry, breaking the list's pointers so held values are released promptly.
func (c *LRU) Flush(key *dnsname.CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key == nil {
		c.order.Init()
		c.index = make(map[dnsname.CacheKey]*list.Element)
		return
	}

	if elem, ok := c.index[*key]; ok {
		c.order.Remove(elem)
		delete(c.index, *key)
	}
}

// Len returns the number of live entries, not accounting for expiry.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}
