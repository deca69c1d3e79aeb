package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrodns/resolver/answer"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU(2)
	now := time.Now()
	c.now = func() time.Time { return now }

	k1, k2, k3 := key(t, "one."), key(t, "two."), key(t, "three.")
	c.Put(k1, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k2, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k3, answer.Answer{Expiration: now.Add(time.Minute)})

	_, ok := c.Get(k1)
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get(k2)
	assert.True(t, ok)
	_, ok = c.Get(k3)
	assert.True(t, ok)

	assert.Equal(t, 2, c.Len())
}

func TestLRU_GetPromotesToMostRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU(2)
	now := time.Now()
	c.now = func() time.Time { return now }

	k1, k2, k3 := key(t, "one."), key(t, "two."), key(t, "three.")
	c.Put(k1, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k2, answer.Answer{Expiration: now.Add(time.Minute)})

	_, ok := c.Get(k1) // promote k1; k2 is now the LRU entry
	require.True(t, ok)

	c.Put(k3, answer.Answer{Expiration: now.Add(time.Minute)})

	_, ok = c.Get(k2)
	assert.False(t, ok, "k2 should have been evicted, not k1")
	_, ok = c.Get(k1)
	assert.True(t, ok)
}

func TestLRU_ExpiredEntryDroppedOnGet(t *testing.T) {
	t.Parallel()

	c := NewLRU(4)
	now := time.Now()
	c.now = func() time.Time { return now }

	k := key(t, "example.com.")
	c.Put(k, answer.Answer{Expiration: now.Add(-time.Second)})

	_, ok := c.Get(k)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_ClampsMaxSize(t *testing.T) {
	t.Parallel()

	c := NewLRU(0)
	now := time.Now()
	c.now = func() time.Time { return now }

	k1, k2 := key(t, "one."), key(t, "two.")
	c.Put(k1, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k2, answer.Answer{Expiration: now.Add(time.Minute)})

	assert.Equal(t, 1, c.Len())
}

func TestLRU_Flush(t *testing.T) {
	t.Parallel()

	c := NewLRU(4)
	now := time.Now()
	c.now = func() time.Time { return now }

	k1, k2 := key(t, "one."), key(t, "two.")
	c.Put(k1, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k2, answer.Answer{Expiration: now.Add(time.Minute)})

	c.Flush(&k1)
	assert.Equal(t, 1, c.Len())

	c.Flush(nil)
	assert.Equal(t, 0, c.Len())
}
