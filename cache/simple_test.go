package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/dnsname"
)

func key(t *testing.T, name string) dnsname.CacheKey {
	t.Helper()
	return dnsname.CacheKey{Name: dnsname.MustParse(name), Type: dnsname.TypeA, Class: dnsname.ClassIN}
}

func TestSimple_GetPut(t *testing.T) {
	t.Parallel()

	c := NewSimple()
	now := time.Now()
	c.now = func() time.Time { return now }

	k := key(t, "example.com.")
	_, ok := c.Get(k)
	require.False(t, ok)

	a := answer.Answer{QName: k.Name, Expiration: now.Add(time.Minute)}
	c.Put(k, a)

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, a.QName, got.QName)
}

func TestSimple_ExpiredEntryNotReturned(t *testing.T) {
	t.Parallel()

	c := NewSimple()
	now := time.Now()
	c.now = func() time.Time { return now }

	k := key(t, "example.com.")
	c.Put(k, answer.Answer{Expiration: now.Add(-time.Second)})

	_, ok := c.Get(k)
	assert.False(t, ok)
}

func TestSimple_Flush(t *testing.T) {
	t.Parallel()

	c := NewSimple()
	now := time.Now()
	c.now = func() time.Time { return now }

	k1, k2 := key(t, "a.example.com."), key(t, "b.example.com.")
	c.Put(k1, answer.Answer{Expiration: now.Add(time.Minute)})
	c.Put(k2, answer.Answer{Expiration: now.Add(time.Minute)})

	c.Flush(&k1)
	_, ok := c.Get(k1)
	assert.False(t, ok)
	_, ok = c.Get(k2)
	assert.True(t, ok)

	c.Flush(nil)
	_, ok = c.Get(k2)
	assert.False(t, ok)
}

func TestSimple_PeriodicCleaning(t *testing.T) {
	t.Parallel()

	c := NewSimple()
	c.SetCleaningInterval(time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	k := key(t, "example.com.")
	c.Put(k, answer.Answer{Expiration: now.Add(time.Second)})

	now = now.Add(2 * time.Minute)
	c.maybeClean(now)

	c.mu.Lock()
	_, stillPresent := c.entries[k]
	c.mu.Unlock()
	assert.False(t, stillPresent, "sweep should have evicted the expired entry")
}
