package cache

import (
	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/dnsname"
)

// Cache is the interface Config.Cache holds; both Simple and LRU satisfy
// it, letting a Resolver be configured with either.
type Cache interface {
	Get(dnsname.CacheKey) (answer.Answer, bool)
	Put(dnsname.CacheKey, answer.Answer)
	Flush(*dnsname.CacheKey)
}

var (
	_ Cache = (*Simple)(nil)
	_ Cache = (*LRU)(nil)
)
