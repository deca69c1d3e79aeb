// Package answer defines the successful outcome of a resolution (spec.md
// §3, component C's data side). It is kept separate from package resolver
// so that package cache can hold Answer values without importing resolver.
package answer

import (
	"time"

	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
)

// Answer is the successful outcome of a resolution.
type Answer struct {
	// QName is the original question name.
	QName dnsname.Name

	// CanonicalName is the final name after CNAME/DNAME chasing.
	CanonicalName dnsname.Name

	// RRSet is the matched record set. The zero value (RRs == nil) means the
	// name exists but has no records of the requested type/class.
	RRSet codec.RRSet

	// HasRRSet reports whether RRSet is populated. Needed because the zero
	// value of codec.RRSet is itself a valid-looking (if empty) set.
	HasRRSet bool

	// Response is the raw response that produced this answer, kept for
	// diagnostics and negative-caching context.
	Response *codec.Response

	// Expiration is the wall-clock instant after which this answer is stale.
	Expiration time.Time

	// Nameserver and Port identify the origin of the response.
	Nameserver string
	Port       int
}

// Expired reports whether the answer is stale as of now.
func (a Answer) Expired(now time.Time) bool {
	return !a.Expiration.After(now)
}
