package resolver

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
)

// Sentinel errors for the taxonomy entries that carry no extra context.
// Grounded on the teacher's errors.go (ErrNXDomain, ErrCircular), extended
// to the full set spec.md §6.4/§7 names.
var (
	// ErrYXDomain is a protocol-level fatal: the server claims a name
	// exists that the query implies shouldn't.
	ErrYXDomain = errors.New("resolver: YXDOMAIN")

	// ErrNoResolverConfiguration means a ConfigSource produced no usable
	// configuration (missing file, or an empty nameserver list).
	ErrNoResolverConfiguration = errors.New("resolver: no resolver configuration found")

	// ErrNotAbsolute is raised when an absolute name is required but a
	// relative one was given.
	ErrNotAbsolute = errors.New("resolver: name is not absolute")

	// ErrNoRootSOA means ZoneForName climbed past the root without ever
	// finding an SOA whose owner matched the query name.
	ErrNoRootSOA = errors.New("resolver: no SOA found for any ancestor, including the root")

	// ErrNoMetaqueries is raised when a meta-type or meta-class (ANY, OPT,
	// AXFR, ...) is used as the subject of a resolution.
	ErrNoMetaqueries = errors.New("resolver: meta-queries are not allowed")
)

// AttemptError is one entry in a Resolution's per-attempt error log:
// spec.md §3's "(server, transport_used, port, error, raw_response_or_none)".
type AttemptError struct {
	Server    string
	Transport string // "udp", "tcp", or "https"
	Port      int
	Err       error
	Response  *codec.Response // nil unless the server responded with an unexpected rcode
}

func (e AttemptError) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s/%s:%d: %v", e.Transport, e.Server, e.Port, e.Err)
	}
	return fmt.Sprintf("%s/%s:%d: unexpected response", e.Transport, e.Server, e.Port)
}

// NXDomainError reports that every candidate qname was authoritatively
// denied. It carries the full qnames-tried list and the response that
// produced each NXDOMAIN, so two NXDomainErrors from related lookups can be
// merged with MergeNXDomain.
type NXDomainError struct {
	QNames    []dnsname.Name
	Responses map[string]*codec.Response // keyed by qname.String()
}

func (e *NXDomainError) Error() string {
	return fmt.Sprintf("resolver: NXDOMAIN: %d qname(s) tried", len(e.QNames))
}

// MergeNXDomain combines a and b per spec.md §6.4/§8: the union of qnames,
// preserving a's order and appending b's novel entries, and the union of
// responses, where b wins on key collision.
func MergeNXDomain(a, b *NXDomainError) *NXDomainError {
	merged := &NXDomainError{
		Responses: make(map[string]*codec.Response, len(a.Responses)+len(b.Responses)),
	}

	seen := make(map[string]bool, len(a.QNames)+len(b.QNames))
	for _, n := range a.QNames {
		if !seen[n.String()] {
			seen[n.String()] = true
			merged.QNames = append(merged.QNames, n)
		}
	}
	for _, n := range b.QNames {
		if !seen[n.String()] {
			seen[n.String()] = true
			merged.QNames = append(merged.QNames, n)
		}
	}

	for k, v := range a.Responses {
		merged.Responses[k] = v
	}
	for k, v := range b.Responses {
		merged.Responses[k] = v
	}

	return merged
}

// NoAnswerError means the name exists but has no records of the requested
// type/class.
type NoAnswerError struct {
	Response *codec.Response
}

func (e *NoAnswerError) Error() string { return "resolver: no answer for this type/class" }

// NoNameserversError means every nameserver in the pool was exhausted
// without producing a usable response.
type NoNameserversError struct {
	Request *codec.Query
	Errors  []AttemptError
}

func (e *NoNameserversError) Error() string {
	return fmt.Sprintf("resolver: no nameservers available after %d attempt(s)", len(e.Errors))
}

// TimeoutError means the overall lifetime budget was exhausted.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("resolver: timeout after %s", e.Duration)
}
