package codec

import (
	"errors"

	"github.com/miekg/dns"

	"github.com/ferrodns/resolver/dnsname"
)

// ErrRRSetNotFound is returned by Response.FindRRSet when no record matches.
var ErrRRSetNotFound = errors.New("codec: rrset not found")

// Section identifies which section of a response to search.
type Section int

const (
	SectionAnswer Section = iota
	SectionAuthority
)

// Response wraps a received *dns.Msg.
type Response struct {
	msg *dns.Msg
}

// NewResponse wraps msg for inspection. msg must not be nil.
func NewResponse(msg *dns.Msg) *Response {
	return &Response{msg: msg}
}

// Msg returns the underlying *dns.Msg.
func (r *Response) Msg() *dns.Msg { return r.msg }

// Rcode returns the response code, e.g. dns.RcodeSuccess, dns.RcodeNameError.
func (r *Response) Rcode() int { return r.msg.Rcode }

// Truncated reports whether the server set the TC bit.
func (r *Response) Truncated() bool { return r.msg.Truncated }

// Answer returns the answer section.
func (r *Response) Answer() []dns.RR { return r.msg.Answer }

// Authority returns the authority section.
func (r *Response) Authority() []dns.RR { return r.msg.Ns }

// RRSet is a set of records sharing an owner name, class, and type.
type RRSet struct {
	Name  dnsname.Name
	Class dnsname.RRClass
	Type  dnsname.RRType
	TTL   uint32 // minimum TTL across all records in the set
	RRs   []dns.RR
}

// FindRRSet locates the RRset with the given owner, class, and type in the
// requested section. It returns ErrRRSetNotFound if no matching record
// exists, mirroring dnspython's Message.find_rrset.
func (r *Response) FindRRSet(section Section, owner dnsname.Name, class dnsname.RRClass, rtype dnsname.RRType) (RRSet, error) {
	var rrs []dns.RR
	switch section {
	case SectionAnswer:
		rrs = r.msg.Answer
	case SectionAuthority:
		rrs = r.msg.Ns
	}

	ownerFQDN := owner.Canonical()

	var matched []dns.RR
	var minTTL uint32
	for _, rr := range rrs {
		hdr := rr.Header()
		if !equalFold(hdr.Name, ownerFQDN) {
			continue
		}
		if hdr.Class != uint16(class) || hdr.Rrtype != uint16(rtype) {
			continue
		}
		matched = append(matched, rr)
		if len(matched) == 1 || hdr.Ttl < minTTL {
			minTTL = hdr.Ttl
		}
	}

	if len(matched) == 0 {
		return RRSet{}, ErrRRSetNotFound
	}

	return RRSet{Name: owner, Class: class, Type: rtype, TTL: minTTL, RRs: matched}, nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
