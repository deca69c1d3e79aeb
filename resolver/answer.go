package resolver

import (
	"time"

	"github.com/miekg/dns"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
)

// maxCNAMEHops bounds the CNAME chase against malicious or looping
// responses, per spec.md §4.C.
const maxCNAMEHops = 15

// buildAnswer implements spec.md §4.C: chase the CNAME chain inside resp,
// locate the matching RRset (or, failing that, the negative-caching SOA),
// and compute the resulting answer's expiration.
func buildAnswer(
	qname dnsname.Name,
	rdtype dnsname.RRType,
	rdclass dnsname.RRClass,
	resp *codec.Response,
	raiseOnNoAnswer bool,
	nameserver string,
	port int,
	now time.Time,
) (answer.Answer, error) {
	var minTTL *uint32
	foldTTL := func(ttl uint32) {
		if minTTL == nil || ttl < *minTTL {
			t := ttl
			minTTL = &t
		}
	}

	current := qname
	var rrset codec.RRSet
	found := false

	for hop := 0; hop < maxCNAMEHops; hop++ {
		if set, err := resp.FindRRSet(codec.SectionAnswer, current, rdclass, rdtype); err == nil {
			rrset = set
			foldTTL(set.TTL)
			found = true
			break
		}

		if rdtype == dnsname.TypeCNAME {
			break
		}

		cnameSet, err := resp.FindRRSet(codec.SectionAnswer, current, rdclass, dnsname.TypeCNAME)
		if err != nil {
			break
		}
		foldTTL(cnameSet.TTL)

		target, err := cnameTarget(cnameSet)
		if err != nil {
			break
		}
		current = target
	}

	if !found {
		if raiseOnNoAnswer {
			return answer.Answer{}, &NoAnswerError{Response: resp}
		}
		foldNegativeTTL(resp, current, rdclass, foldTTL)
	}

	var ttl time.Duration
	if minTTL != nil {
		ttl = time.Duration(*minTTL) * time.Second
	}

	return answer.Answer{
		QName:         qname,
		CanonicalName: current,
		RRSet:         rrset,
		HasRRSet:      found,
		Response:      resp,
		Expiration:    now.Add(ttl),
		Nameserver:    nameserver,
		Port:          port,
	}, nil
}

// cnameTarget extracts the alias target from a single-record CNAME RRset.
func cnameTarget(set codec.RRSet) (dnsname.Name, error) {
	for _, rr := range set.RRs {
		if c, ok := rr.(*dns.CNAME); ok {
			return dnsname.Parse(c.Target)
		}
	}
	return dnsname.Name{}, codec.ErrRRSetNotFound
}

// foldNegativeTTL walks current and its ancestors looking for the SOA
// RRset that governs negative caching, per spec.md §4.C: the first SOA
// found (at current or a superdomain) contributes both its TTL and its
// MINIMUM field to min_ttl, then the walk stops.
func foldNegativeTTL(resp *codec.Response, current dnsname.Name, rdclass dnsname.RRClass, foldTTL func(uint32)) {
	name := current
	for {
		if set, err := resp.FindRRSet(codec.SectionAuthority, name, rdclass, dnsname.TypeSOA); err == nil {
			for _, rr := range set.RRs {
				if soa, ok := rr.(*dns.SOA); ok {
					foldTTL(soa.Hdr.Ttl)
					foldTTL(soa.Minttl)
					return
				}
			}
		}

		parent, err := name.Parent()
		if err != nil {
			// Reached the root without a match.
			return
		}
		name = parent
	}
}
