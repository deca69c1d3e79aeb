package resolver

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
)

func mustParseIP(t *testing.T, s string) net.IP {
	t.Helper()
	ip := net.ParseIP(s)
	if ip == nil {
		t.Fatalf("invalid ip: %s", s)
	}
	return ip
}

func TestBuildAnswer_DirectMatch(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Answer: []dns.RR{
			a(t, "example.com.", 300, "192.0.2.1"),
		},
	}
	resp := codec.NewResponse(msg)

	now := time.Now()
	ans, err := buildAnswer(dnsname.MustParse("example.com."), dnsname.TypeA, dnsname.ClassIN, resp, true, "192.0.2.53", 53, now)
	require.NoError(t, err)

	assert.True(t, ans.HasRRSet)
	assert.Equal(t, "example.com.", ans.CanonicalName.String())
	assert.Equal(t, now.Add(300*time.Second), ans.Expiration)
}

func TestBuildAnswer_ChasesCNAME(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Answer: []dns.RR{
			cname(t, "www.example.com.", 300, "edge.example.com."),
			a(t, "edge.example.com.", 60, "192.0.2.1"),
		},
	}
	resp := codec.NewResponse(msg)

	now := time.Now()
	ans, err := buildAnswer(dnsname.MustParse("www.example.com."), dnsname.TypeA, dnsname.ClassIN, resp, true, "192.0.2.53", 53, now)
	require.NoError(t, err)

	assert.True(t, ans.HasRRSet)
	assert.Equal(t, "www.example.com.", ans.QName.String())
	assert.Equal(t, "edge.example.com.", ans.CanonicalName.String())
	assert.Equal(t, now.Add(60*time.Second), ans.Expiration, "TTL must fold to the minimum across the whole chain")
}

func TestBuildAnswer_CNAMELoopTerminates(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Answer: []dns.RR{
			cname(t, "a.example.com.", 300, "b.example.com."),
			cname(t, "b.example.com.", 300, "a.example.com."),
		},
	}
	resp := codec.NewResponse(msg)

	_, err := buildAnswer(dnsname.MustParse("a.example.com."), dnsname.TypeA, dnsname.ClassIN, resp, true, "192.0.2.53", 53, time.Now())
	require.Error(t, err, "a circular CNAME chain must not hang, and must end in NoAnswerError")

	var noAnswer *NoAnswerError
	assert.ErrorAs(t, err, &noAnswer)
}

func TestBuildAnswer_NegativeCacheUsesSOAMinimum(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Ns: []dns.RR{
			soa(t, "example.com.", 3600, 120),
		},
	}
	resp := codec.NewResponse(msg)

	now := time.Now()
	ans, err := buildAnswer(dnsname.MustParse("nope.example.com."), dnsname.TypeA, dnsname.ClassIN, resp, false, "192.0.2.53", 53, now)
	require.NoError(t, err)

	assert.False(t, ans.HasRRSet)
	assert.Equal(t, now.Add(120*time.Second), ans.Expiration, "negative TTL must be bounded by SOA MINIMUM, not the SOA record's own TTL")
}

func TestBuildAnswer_NegativeCacheClimbsToAncestorSOA(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Ns: []dns.RR{
			soa(t, "com.", 3600, 300),
		},
	}
	resp := codec.NewResponse(msg)

	ans, err := buildAnswer(dnsname.MustParse("nope.example.com."), dnsname.TypeA, dnsname.ClassIN, resp, false, "192.0.2.53", 53, time.Now())
	require.NoError(t, err)
	assert.False(t, ans.HasRRSet)
}

func TestBuildAnswer_NoAnswerRaisesWhenConfigured(t *testing.T) {
	t.Parallel()

	resp := codec.NewResponse(&dns.Msg{})
	_, err := buildAnswer(dnsname.MustParse("example.com."), dnsname.TypeA, dnsname.ClassIN, resp, true, "192.0.2.53", 53, time.Now())

	var noAnswer *NoAnswerError
	assert.ErrorAs(t, err, &noAnswer)
}

// a, cname, and soa are local copies of codec's test RR builders, which live
// in codec's test files and cannot be imported from this package.

func a(t *testing.T, name string, ttl uint32, ip string) dns.RR {
	t.Helper()
	rr := new(dns.A)
	rr.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: ttl}
	rr.A = mustParseIP(t, ip)
	return rr
}

func cname(t *testing.T, name string, ttl uint32, target string) dns.RR {
	t.Helper()
	rr := new(dns.CNAME)
	rr.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: ttl}
	rr.Target = target
	return rr
}

func soa(t *testing.T, name string, ttl uint32, minttl uint32) dns.RR {
	t.Helper()
	rr := new(dns.SOA)
	rr.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeSOA, Class: dns.ClassINET, Ttl: ttl}
	rr.Ns = "ns1." + name
	rr.Mbox = "hostmaster." + name
	rr.Minttl = minttl
	return rr
}
