package codec

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrodns/resolver/dnsname"
)

func TestResponse_FindRRSet(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Answer: []dns.RR{
			A(t, "www.example.com.", 300, "192.0.2.1"),
			A(t, "www.example.com.", 199, "192.0.2.2"),
			A(t, "other.example.com.", 300, "192.0.2.9"),
		},
	}
	resp := NewResponse(msg)

	set, err := resp.FindRRSet(SectionAnswer, dnsname.MustParse("WWW.example.com."), dnsname.ClassIN, dnsname.TypeA)
	require.NoError(t, err)
	assert.Len(t, set.RRs, 2)
	assert.Equal(t, uint32(199), set.TTL, "TTL should fold to the minimum across the set")
}

func TestResponse_FindRRSet_NotFound(t *testing.T) {
	t.Parallel()

	resp := NewResponse(&dns.Msg{})
	_, err := resp.FindRRSet(SectionAnswer, dnsname.MustParse("example.com."), dnsname.ClassIN, dnsname.TypeA)
	assert.ErrorIs(t, err, ErrRRSetNotFound)
}

func TestResponse_FindRRSet_WrongClassOrType(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{
		Answer: []dns.RR{
			A(t, "example.com.", 300, "192.0.2.1"),
		},
	}
	resp := NewResponse(msg)

	_, err := resp.FindRRSet(SectionAnswer, dnsname.MustParse("example.com."), dnsname.ClassIN, dnsname.TypeAAAA)
	assert.ErrorIs(t, err, ErrRRSetNotFound)

	_, err = resp.FindRRSet(SectionAnswer, dnsname.MustParse("example.com."), dnsname.ClassCH, dnsname.TypeA)
	assert.ErrorIs(t, err, ErrRRSetNotFound)
}

func TestResponse_Accessors(t *testing.T) {
	t.Parallel()

	msg := &dns.Msg{}
	msg.Rcode = dns.RcodeNameError
	msg.Truncated = true
	msg.Ns = []dns.RR{SOA(t, "example.com.", 3600, 300)}

	resp := NewResponse(msg)
	assert.Equal(t, dns.RcodeNameError, resp.Rcode())
	assert.True(t, resp.Truncated())
	assert.Len(t, resp.Authority(), 1)
}
