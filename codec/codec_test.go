package codec

import (
	"net"
	"testing"

	"github.com/miekg/dns"
)

// RR, A, CNAME, and SOA build minimal records for tests, grounded on the
// teacher's dns_test.go helpers of the same name.

func RR(t *testing.T, typ uint16, name string, ttl uint32) dns.RR {
	t.Helper()
	ctor, ok := dns.TypeToRR[typ]
	if !ok {
		t.Fatalf("invalid record type: %d", typ)
	}

	rr := ctor()
	hdr := rr.Header()
	hdr.Name = name
	hdr.Class = dns.ClassINET
	hdr.Rrtype = typ
	hdr.Ttl = ttl

	return rr
}

func A(t *testing.T, name string, ttl uint32, ipStr string) *dns.A {
	t.Helper()
	ip := net.ParseIP(ipStr)
	if ip.To4() == nil {
		t.Fatal("invalid ipv4: " + ipStr)
	}
	rr := RR(t, dns.TypeA, name, ttl).(*dns.A)
	rr.A = ip
	return rr
}

func CNAME(t *testing.T, name string, ttl uint32, target string) *dns.CNAME {
	t.Helper()
	rr := RR(t, dns.TypeCNAME, name, ttl).(*dns.CNAME)
	rr.Target = target
	return rr
}

func SOA(t *testing.T, name string, ttl uint32, minttl uint32) *dns.SOA {
	t.Helper()
	rr := RR(t, dns.TypeSOA, name, ttl).(*dns.SOA)
	rr.Ns = "ns1." + name
	rr.Mbox = "hostmaster." + name
	rr.Minttl = minttl
	return rr
}
