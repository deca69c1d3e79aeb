package dnsname

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// RRType is a DNS record type, such as A, AAAA, or CNAME.
type RRType uint16

// Well-known record types used directly by the resolution driver.
const (
	TypeA     RRType = RRType(dns.TypeA)
	TypeNS    RRType = RRType(dns.TypeNS)
	TypeCNAME RRType = RRType(dns.TypeCNAME)
	TypeSOA   RRType = RRType(dns.TypeSOA)
	TypePTR   RRType = RRType(dns.TypePTR)
	TypeAAAA  RRType = RRType(dns.TypeAAAA)
)

// ParseRRType parses the textual form of a record type, e.g. "A" or "TXT".
func ParseRRType(s string) (RRType, error) {
	t, ok := dns.StringToType[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("dnsname: unknown record type: %s", s)
	}
	return RRType(t), nil
}

func (t RRType) String() string {
	if s, ok := dns.TypeToString[uint16(t)]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// IsMetatype reports whether t is a pseudo-type that may not appear as the
// subject of a resolution (e.g. ANY, OPT, AXFR, IXFR).
func (t RRType) IsMetatype() bool {
	switch uint16(t) {
	case dns.TypeOPT, dns.TypeTSIG, dns.TypeAXFR, dns.TypeIXFR, dns.TypeANY, dns.TypeMAILA, dns.TypeMAILB:
		return true
	default:
		return false
	}
}

// RRClass is a DNS record class, almost always IN.
type RRClass uint16

// Well-known record classes.
const (
	ClassIN   RRClass = RRClass(dns.ClassINET)
	ClassCH   RRClass = RRClass(dns.ClassCHAOS)
	ClassHS   RRClass = RRClass(dns.ClassHESIOD)
	ClassNONE RRClass = RRClass(dns.ClassNONE)
	ClassANY  RRClass = RRClass(dns.ClassANY)
)

// ParseRRClass parses the textual form of a record class, e.g. "IN".
func ParseRRClass(s string) (RRClass, error) {
	c, ok := dns.StringToClass[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("dnsname: unknown record class: %s", s)
	}
	return RRClass(c), nil
}

func (c RRClass) String() string {
	if s, ok := dns.ClassToString[uint16(c)]; ok {
		return s
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// IsMetaclass reports whether c may not appear as the subject of a
// resolution (e.g. ANY, NONE).
func (c RRClass) IsMetaclass() bool {
	switch uint16(c) {
	case dns.ClassANY, dns.ClassNONE:
		return true
	default:
		return false
	}
}

// CacheKey identifies a cached answer by the triple (name, type, class).
// Name equality is structural and case-insensitive (see Name), so CacheKey
// is directly usable as a Go map key.
type CacheKey struct {
	Name  Name
	Type  RRType
	Class RRClass
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s %s %s", k.Name, k.Class, k.Type)
}
