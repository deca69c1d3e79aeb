// Package codec wraps github.com/miekg/dns to provide the message-building
// and response-inspection surface spec'd as an injected collaborator: a
// buildable Query (make_query, use_tsig, use_edns, flags) and a Response
// that can locate an RRset by owner/class/type.
package codec

import (
	"github.com/miekg/dns"

	"github.com/ferrodns/resolver/dnsname"
)

// Query is a DNS request message under construction.
type Query struct {
	msg *dns.Msg

	// tsigSecret holds the keyring entry set by UseTSIG, threaded through to
	// the transport layer, which needs it to sign the wire bytes;
	// dns.Client.TsigSecret expects exactly this shape.
	tsigSecret map[string]string
}

// NewQuery builds the outgoing request for (name, qtype, qclass), equivalent
// to dnspython's make_query.
func NewQuery(name dnsname.Name, qtype dnsname.RRType, qclass dnsname.RRClass) *Query {
	m := new(dns.Msg)
	m.SetQuestion(name.Canonical(), uint16(qtype))
	m.Question[0].Qclass = uint16(qclass)
	m.Id = dns.Id()
	return &Query{msg: m}
}

// SetFlags sets the RD, AD and CD header bits, per the resolver
// configuration's optional flags override. Other header flags are left as
// they are.
func (q *Query) SetFlags(rd, ad, cd bool) {
	q.msg.RecursionDesired = rd
	q.msg.AuthenticatedData = ad
	q.msg.CheckingDisabled = cd
}

// UseTSIG attaches a TSIG signature to the outgoing request.
func (q *Query) UseTSIG(keyname, algorithm, secret string) {
	q.msg.SetTsig(dns.Fqdn(keyname), algorithm, 300, 0)
	q.tsigSecret = map[string]string{dns.Fqdn(keyname): secret}
}

// UseEDNS enables EDNS0 with the given UDP payload size and DO bit.
func (q *Query) UseEDNS(payload uint16, do bool) {
	q.msg.SetEdns0(payload, do)
}

// Msg returns the underlying *dns.Msg for handoff to a Transport.
func (q *Query) Msg() *dns.Msg { return q.msg }

// TSIGSecret returns the keyname->secret map set by UseTSIG, or nil.
func (q *Query) TSIGSecret() map[string]string { return q.tsigSecret }
