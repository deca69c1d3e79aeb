// Package transport implements the pluggable network layer spec.md §6.1
// treats as an injected collaborator: UDP, TCP, and DNS-over-HTTPS
// exchanges, plus the scheme-sniffing the resolution driver uses to pick
// between them.
package transport

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Transport performs a single request/response exchange over one of the
// three supported wire protocols. tsigSecret is the keyname->secret map
// codec.Query.TSIGSecret returns; it is nil unless the query was signed.
type Transport interface {
	UDP(ctx context.Context, req *dns.Msg, nameserver string, port int, source net.IP, sourcePort int, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error)
	TCP(ctx context.Context, req *dns.Msg, nameserver string, port int, source net.IP, sourcePort int, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error)
	HTTPS(ctx context.Context, req *dns.Msg, url string, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error)
}

// Kind identifies which wire protocol a nameserver string resolves to.
type Kind int

const (
	// KindIP means the nameserver is a bare IP literal; the driver will try
	// UDP first, escalating to TCP on truncation.
	KindIP Kind = iota
	// KindHTTPS means the nameserver parses as a URL with scheme https.
	KindHTTPS
	// KindUnknown means the nameserver is a URL with an unrecognized
	// scheme; spec.md §6.1 says to silently skip it for this attempt.
	KindUnknown
)

// Classify sniffs nameserver the way spec.md §6.1 describes: a bare IP
// literal dispatches to TCP/UDP, a URL with scheme "https" dispatches to
// DoH, and any other non-empty URL scheme is unknown and must be skipped.
func Classify(nameserver string) Kind {
	if net.ParseIP(nameserver) != nil {
		return KindIP
	}
	if host, _, err := net.SplitHostPort(nameserver); err == nil && net.ParseIP(host) != nil {
		return KindIP
	}

	scheme, hasScheme := schemeOf(nameserver)
	if !hasScheme {
		// Not a URL and not an IP literal: treat as an IP-ish literal to
		// let the transport's own dial surface the real error.
		return KindIP
	}
	if scheme == "https" {
		return KindHTTPS
	}
	return KindUnknown
}

func schemeOf(s string) (scheme string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			if i == 0 {
				return "", false
			}
			if i+2 < len(s) && s[i+1] == '/' && s[i+2] == '/' {
				return s[:i], true
			}
			return "", false
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '+', c == '-', c == '.':
			continue
		default:
			return "", false
		}
	}
	return "", false
}
