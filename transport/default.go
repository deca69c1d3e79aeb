package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Default is the Transport a Resolver uses unless the caller injects one of
// its own. UDP and TCP are implemented with *dns.Client, the same exchange
// call the teacher's Resolver.doQuery made directly; HTTPS implements
// RFC 8484 DNS-over-HTTPS with net/http.
type Default struct {
	// HTTPClient is used for HTTPS exchanges. If nil, http.DefaultClient is
	// used.
	HTTPClient *http.Client
}

var _ Transport = (*Default)(nil)

func (d *Default) UDP(ctx context.Context, req *dns.Msg, nameserver string, port int, source net.IP, sourcePort int, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error) {
	return d.exchange(ctx, "udp", req, nameserver, port, source, sourcePort, timeout, tsigSecret)
}

func (d *Default) TCP(ctx context.Context, req *dns.Msg, nameserver string, port int, source net.IP, sourcePort int, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error) {
	return d.exchange(ctx, "tcp", req, nameserver, port, source, sourcePort, timeout, tsigSecret)
}

func (d *Default) exchange(ctx context.Context, net_ string, req *dns.Msg, nameserver string, port int, source net.IP, sourcePort int, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error) {
	c := &dns.Client{
		Net:        net_,
		Timeout:    timeout,
		TsigSecret: tsigSecret,
	}
	if source != nil {
		c.Dialer = &net.Dialer{
			Timeout:   timeout,
			LocalAddr: localAddr(net_, source, sourcePort),
		}
	}

	addr := net.JoinHostPort(nameserver, fmt.Sprintf("%d", port))

	resp, _, err := c.ExchangeContext(ctx, req, addr)
	if err != nil {
		return nil, classifyDNSError(err)
	}
	if net_ == "udp" && resp.Truncated {
		return nil, ErrTruncated
	}
	return resp, nil
}

// classifyDNSError maps miekg/dns's own error values onto the taxonomy the
// resolution driver switches on (spec.md §4.E's error path).
func classifyDNSError(err error) error {
	if errors.Is(err, dns.ErrShortRead) {
		return fmt.Errorf("%w: %v", ErrFormatError, err)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "overflow"), strings.Contains(msg, "bad rdlength"), strings.Contains(msg, "truncated name"):
		return fmt.Errorf("%w: %v", ErrFormatError, err)
	case strings.Contains(msg, "not implemented"):
		return fmt.Errorf("%w: %v", ErrNotImplemented, err)
	default:
		return err
	}
}

func localAddr(net_ string, source net.IP, sourcePort int) net.Addr {
	if net_ == "tcp" {
		return &net.TCPAddr{IP: source, Port: sourcePort}
	}
	return &net.UDPAddr{IP: source, Port: sourcePort}
}

const dohContentType = "application/dns-message"

// HTTPS performs a DNS-over-HTTPS exchange per RFC 8484: the packed query
// is POSTed as application/dns-message and the response is unpacked the
// same way.
func (d *Default) HTTPS(ctx context.Context, req *dns.Msg, url string, timeout time.Duration, tsigSecret map[string]string) (*dns.Msg, error) {
	packed, err := req.Pack()
	if err != nil {
		return nil, fmt.Errorf("transport: pack query: %w", err)
	}

	if tsigRR := req.IsTsig(); tsigRR != nil {
		if secret, ok := tsigSecret[tsigRR.Hdr.Name]; ok {
			packed, _, err = dns.TsigGenerate(req, secret, "", false)
			if err != nil {
				return nil, fmt.Errorf("transport: sign query: %w", err)
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("transport: build https request: %w", err)
	}
	httpReq.Header.Set("Content-Type", dohContentType)
	httpReq.Header.Set("Accept", dohContentType)

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transport: https exchange: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport: https status %d", httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read https response: %w", err)
	}

	resp := new(dns.Msg)
	if err := resp.Unpack(body); err != nil {
		return nil, fmt.Errorf("transport: unpack https response: %w", err)
	}

	return resp, nil
}
