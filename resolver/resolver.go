// Package resolver implements the core of a DNS stub resolver: the
// resolution driver, answer assembly, candidate-name expansion, and the
// public Resolver facade described by spec.md.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
	"github.com/ferrodns/resolver/transport"
	"github.com/ferrodns/resolver/tsig"
)

// Resolver is the public facade: it holds configuration, an optional cache,
// and exposes Resolve and reverse-lookup helpers. Grounded on the teacher's
// Resolver type (TimeoutPolicy/CachePolicy fields, New constructor), with
// the recursive query engine replaced by the stub-resolver driver spec.md
// §4.E/§4.F describe.
type Resolver struct {
	// Config holds the resolver's settings. It is read-mostly: callers that
	// mutate it concurrently with Resolve are responsible for their own
	// synchronization, matching spec.md §5.
	Config *Config

	// Transport performs the actual network exchanges. Defaults to
	// transport.Default.
	Transport transport.Transport

	// Now is the clock Resolve uses; overridable for tests.
	Now func() time.Time
}

// New returns a Resolver with NewConfig's defaults, the default transport,
// and time.Now as its clock.
func New() *Resolver {
	return &Resolver{
		Config:    NewConfig(),
		Transport: &transport.Default{},
		Now:       time.Now,
	}
}

// SetNameservers validates and installs ns as the resolver's nameserver
// list. Each entry must be an IP literal (optionally host:port) or an
// "https://" DoH URL; anything else is rejected, mirroring the teacher's
// WithZoneServer/SetSystemServers address validation.
func (r *Resolver) SetNameservers(ns []string) error {
	for _, n := range ns {
		switch transport.Classify(n) {
		case transport.KindIP:
			host := n
			if h, _, err := net.SplitHostPort(n); err == nil {
				host = h
			}
			if net.ParseIP(host) == nil {
				return fmt.Errorf("resolver: not an ip address or https url: %s", n)
			}
		case transport.KindUnknown:
			return fmt.Errorf("resolver: unsupported nameserver scheme: %s", n)
		}
	}

	r.Config.Nameservers = append([]string(nil), ns...)
	return nil
}

// UseTSIG configures TSIG-signed outgoing queries.
func (r *Resolver) UseTSIG(keyring tsig.Keyring, keyname, algorithm string) {
	if algorithm == "" {
		algorithm = tsig.DefaultAlgorithm
	}
	r.Config.TSIG = &tsig.Credentials{Keyring: keyring, KeyName: keyname, Algorithm: algorithm}
}

// UseEDNS configures EDNS0. level < 0 disables EDNS entirely.
func (r *Resolver) UseEDNS(level int, dnssec bool, payload uint16) {
	r.Config.EDNS = EDNS{Level: level, DNSSEC: dnssec, Payload: payload}
}

// SetFlags overrides the header flags set on every outgoing query.
func (r *Resolver) SetFlags(rd, ad, cd bool) {
	r.Config.Flags = &FlagOverride{RD: rd, AD: ad, CD: cd}
}

// ResolveOption customizes a single Resolve call.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	tcp             bool
	source          net.IP
	sourcePort      int
	raiseOnNoAnswer bool
	lifetime        *time.Duration
	search          *bool
}

func defaultResolveOptions() resolveOptions {
	return resolveOptions{raiseOnNoAnswer: true}
}

// WithTCP forces the first attempt of every qname to use TCP.
func WithTCP(tcp bool) ResolveOption { return func(o *resolveOptions) { o.tcp = tcp } }

// WithSource binds outgoing queries to a specific local address.
func WithSource(ip net.IP, port int) ResolveOption {
	return func(o *resolveOptions) { o.source = ip; o.sourcePort = port }
}

// WithRaiseOnNoAnswer controls whether a name that exists but has no
// records of the requested type/class raises NoAnswerError. Defaults true.
func WithRaiseOnNoAnswer(raise bool) ResolveOption {
	return func(o *resolveOptions) { o.raiseOnNoAnswer = raise }
}

// WithLifetime overrides the resolver's configured overall lifetime for
// this call only.
func WithLifetime(d time.Duration) ResolveOption {
	return func(o *resolveOptions) { o.lifetime = &d }
}

// WithSearch forces the search list on or off for this call, overriding
// Config.UseSearchByDefault.
func WithSearch(search bool) ResolveOption {
	return func(o *resolveOptions) { o.search = &search }
}

// Resolve runs spec.md §4.E/§4.F's driver loop to resolve (qname, rdtype,
// rdclass) against the resolver's configured nameservers.
func (r *Resolver) Resolve(ctx context.Context, qname dnsname.Name, rdtype dnsname.RRType, rdclass dnsname.RRClass, opts ...ResolveOption) (answer.Answer, error) {
	o := defaultResolveOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if rdtype.IsMetatype() || rdclass.IsMetaclass() {
		return answer.Answer{}, ErrNoMetaqueries
	}

	cfg := r.Config
	lifetime := cfg.Lifetime
	if o.lifetime != nil {
		lifetime = *o.lifetime
	}

	res, err := newResolution(cfg, qname, rdtype, rdclass, o.search, o.raiseOnNoAnswer, o.tcp)
	if err != nil {
		return answer.Answer{}, err
	}

	clk := newMonotonicClock(r.Now)
	start, ok := clk.tick()
	if !ok {
		return answer.Answer{}, &TimeoutError{}
	}

	for {
		now, ok := clk.tick()
		if !ok {
			return answer.Answer{}, &TimeoutError{Duration: now.Sub(start)}
		}

		query, cached, err := res.nextRequest(now)
		if err != nil {
			return answer.Answer{}, err
		}
		if cached != nil {
			return *cached, nil
		}

		answered, done, err := r.driveQname(ctx, res, query, cfg, lifetime, start, clk, o)
		if err != nil {
			return answer.Answer{}, err
		}
		if done {
			return *answered, nil
		}
		// Otherwise this qname ended in NXDOMAIN; the outer loop advances
		// to the next candidate.
	}
}

// driveQname runs the inner "try every nameserver" loop for the qname
// nextRequest just popped, per spec.md §4.E's driver loop contract.
func (r *Resolver) driveQname(ctx context.Context, res *resolution, query *codec.Query, cfg *Config, lifetime time.Duration, start time.Time, clk *monotonicClock, o resolveOptions) (*answer.Answer, bool, error) {
	for {
		now, ok := clk.tick()
		if !ok {
			return nil, false, &TimeoutError{Duration: now.Sub(start)}
		}

		ns, port, tcp, sleep, err := res.nextNameserver()
		if err != nil {
			return nil, false, err
		}

		kind := transport.Classify(ns)
		if kind == transport.KindUnknown {
			continue
		}

		if sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, false, ctx.Err()
			case <-timer.C:
			}
		}

		now, ok = clk.tick()
		if !ok {
			return nil, false, &TimeoutError{Duration: now.Sub(start)}
		}
		attemptTimeout, terr := computeTimeout(lifetime, start, now, cfg.Timeout)
		if terr != nil {
			return nil, false, terr
		}

		rawResp, dispatchErr := r.dispatch(ctx, kind, query, ns, port, tcp, o, attemptTimeout)

		var resp *codec.Response
		if dispatchErr == nil {
			resp = codec.NewResponse(rawResp)
		}

		now, _ = clk.tick()
		ans, out, fatal := res.queryResult(resp, dispatchErr, ns, port, tcp, now)
		if fatal != nil {
			return nil, false, fatal
		}
		if out == outcomeStop {
			return ans, ans != nil, nil
		}
	}
}

// dispatch sends query through the appropriate transport for ns's kind.
func (r *Resolver) dispatch(ctx context.Context, kind transport.Kind, query *codec.Query, ns string, port int, tcp bool, o resolveOptions, timeout time.Duration) (*dns.Msg, error) {
	host := ns
	if h, p, err := net.SplitHostPort(ns); err == nil {
		host = h
		if pn, perr := parsePort(p); perr == nil {
			port = pn
		}
	}

	secret := query.TSIGSecret()

	switch kind {
	case transport.KindHTTPS:
		return r.Transport.HTTPS(ctx, query.Msg(), ns, timeout, secret)
	default:
		if tcp {
			return r.Transport.TCP(ctx, query.Msg(), host, port, o.source, o.sourcePort, timeout, secret)
		}
		return r.Transport.UDP(ctx, query.Msg(), host, port, o.source, o.sourcePort, timeout, secret)
	}
}

func parsePort(s string) (int, error) {
	var p int
	_, err := fmt.Sscanf(s, "%d", &p)
	return p, err
}

// computeTimeout implements spec.md §4.E/§4.F: the per-attempt ceiling is
// min(lifetime-elapsed, timeout); once the lifetime budget is exhausted it
// raises Timeout.
func computeTimeout(lifetime time.Duration, start, now time.Time, perAttempt time.Duration) (time.Duration, error) {
	elapsed := now.Sub(start)
	remaining := lifetime - elapsed
	if remaining <= 0 {
		return 0, &TimeoutError{Duration: elapsed}
	}
	if remaining < perAttempt {
		return remaining, nil
	}
	return perAttempt, nil
}

// ResolveText is the text-parsing entry point: it parses name/rdtype/rdclass
// and calls Resolve. Per spec.md §9's design note, the polymorphic
// "accepts either typed or textual input" surface is split into two
// concrete entry points instead of one dynamically-typed one.
func (r *Resolver) ResolveText(ctx context.Context, name, rdtype, rdclass string, opts ...ResolveOption) (answer.Answer, error) {
	qname, err := dnsname.Parse(name)
	if err != nil {
		return answer.Answer{}, err
	}
	t, err := dnsname.ParseRRType(rdtype)
	if err != nil {
		return answer.Answer{}, err
	}
	c, err := dnsname.ParseRRClass(rdclass)
	if err != nil {
		return answer.Answer{}, err
	}
	return r.Resolve(ctx, qname, t, c, opts...)
}

// ResolveAddress reverse-maps ipaddr to its in-addr.arpa/ip6.arpa PTR name
// and resolves it. Grounded on the teacher's arpaName/arpaName4/arpaName6
// in dns.go, now producing a dnsname.Name instead of a raw string.
func (r *Resolver) ResolveAddress(ctx context.Context, ipaddr net.IP, opts ...ResolveOption) (answer.Answer, error) {
	name, err := arpaName(ipaddr)
	if err != nil {
		return answer.Answer{}, err
	}
	opts = append(opts, WithSearch(false))
	return r.Resolve(ctx, name, dnsname.TypePTR, dnsname.ClassIN, opts...)
}

// ZoneForName implements spec.md §4.F: repeatedly query SOA, climbing with
// Parent() until the response's owner matches the query name, absorbing
// NXDOMAIN/NoAnswer along the way.
func ZoneForName(ctx context.Context, r *Resolver, name dnsname.Name, rdclass dnsname.RRClass, tcp bool) (dnsname.Name, error) {
	if !name.IsAbsolute() {
		return dnsname.Name{}, ErrNotAbsolute
	}

	current := name
	for {
		a, err := r.Resolve(ctx, current, dnsname.TypeSOA, rdclass, WithTCP(tcp), WithRaiseOnNoAnswer(false))
		switch {
		case err == nil:
			if a.HasRRSet && a.RRSet.Name == current {
				return current, nil
			}
		case isAbsorbable(err):
			// fall through to climb
		default:
			return dnsname.Name{}, err
		}

		parent, perr := current.Parent()
		if perr != nil {
			return dnsname.Name{}, ErrNoRootSOA
		}
		current = parent
	}
}

func isAbsorbable(err error) bool {
	var nx *NXDomainError
	var na *NoAnswerError
	return errors.As(err, &nx) || errors.As(err, &na)
}
