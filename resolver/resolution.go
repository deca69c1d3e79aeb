package resolver

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/miekg/dns"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/codec"
	"github.com/ferrodns/resolver/dnsname"
	"github.com/ferrodns/resolver/internal/rlog"
	"github.com/ferrodns/resolver/transport"
)

const (
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 2 * time.Second
)

// resolution drives one logical lookup (spec.md §4.E, §3 "Resolution").
// It is strictly single-threaded and discarded after one Resolver.Resolve
// call returns.
type resolution struct {
	cfg    *Config
	rdtype dnsname.RRType
	rdclass dnsname.RRClass

	raiseOnNoAnswer bool
	tcpPreference   bool

	qnamesToTry     []dnsname.Name
	remainingQnames []dnsname.Name

	nxdomainResponses map[string]*codec.Response

	// Per-qname attempt state, (re)initialized each time nextRequest pops a
	// new candidate.
	qname              dnsname.Name
	query              *codec.Query
	nameservers        []string // working pool; mutated (shrunk) on broken servers
	currentNameservers []string // not-yet-tried subset for the current sweep
	errs               []AttemptError
	retryWithTCP       bool
	lastNameserver     string
	backoff            time.Duration
}

func newResolution(cfg *Config, qname dnsname.Name, rdtype dnsname.RRType, rdclass dnsname.RRClass, search *bool, raiseOnNoAnswer, tcp bool) (*resolution, error) {
	candidates, err := candidateNames(qname, search, cfg)
	if err != nil {
		return nil, err
	}

	return &resolution{
		cfg:               cfg,
		rdtype:            rdtype,
		rdclass:           rdclass,
		raiseOnNoAnswer:   raiseOnNoAnswer,
		tcpPreference:     tcp,
		qnamesToTry:       candidates,
		remainingQnames:   append([]dnsname.Name(nil), candidates...),
		nxdomainResponses: make(map[string]*codec.Response),
	}, nil
}

// nextRequest implements spec.md §4.E "Select qname": pop the next
// candidate, consult the cache, or build the outgoing query.
func (r *resolution) nextRequest(now time.Time) (query *codec.Query, cached *answer.Answer, err error) {
	if len(r.remainingQnames) == 0 {
		return nil, nil, &NXDomainError{
			QNames:    r.qnamesToTry,
			Responses: r.nxdomainResponses,
		}
	}

	// Pop the tail: last-pushed candidate is tried first.
	last := len(r.remainingQnames) - 1
	qname := r.remainingQnames[last]
	r.remainingQnames = r.remainingQnames[:last]

	key := dnsname.CacheKey{Name: qname, Type: r.rdtype, Class: r.rdclass}
	if r.cfg.Cache != nil {
		if a, ok := r.cfg.Cache.Get(key); ok {
			if !a.HasRRSet && r.raiseOnNoAnswer {
				return nil, nil, &NoAnswerError{Response: a.Response}
			}
			return nil, &a, nil
		}
	}

	q := codec.NewQuery(qname, r.rdtype, r.rdclass)
	if r.cfg.TSIG != nil {
		algo := r.cfg.TSIG.Algorithm
		q.UseTSIG(r.cfg.TSIG.KeyName, algo, r.cfg.TSIG.Keyring[r.cfg.TSIG.KeyName])
	}
	if r.cfg.EDNS.Level >= 0 {
		q.UseEDNS(r.cfg.EDNS.Payload, r.cfg.EDNS.DNSSEC)
	}
	if r.cfg.Flags != nil {
		q.SetFlags(r.cfg.Flags.RD, r.cfg.Flags.AD, r.cfg.Flags.CD)
	}

	nameservers := append([]string(nil), r.cfg.Nameservers...)
	if r.cfg.Rotate {
		rand.Shuffle(len(nameservers), func(i, j int) {
			nameservers[i], nameservers[j] = nameservers[j], nameservers[i]
		})
	}

	r.qname = qname
	r.query = q
	r.nameservers = nameservers
	r.currentNameservers = append([]string(nil), nameservers...)
	r.errs = nil
	r.lastNameserver = ""
	r.retryWithTCP = false
	r.backoff = initialBackoff

	return q, nil, nil
}

// nextNameserver implements spec.md §4.E "Select nameserver".
func (r *resolution) nextNameserver() (ns string, port int, tcp bool, sleep time.Duration, err error) {
	if r.retryWithTCP {
		r.retryWithTCP = false
		return r.lastNameserver, r.portFor(r.lastNameserver), true, 0, nil
	}

	if len(r.currentNameservers) == 0 {
		if len(r.nameservers) == 0 {
			return "", 0, false, 0, &NoNameserversError{Request: r.query, Errors: r.errs}
		}
		r.currentNameservers = append([]string(nil), r.nameservers...)
		sleep = r.backoff
		r.backoff *= 2
		if r.backoff > maxBackoff {
			r.backoff = maxBackoff
		}
	}

	last := len(r.currentNameservers) - 1
	ns = r.currentNameservers[last]
	r.currentNameservers = r.currentNameservers[:last]

	r.lastNameserver = ns
	return ns, r.portFor(ns), r.tcpPreference, sleep, nil
}

func (r *resolution) portFor(ns string) int {
	if p, ok := r.cfg.NameserverPorts[ns]; ok {
		return p
	}
	return r.cfg.Port
}

// dropNameserver removes ns from the working pool: it is considered broken
// and will not be retried for the remainder of this qname's attempts.
func (r *resolution) dropNameserver(ns string) {
	r.nameservers = removeString(r.nameservers, ns)
	r.currentNameservers = removeString(r.currentNameservers, ns)
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// outcome tags the result of queryResult, per spec.md §9's design note:
// the driver dispatches on a tagged outcome rather than unwinding via
// exceptions.
type outcome int

const (
	outcomeContinue outcome = iota // try the next nameserver
	outcomeStop                    // this qname is done (answer, NXDOMAIN, or exhausted)
)

// queryResult implements spec.md §4.E "Report result".
func (r *resolution) queryResult(resp *codec.Response, dispatchErr error, server string, port int, tcp bool, now time.Time) (ans *answer.Answer, out outcome, fatal error) {
	transportName := "udp"
	if tcp {
		transportName = "tcp"
	}
	if transport.Classify(server) == transport.KindHTTPS {
		transportName = "https"
	}

	if dispatchErr != nil {
		r.errs = append(r.errs, AttemptError{Server: server, Transport: transportName, Port: port, Err: dispatchErr})
		rlog.Debug(map[string]any{"server": server, "transport": transportName, "error": dispatchErr.Error()}, "resolver: attempt failed")

		switch {
		case errors.Is(dispatchErr, transport.ErrTruncated):
			if !tcp {
				r.retryWithTCP = true
			} else {
				r.dropNameserver(server)
			}
		case errors.Is(dispatchErr, transport.ErrFormatError), errors.Is(dispatchErr, transport.ErrNotImplemented):
			rlog.Warn(map[string]any{"server": server}, "resolver: dropping broken nameserver")
			r.dropNameserver(server)
		}

		return nil, outcomeContinue, nil
	}

	switch resp.Rcode() {
	case dns.RcodeSuccess:
		a, err := buildAnswer(r.qname, r.rdtype, r.rdclass, resp, r.raiseOnNoAnswer, server, port, now)
		if err != nil {
			return nil, outcomeStop, err
		}
		if r.cfg.Cache != nil {
			r.cfg.Cache.Put(dnsname.CacheKey{Name: r.qname, Type: r.rdtype, Class: r.rdclass}, a)
		}
		return &a, outcomeStop, nil

	case dns.RcodeNameError:
		r.nxdomainResponses[r.qname.String()] = resp
		return nil, outcomeStop, nil

	case dns.RcodeYXDomain:
		r.errs = append(r.errs, AttemptError{Server: server, Transport: transportName, Port: port, Err: ErrYXDomain, Response: resp})
		return nil, outcomeStop, ErrYXDomain

	default:
		rc := resp.Rcode()
		r.errs = append(r.errs, AttemptError{
			Server:    server,
			Transport: transportName,
			Port:      port,
			Err:       fmt.Errorf("resolver: unexpected rcode %s", dns.RcodeToString[rc]),
			Response:  resp,
		})
		if rc == dns.RcodeServerFailure && r.cfg.RetryServfail {
			// Leave the nameserver in the pool; it may recover.
		} else {
			r.dropNameserver(server)
		}
		return nil, outcomeContinue, nil
	}
}
