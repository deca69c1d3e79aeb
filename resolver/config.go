package resolver

import (
	"os"
	"strings"
	"time"

	"github.com/ferrodns/resolver/cache"
	"github.com/ferrodns/resolver/dnsname"
	"github.com/ferrodns/resolver/tsig"
)

// EDNS holds the EDNS0 level/flags/payload a Resolver attaches to outgoing
// queries. Level -1 means EDNS is disabled, matching dnspython's resolver.py
// default.
type EDNS struct {
	Level   int
	DNSSEC  bool
	Payload uint16
}

// DefaultEDNS matches dnspython's resolver.py default: EDNS disabled.
var DefaultEDNS = EDNS{Level: -1, Payload: 1232}

// FlagOverride, when non-nil on a Config, replaces the header flags the
// codec would otherwise set on every outgoing query.
type FlagOverride struct {
	RD bool
	AD bool
	CD bool
}

// Config is a Resolver's configuration: nameservers, search rules, timeouts,
// and the optional cache. Grounded on the teacher's exported Resolver
// fields (TimeoutPolicy, CachePolicy) generalized to the full field set
// spec.md §3 "Resolver configuration" names.
type Config struct {
	// Nameservers is the ordered list of recursive servers to query: IP
	// literals (optionally host:port) or "https://..." DoH endpoints.
	Nameservers []string

	// NameserverPorts overrides Port for specific entries of Nameservers.
	NameserverPorts map[string]int

	// Port is the default port used for any nameserver not named in
	// NameserverPorts.
	Port int

	// Search is the list of suffixes appended to unqualified names.
	Search []dnsname.Name

	// Domain is the single suffix appended to a relative query when search
	// is disabled or Search is empty.
	Domain dnsname.Name

	// Ndots is the minimum label count at which a name is "dotted enough"
	// to be tried against Search before the bare "+root" attempt. A nil
	// Ndots means no threshold: Search is always tried.
	Ndots *int

	// Timeout is the per-attempt ceiling passed to the transport.
	Timeout time.Duration

	// Lifetime is the end-to-end ceiling for one resolve call.
	Lifetime time.Duration

	EDNS EDNS
	TSIG *tsig.Credentials
	Flags *FlagOverride

	Rotate             bool
	RetryServfail      bool
	UseSearchByDefault bool

	// Cache is consulted by the resolution driver and populated on
	// NOERROR/negative responses. A nil Cache disables caching entirely.
	Cache cache.Cache
}

// NewConfig returns the defaults reset() would populate: empty
// nameservers, port 53, 2s per-attempt timeout, 30s lifetime, EDNS
// disabled, no TSIG, no cache, rotate/retry_servfail off, and domain set to
// the local hostname's parent (or root if that can't be determined).
func NewConfig() *Config {
	return &Config{
		Nameservers:        nil,
		NameserverPorts:    map[string]int{},
		Port:               53,
		Domain:             localDomain(),
		Timeout:            2 * time.Second,
		Lifetime:           30 * time.Second,
		EDNS:               DefaultEDNS,
		UseSearchByDefault: false,
	}
}

// localDomain returns the parent of the local hostname, or the root name if
// the hostname can't be determined or has no parent.
func localDomain() dnsname.Name {
	host, err := os.Hostname()
	if err != nil {
		return dnsname.Root
	}

	if i := strings.IndexByte(host, '.'); i >= 0 {
		name, err := dnsname.Parse(host[i+1:] + ".")
		if err == nil {
			return name
		}
	}

	return dnsname.Root
}
