package resolver

import (
	"errors"
	"time"

	"github.com/ferrodns/resolver/cache"
	"github.com/ferrodns/resolver/config"
	"github.com/ferrodns/resolver/dnsname"
	"github.com/ferrodns/resolver/transport"
)

// resolverFromSystemConfig adapts a config.Result into a ready-to-use
// Resolver, shared by system_nix.go and system_windows.go.
func resolverFromSystemConfig(sys *config.Result, err error) (*Resolver, error) {
	if err != nil {
		if errors.Is(err, config.ErrNoConfiguration) {
			return nil, ErrNoResolverConfiguration
		}
		return nil, err
	}

	cfg := NewConfig()
	cfg.Nameservers = sys.Nameservers
	cfg.Cache = cache.NewSimple()

	for _, s := range sys.Search {
		if n, perr := dnsname.Parse(s); perr == nil {
			cfg.Search = append(cfg.Search, n)
		}
	}

	if sys.Ndots > 0 {
		ndots := sys.Ndots
		cfg.Ndots = &ndots
	}
	if sys.Timeout > 0 {
		cfg.Timeout = sys.Timeout
	}
	if sys.Attempts > 0 {
		cfg.Lifetime = time.Duration(sys.Attempts) * cfg.Timeout
	}
	cfg.Rotate = sys.Rotate

	return &Resolver{
		Config:    cfg,
		Transport: &transport.Default{},
		Now:       time.Now,
	}, nil
}
