//go:build !windows
// +build !windows

package resolver

import "github.com/ferrodns/resolver/config"

// newSystemResolver builds a Resolver from /etc/resolv.conf, replacing the
// teacher's root_nix.go (which queried the root zone directly instead of
// building a reusable Resolver).
func newSystemResolver() (*Resolver, error) {
	return resolverFromSystemConfig(config.FromResolvConf("/etc/resolv.conf"))
}
