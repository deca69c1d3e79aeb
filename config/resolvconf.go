// Package config reads system resolver configuration: POSIX resolv.conf on
// every platform (grounded on the teacher's root_nix.go, which called
// dns.ClientConfigFromFile directly) and the Windows registry on Windows
// (replacing the teacher's root_windows.go, which left this unimplemented).
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// ErrNoConfiguration means the source produced no usable nameserver list:
// the file was missing, empty, or named zero servers.
var ErrNoConfiguration = errors.New("config: no resolver configuration found")

// Result is the subset of system resolver configuration a Resolver cares
// about. It intentionally has no dependency on the resolver package so this
// package can stay a leaf in the dependency graph.
type Result struct {
	Nameservers []string
	Search      []string
	Ndots       int
	Timeout     time.Duration
	Attempts    int
	Rotate      bool
}

// FromResolvConf parses a POSIX-style resolv.conf at path, the same file
// the teacher's discoverRootServers read via dns.ClientConfigFromFile.
// Malformed "options ndots:" or "options timeout:" values are silently
// ignored by the underlying parser, which falls back to its own defaults.
func FromResolvConf(path string) (*Result, error) {
	cc, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return nil, ErrNoConfiguration
	}
	if len(cc.Servers) == 0 {
		return nil, ErrNoConfiguration
	}

	rotate := false
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			f := strings.Fields(line)
			if len(f) == 0 || f[0] != "options" {
				continue
			}
			for _, opt := range f[1:] {
				rotate = rotate || opt == "rotate"
			}
		}
	}

	return &Result{
		Nameservers: append([]string(nil), cc.Servers...),
		Search:      append([]string(nil), cc.Search...),
		Ndots:       cc.Ndots,
		Timeout:     time.Duration(cc.Timeout) * time.Second,
		Attempts:    cc.Attempts,
		Rotate:      rotate,
	}, nil
}
