package resolver

import "sync"

var (
	defaultMu       sync.Mutex
	defaultResolver *Resolver
)

// DefaultResolver returns the process-wide Resolver, lazily built from the
// system's resolver configuration on first use. Grounded on the teacher's
// package-level default-resolver pattern (a singleton built from root_nix.go
// /root_windows.go's system config readers).
func DefaultResolver() (*Resolver, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultResolver != nil {
		return defaultResolver, nil
	}

	r, err := newSystemResolver()
	if err != nil {
		return nil, err
	}

	defaultResolver = r
	return defaultResolver, nil
}

// ResetDefaultResolver discards the cached singleton so the next
// DefaultResolver call rebuilds it from current system configuration.
func ResetDefaultResolver() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultResolver = nil
}
