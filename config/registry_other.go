//go:build !windows
// +build !windows

package config

import "errors"

// FromRegistry is Windows-only; on every other platform system
// configuration comes from FromResolvConf.
func FromRegistry() (*Result, error) {
	return nil, errors.New("config: registry configuration is only available on windows")
}
