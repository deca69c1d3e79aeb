//go:build windows
// +build windows

package config

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

const tcpipParametersKey = `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`

// FromRegistry reads nameserver configuration from the Windows registry,
// the case the teacher's root_windows.go left as "unimplemented".
func FromRegistry() (*Result, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, tcpipParametersKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, ErrNoConfiguration
	}
	defer k.Close()

	nameservers := readServerList(k, "NameServer")
	if len(nameservers) == 0 {
		nameservers = readServerList(k, "DhcpNameServer")
	}
	if len(nameservers) == 0 {
		return nil, ErrNoConfiguration
	}

	var search []string
	if domain, _, err := k.GetStringValue("Domain"); err == nil && domain != "" {
		search = []string{domain}
	} else if domain, _, err := k.GetStringValue("DhcpDomain"); err == nil && domain != "" {
		search = []string{domain}
	}

	return &Result{
		Nameservers: nameservers,
		Search:      search,
		Ndots:       1,
	}, nil
}

// readServerList splits one of the registry's space- or comma-separated
// server-address values.
func readServerList(k registry.Key, name string) []string {
	v, _, err := k.GetStringValue(name)
	if err != nil || v == "" {
		return nil
	}

	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
