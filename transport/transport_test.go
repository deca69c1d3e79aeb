package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want Kind
	}{
		{name: "ipv4", in: "192.0.2.1", want: KindIP},
		{name: "ipv4_with_port", in: "192.0.2.1:5353", want: KindIP},
		{name: "ipv6", in: "2001:db8::1", want: KindIP},
		{name: "ipv6_bracketed_with_port", in: "[2001:db8::1]:53", want: KindIP},
		{name: "https_url", in: "https://dns.example.com/dns-query", want: KindHTTPS},
		{name: "unknown_scheme", in: "quic://dns.example.com", want: KindUnknown},
		{name: "bare_hostname", in: "resolver.example.com", want: KindIP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.in))
		})
	}
}
