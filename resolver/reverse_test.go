package resolver

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArpaName_IPv4(t *testing.T) {
	t.Parallel()

	n, err := arpaName(net.ParseIP("192.0.2.1"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0.192.in-addr.arpa.", n.String())
}

func TestArpaName_IPv6(t *testing.T) {
	t.Parallel()

	n, err := arpaName(net.ParseIP("2001:db8::1"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.", n.String())
}

func TestArpaName_NilRejected(t *testing.T) {
	t.Parallel()

	_, err := arpaName(nil)
	assert.Error(t, err)
}
