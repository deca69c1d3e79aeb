package resolver

import (
	"fmt"
	"net"
	"strings"

	"github.com/ferrodns/resolver/dnsname"
)

// arpaName builds the in-addr.arpa/ip6.arpa owner name for a reverse
// lookup, grounded on the teacher's arpaName/arpaName4/arpaName6 helpers.
func arpaName(ip net.IP) (dnsname.Name, error) {
	if ip == nil {
		return dnsname.Name{}, fmt.Errorf("resolver: nil address")
	}

	if v4 := ip.To4(); v4 != nil {
		return dnsname.Parse(fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", v4[3], v4[2], v4[1], v4[0]))
	}

	v6 := ip.To16()
	if v6 == nil {
		return dnsname.Name{}, fmt.Errorf("resolver: invalid ip address")
	}

	var nibbles [32]byte
	for i, b := range v6 {
		nibbles[i*2] = hexDigit(b >> 4)
		nibbles[i*2+1] = hexDigit(b & 0x0f)
	}

	var sb strings.Builder
	for i := len(nibbles) - 1; i >= 0; i-- {
		sb.WriteByte(nibbles[i])
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa.")

	return dnsname.Parse(sb.String())
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}
