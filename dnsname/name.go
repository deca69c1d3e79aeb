// Package dnsname implements the DomainName, RecordType, and RecordClass
// value types shared by the resolver and cache packages.
package dnsname

import (
	"errors"
	"strings"

	"github.com/miekg/dns"
)

// ErrNoParent is returned by Name.Parent when called on the root name.
var ErrNoParent = errors.New("dnsname: root name has no parent")

// Root is the absolute root name ".".
var Root = Name{text: ".", absolute: true}

// Name is a sequence of DNS labels with an absolute/relative flag.
//
// Two Names compare equal (via ==) iff they have the same labels, ignoring
// case, and the same absolute/relative flag — Name is built so canonical
// comparison is just Go's built-in equality, which makes it usable directly
// as a map key (see dnsname.CacheKey).
type Name struct {
	text     string // lowercased, dns.SplitDomainName-compatible form, no trailing dot
	absolute bool
}

// Parse builds a Name from its textual form. A trailing dot marks the name
// absolute; its absence marks it relative. Escaped dots (`\.`) inside a
// label are preserved as part of that label.
func Parse(s string) (Name, error) {
	if s == "." {
		return Root, nil
	}

	absolute := dns.IsFqdn(s)
	if _, ok := dns.IsDomainName(s); !ok {
		return Name{}, errors.New("dnsname: invalid domain name: " + s)
	}
	labels := dns.SplitDomainName(s)

	for i, l := range labels {
		labels[i] = strings.ToLower(l)
	}

	return Name{text: strings.Join(labels, "."), absolute: absolute}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compile-time constants.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsAbsolute reports whether n ends at the DNS root.
func (n Name) IsAbsolute() bool { return n.absolute }

// Labels returns the number of labels in n, including the empty root label
// when n is absolute (so "www.example.com." has 4 labels and "." has 1).
func (n Name) Labels() int {
	if n.text == "." || n.text == "" {
		if n.absolute {
			return 1
		}
		return 0
	}

	n2 := dns.CountLabel(n.text)
	if n.absolute {
		n2++
	}
	return n2
}

// Parent returns n with its leftmost label removed. It fails for the root
// name, which has no parent.
func (n Name) Parent() (Name, error) {
	if n.text == "." {
		return Name{}, ErrNoParent
	}

	labels := dns.SplitDomainName(n.text)
	if len(labels) == 0 {
		return Name{}, ErrNoParent
	}
	if len(labels) == 1 {
		if n.absolute {
			return Root, nil
		}
		return Name{}, ErrNoParent
	}

	return Name{text: strings.Join(labels[1:], "."), absolute: n.absolute}, nil
}

// Concatenate returns the name formed by appending suffix's labels to n's.
// n must be relative; the result is absolute iff suffix is absolute.
func (n Name) Concatenate(suffix Name) (Name, error) {
	if n.absolute {
		return Name{}, errors.New("dnsname: cannot concatenate onto an absolute name")
	}

	switch {
	case n.text == "":
		return suffix, nil
	case suffix.text == "." || suffix.text == "":
		return Name{text: n.text, absolute: suffix.absolute}, nil
	default:
		return Name{text: n.text + "." + suffix.text, absolute: suffix.absolute}, nil
	}
}

// String returns the textual round-trip form of n: labels joined by dots,
// with a trailing dot iff n is absolute.
func (n Name) String() string {
	switch {
	case n.text == "." :
		return "."
	case n.text == "":
		if n.absolute {
			return "."
		}
		return ""
	case n.absolute:
		return n.text + "."
	default:
		return n.text
	}
}

// Canonical returns the wire-ready, fully qualified form miekg/dns expects
// (e.g. for dns.Question.Name): always absolute, always dotted.
func (n Name) Canonical() string {
	if n.absolute {
		return n.String()
	}
	return n.text + "."
}
