// Package tsig provides the minimal keyring type Resolver.UseTSIG threads
// through to codec.Query and the default transport, mirroring the
// keyring+keyname+algorithm triple dnspython's resolver.py accepts.
package tsig

// Keyring maps a fully-qualified key name to its base64 secret, the same
// shape github.com/miekg/dns's Client.TsigSecret expects.
type Keyring map[string]string

// Credentials names which entry of a Keyring to sign outgoing requests
// with, and the algorithm to use.
type Credentials struct {
	Keyring   Keyring
	KeyName   string
	Algorithm string // e.g. "hmac-sha256.", defaults applied by the caller
}

// DefaultAlgorithm is used when Credentials.Algorithm is empty.
const DefaultAlgorithm = "hmac-sha256."
