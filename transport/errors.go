package transport

import "errors"

// ErrTruncated is returned by a Transport's UDP method when the server set
// the TC bit: the resolution driver treats this as the standard trigger to
// retry over TCP, per spec.md §4.E/§7.
var ErrTruncated = errors.New("transport: message truncated")

// ErrFormatError means the server returned a malformed wire response the
// codec could not parse. Per spec.md §4.E, the driver treats the offending
// nameserver as broken and drops it from the pool.
var ErrFormatError = errors.New("transport: wire-format error")

// ErrNotImplemented means the server refused the request as an
// unsupported operation. Like ErrFormatError, this marks the nameserver
// broken.
var ErrNotImplemented = errors.New("transport: not implemented")
