// Package protocol implements the length-prefixed binary frame format spoken
// by the network plugins of Turbo-BrainVoyager and Turbo-Satori.
//
// Every request is a single frame: an 8-byte big-endian length prefix
// counting the bytes that follow, 3 reserved zero bytes, a 1-byte marker
// holding the request-name length plus one, the request name, a zero-byte
// separator, and the packed argument blobs in call order.
//
// Request frame:
//
//	0        8          11       12         12+n  13+n
//	┌────────┬──────────┬────────┬──────────┬────┬──────────┐
//	│ total  │ 00 00 00 │ n+1    │ name     │ 00 │ args ... │
//	│ int64  │ reserved │ marker │ n bytes  │    │          │
//	└────────┴──────────┴────────┴──────────┴────┴──────────┘
//
// where total = n + 5 + sum(len(arg)).
//
// Responses are length-prefixed the same way. The first 4 bytes of a
// response payload are framing overhead and are dropped by the receive path;
// the remainder echoes the request name, the separator, and the argument
// bytes before the actual typed payload. The echo is what ties a response to
// the request that produced it, since the protocol has no sequence numbers.
package protocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
)

const (
	// PrefixSize is the size of the big-endian length prefix on both
	// request and response frames.
	PrefixSize = 8

	// ResponseHeaderSize is the number of leading payload bytes consumed
	// as framing overhead before echo validation.
	ResponseHeaderSize = 4

	// RejectSentinel starts every payload with which the server rejects an
	// unknown request name.
	RejectSentinel = "Wrong request!"

	// overhead covers the reserved bytes, the name-length marker, and the
	// name separator counted by the length prefix: total = len(name) + 5 + args.
	overhead = 5
)

// EncodeRequest serializes a request name and its packed argument blobs into
// a complete wire frame.
//
// The name-length marker is a single byte holding len(name)+1; names longer
// than 254 bytes wrap silently. That is an inherited constraint of the wire
// format, not something this layer can reject.
func EncodeRequest(name string, args ...[]byte) []byte {
	argLen := 0
	for _, a := range args {
		argLen += len(a)
	}
	total := len(name) + overhead + argLen

	buf := make([]byte, 0, PrefixSize+total)
	buf = binary.BigEndian.AppendUint64(buf, uint64(total))
	buf = append(buf, 0x00, 0x00, 0x00)
	buf = append(buf, byte(len(name)+1))
	buf = append(buf, name...)
	buf = append(buf, 0x00)
	for _, a := range args {
		buf = append(buf, a...)
	}
	return buf
}

// WriteRequest encodes a request frame and writes it to w.
func WriteRequest(w io.Writer, name string, args ...[]byte) error {
	_, err := w.Write(EncodeRequest(name, args...))
	return err
}

// EchoPrefix returns the byte sequence a well-behaved server puts in front
// of the typed payload: name, zero-byte separator, argument bytes.
func EchoPrefix(name string, args ...[]byte) []byte {
	n := len(name) + 1
	for _, a := range args {
		n += len(a)
	}
	prefix := make([]byte, 0, n)
	prefix = append(prefix, name...)
	prefix = append(prefix, 0x00)
	for _, a := range args {
		prefix = append(prefix, a...)
	}
	return prefix
}

// StripEcho validates a received response payload against the request that
// was sent and returns the typed payload that follows the echo.
//
// A nil payload means nothing arrived before the timeout and yields a
// *TimeoutError. A payload starting with RejectSentinel yields a
// *RequestError carrying the server's message remainder. A payload that does
// not echo the request yields a *DataError: either the stream has desynced
// or the connection was used concurrently.
func StripEcho(payload []byte, name string, args ...[]byte) ([]byte, error) {
	if payload == nil {
		return nil, &TimeoutError{}
	}
	if bytes.HasPrefix(payload, []byte(RejectSentinel)) {
		remainder := string(payload[len(RejectSentinel):])
		return nil, &RequestError{Message: strings.Trim(remainder, ":' \x00")}
	}
	prefix := EchoPrefix(name, args...)
	if len(payload) < len(prefix) || !bytes.Equal(payload[:len(prefix)], prefix) {
		return nil, &DataError{Request: name}
	}
	return payload[len(prefix):], nil
}

// DecodePrefix reads the frame length out of an 8-byte length prefix.
func DecodePrefix(prefix []byte) int64 {
	return int64(binary.BigEndian.Uint64(prefix))
}
