// Package message defines the request/response envelope that moves through
// the client's middleware chain.
//
// A Request names one server operation and carries its packed binary
// arguments; the wire framing lives in the protocol package. The Response
// holds the typed payload (the bytes after the validated echo), the measured
// round-trip time, and the failure, if any.
package message

import "time"

// Request is one operation sent to the analysis server.
//
//   - Name is the short request identifier, e.g. "tGetCurrentTimePoint".
//   - Args holds the packed big-endian argument blobs in call order.
type Request struct {
	Name string
	Args [][]byte
}

// Response is the outcome of one request.
type Response struct {
	Data []byte        // Typed payload after the echo prefix; nil on failure
	RT   time.Duration // Round trip, from buffer drain to validated payload
	Err  error         // Timeout/Request/Data error from the protocol package
}
