// Package transport provides the stream transport the protocol client runs
// over: connect, send bytes, receive exactly N bytes within a time budget,
// drain buffered bytes, close.
//
// The transport is deliberately synchronous. The wire protocol has no
// sequence numbers (a response is matched to its request only by the echoed
// request bytes), so exactly one request may be in flight per connection and
// a background read loop would have nothing to demultiplex on. Serialization
// of callers is handled one level up, in the client.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// ErrTimeout is returned by Receive when the requested number of bytes did
// not arrive within the budget.
var ErrTimeout = errors.New("transport: receive timed out")

// ErrNotConnected is returned when Send, Receive, or Clear is called on a
// transport without an open connection.
var ErrNotConnected = errors.New("transport: not connected")

// Transport is a stream connection to an analysis server.
type Transport interface {
	// Connect opens the stream. Calling Connect on an open transport is an
	// error; the caller owns reconnection.
	Connect() error

	// Send writes the full buffer to the stream.
	Send(data []byte) error

	// Receive reads exactly n bytes, waiting at most budget for them.
	// It returns ErrTimeout if the bytes do not arrive in time; any bytes
	// already read are discarded with the rest of the broken exchange.
	Receive(n int, budget time.Duration) ([]byte, error)

	// Clear drains whatever buffered bytes are immediately available,
	// best effort. Used before each request to drop stale data left over
	// from a timed-out or abandoned exchange.
	Clear() error

	// Close tears down the stream. Idempotent.
	Close() error
}

// TCP implements Transport over a single TCP connection.
type TCP struct {
	addr        string
	dialTimeout time.Duration
	conn        net.Conn
}

// NewTCP creates a disconnected TCP transport for the given address
// (host:port). dialTimeout bounds Connect; zero means no bound.
func NewTCP(addr string, dialTimeout time.Duration) *TCP {
	return &TCP{addr: addr, dialTimeout: dialTimeout}
}

// Connect dials the server.
func (t *TCP) Connect() error {
	if t.conn != nil {
		return fmt.Errorf("transport: already connected to %s", t.addr)
	}
	conn, err := net.DialTimeout("tcp", t.addr, t.dialTimeout)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", t.addr, err)
	}
	t.conn = conn
	return nil
}

// Send writes the full buffer to the connection.
func (t *TCP) Send(data []byte) error {
	if t.conn == nil {
		return ErrNotConnected
	}
	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}

// Receive reads exactly n bytes within budget using a read deadline.
// A non-positive budget fails immediately with ErrTimeout: the caller's
// time allowance is already spent.
func (t *TCP) Receive(n int, budget time.Duration) ([]byte, error) {
	if t.conn == nil {
		return nil, ErrNotConnected
	}
	if budget <= 0 {
		return nil, ErrTimeout
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(budget)); err != nil {
		return nil, fmt.Errorf("transport: set deadline: %w", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(t.conn, buf); err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("transport: receive: %w", err)
	}
	return buf, nil
}

// Clear reads and discards everything immediately available on the
// connection. Not atomic with the next Send: a stray response arriving
// between the two still lands in the next exchange.
func (t *TCP) Clear() error {
	if t.conn == nil {
		return ErrNotConnected
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return fmt.Errorf("transport: set deadline: %w", err)
	}
	scratch := make([]byte, 4096)
	for {
		if _, err := t.conn.Read(scratch); err != nil {
			return nil
		}
	}
}

// Close tears down the connection. Safe to call repeatedly.
func (t *TCP) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
