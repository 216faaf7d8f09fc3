// Package client implements the session to a Turbo-BrainVoyager or
// Turbo-Satori analysis server: connect with handshake, serialized
// request/response exchange, close.
//
// A Connection owns framing, echo validation, and the timeout budget; the
// stream itself lives in the transport package. The typed query catalogues
// in the tbv and satori packages embed a *Connection and add only decode
// layouts on top of RequestData.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tbv-rpc/codec"
	"tbv-rpc/message"
	"tbv-rpc/middleware"
	"tbv-rpc/protocol"
	"tbv-rpc/transport"
)

// handshakeRequest is the fixed request sent once after the transport opens.
// The server answers with its three-part plugin version.
const handshakeRequest = "Request Socket"

// DefaultTimeout bounds each request's wait for a response, matching the
// original toolkit's default of 2000 ms.
const DefaultTimeout = 2 * time.Second

// ErrNotConnected is returned by RequestData when the connection is not in
// the connected state. There is no implicit connect.
var ErrNotConnected = errors.New("client: not connected")

// State is the lifecycle state of a Connection.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Connection is one logical session to an analysis server.
//
// All methods are safe for concurrent use; the protocol allows one request
// in flight per connection, so concurrent callers are serialized by an
// internal lock.
type Connection struct {
	mu sync.Mutex

	host    string
	port    int
	timeout time.Duration

	tr      transport.Transport
	ownTr   bool // tr was built from host/port, rebuild on reconnect
	state   State
	version [3]int32

	log     zerolog.Logger
	handler middleware.HandlerFunc
}

// New creates a disconnected Connection. Use Dial to create and connect in
// one step.
func New(host string, port int, opts ...Option) *Connection {
	c := &Connection{
		host:    host,
		port:    port,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		ownTr:   true,
	}
	var mws []middleware.Middleware
	for _, opt := range opts {
		opt(c, &mws)
	}
	c.handler = middleware.Chain(mws...)(c.exchange)
	return c
}

// Dial creates a Connection and connects it. This is the factory the rest
// of the toolkit uses; construction-time errors (unreachable server, failed
// handshake) surface here instead of on first use.
func Dial(host string, port int, opts ...Option) (*Connection, error) {
	c := New(host, port, opts...)
	if err := c.Connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// Host returns the configured server host.
func (c *Connection) Host() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.host
}

// SetHost changes the server host. Fails while connected: the endpoint of a
// live session is immutable.
func (c *Connection) SetHost(host string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Connected {
		return errors.New("client: cannot set host while connected")
	}
	c.host = host
	return nil
}

// Port returns the configured server port.
func (c *Connection) Port() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port
}

// SetPort changes the server port. Fails while connected.
func (c *Connection) SetPort(port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Connected {
		return errors.New("client: cannot set port while connected")
	}
	c.port = port
	return nil
}

// Timeout returns the per-request response budget.
func (c *Connection) Timeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeout
}

// SetTimeout changes the per-request response budget. It applies to the
// connection as a whole; there is no per-call override.
func (c *Connection) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// IsConnected reports whether the session is established.
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Connected
}

// State returns the lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PluginVersion returns the three-part version the server advertised during
// the handshake. Stored for the caller's benefit, never enforced.
func (c *Connection) PluginVersion() [3]int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Connect opens the transport, performs the handshake, and records the
// server's plugin version. A no-op when already connected. There is no
// reconnect with backoff: after a failure the caller closes and dials again.
//
// A handshake payload that cannot be decoded is a setup failure, reported
// as a plain error distinct from the Timeout/Request/Data taxonomy.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Connected {
		return nil
	}
	c.state = Connecting

	if c.tr == nil {
		c.tr = transport.NewTCP(net.JoinHostPort(c.host, strconv.Itoa(c.port)), c.timeout)
		c.ownTr = true
	}
	if err := c.tr.Connect(); err != nil {
		c.state = Disconnected
		if c.ownTr {
			c.tr = nil
		}
		return err
	}

	resp := c.handler(context.Background(), &message.Request{Name: handshakeRequest})
	if resp.Err == nil {
		version, err := codec.DecodeInt32Triple(resp.Data)
		if err == nil {
			c.version = version
			c.state = Connected
			c.log.Debug().
				Str("host", c.host).
				Int("port", c.port).
				Ints32("plugin_version", version[:]).
				Msg("connected")
			return nil
		}
	}

	c.tr.Close()
	if c.ownTr {
		c.tr = nil
	}
	c.state = Disconnected
	if resp.Err != nil {
		return fmt.Errorf("client: connecting to analysis server failed: %w", resp.Err)
	}
	return fmt.Errorf("client: connecting to analysis server failed: bad handshake payload")
}

// RequestData sends one request and returns the typed payload after the
// validated echo, together with the measured round trip.
//
// Failure taxonomy: *protocol.TimeoutError when no complete frame arrived in
// time, *protocol.RequestError when the server rejected the request name,
// *protocol.DataError when the response did not echo the request, and
// ErrNotConnected when called on a closed connection.
//
// Stale bytes from a previously abandoned exchange are drained before
// sending. The drain is not atomic with the send; a stray response landing
// in between is accepted as a known limit of the protocol, which carries no
// request identifiers to re-synchronize on.
func (c *Connection) RequestData(name string, args ...[]byte) ([]byte, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Connected {
		return nil, 0, ErrNotConnected
	}
	resp := c.handler(context.Background(), &message.Request{Name: name, Args: args})
	return resp.Data, resp.RT, resp.Err
}

// Close tears down the transport and returns the connection to the
// disconnected state. Unconditional and idempotent.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.tr != nil {
		err = c.tr.Close()
		if c.ownTr {
			c.tr = nil
		}
	}
	c.state = Disconnected
	return err
}

// exchange is the innermost handler: drain, send, wait, validate.
// Callers hold c.mu.
func (c *Connection) exchange(ctx context.Context, req *message.Request) *message.Response {
	start := time.Now()

	c.tr.Clear()
	if err := c.tr.Send(protocol.EncodeRequest(req.Name, req.Args...)); err != nil {
		return &message.Response{RT: time.Since(start), Err: err}
	}

	payload, err := c.wait(start)
	if err != nil {
		return &message.Response{RT: time.Since(start), Err: err}
	}

	data, err := protocol.StripEcho(payload, req.Name, req.Args...)
	return &message.Response{Data: data, RT: time.Since(start), Err: err}
}

// wait reads one response frame: the 8-byte length prefix, then the payload
// within whatever is left of the timeout budget after the prefix wait.
// A nil, nil return means nothing (or not everything) arrived in time and is
// mapped to a TimeoutError by StripEcho.
func (c *Connection) wait(start time.Time) ([]byte, error) {
	prefix, err := c.tr.Receive(protocol.PrefixSize, c.timeout)
	if errors.Is(err, transport.ErrTimeout) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	length := protocol.DecodePrefix(prefix)
	if length < protocol.ResponseHeaderSize {
		return nil, fmt.Errorf("client: response of %d bytes is shorter than its framing header", length)
	}

	remaining := c.timeout - time.Since(start)
	payload, err := c.tr.Receive(int(length), remaining)
	if errors.Is(err, transport.ErrTimeout) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload[protocol.ResponseHeaderSize:], nil
}
