// Package server implements a wire-exact simulator of the Turbo-BrainVoyager
// / Turbo-Satori network plugin, for tests, CI, and developing paradigm
// scripts without a scanner.
//
// Request processing:
//
//	Accept conn → handleConn (one goroutine per connection)
//	  → read frame → parse name/args → handler(args) → echo framing → reply
//
// Requests on one connection are served strictly in order. The protocol has
// no sequence numbers, so parallel processing would scramble the echo
// matching on the client side.
package server

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"tbv-rpc/codec"
	"tbv-rpc/protocol"
	"tbv-rpc/registry"
)

// Handler produces the typed payload for one request. args holds the raw
// packed argument bytes exactly as the client sent them; the returned bytes
// are appended after the echo.
type Handler func(args []byte) []byte

// Simulator is the fake analysis server.
type Simulator struct {
	mu       sync.Mutex
	handlers map[string]Handler
	version  [3]int32

	listener net.Listener
	wg       sync.WaitGroup // in-flight connections, for graceful shutdown
	shutdown atomic.Bool    // suppresses the Accept error caused by Close

	log zerolog.Logger

	reg     registry.Registry
	regName string
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithVersion sets the plugin version returned by the handshake.
func WithVersion(major, minor, patch int32) Option {
	return func(s *Simulator) { s.version = [3]int32{major, minor, patch} }
}

// WithLogger sets the event sink. Default is no logging.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

// New creates a simulator with the handshake pre-installed and no query
// handlers. Unhandled request names are answered with the reject sentinel,
// exactly like the real plugin.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		handlers: make(map[string]Handler),
		version:  [3]int32{3, 0, 0},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Handle("Request Socket", func([]byte) []byte {
		out := codec.Int32(s.version[0])
		out = append(out, codec.Int32(s.version[1])...)
		out = append(out, codec.Int32(s.version[2])...)
		return out
	})
	return s
}

// Handle installs (or replaces) the handler for a request name.
func (s *Simulator) Handle(name string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

// Listen binds the listener; Addr is valid afterwards.
func (s *Simulator) Listen(network, address string) error {
	ln, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, useful with ":0" listeners in tests.
func (s *Simulator) Addr() string {
	return s.listener.Addr().String()
}

// Announce registers the simulator's address in a registry under the given
// server name. Shutdown deregisters it.
func (s *Simulator) Announce(reg registry.Registry, name, variant string, ttl int64) error {
	if err := reg.Register(name, registry.Endpoint{Addr: s.Addr(), Variant: variant}, ttl); err != nil {
		return err
	}
	s.reg = reg
	s.regName = name
	return nil
}

// Serve runs the accept loop until Shutdown. One goroutine per connection.
func (s *Simulator) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Shutdown deregisters, stops accepting, and waits for open connections to
// drain, up to the given timeout.
func (s *Simulator) Shutdown(timeout time.Duration) error {
	if s.reg != nil {
		s.reg.Deregister(s.regName, s.Addr())
	}

	// Flag before Close so Serve reads the Accept error as intentional.
	s.shutdown.Store(true)
	s.listener.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("server: timeout waiting for open connections to drain")
	}
}

func (s *Simulator) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	for {
		name, args, err := readRequest(conn)
		if err != nil {
			return // connection closed or stream corrupted
		}

		s.mu.Lock()
		h, ok := s.handlers[name]
		s.mu.Unlock()

		var payload []byte
		if !ok {
			payload = []byte(protocol.RejectSentinel + ": '" + name + "'")
			s.log.Debug().Str("request", name).Msg("rejected unknown request")
		} else {
			payload = append(protocol.EchoPrefix(name, args), h(args)...)
			s.log.Debug().Str("request", name).Int("args", len(args)).Msg("served")
		}

		if err := writeResponse(conn, payload); err != nil {
			return
		}
	}
}

// readRequest reads and parses one request frame:
// int64 length ‖ 3 reserved bytes ‖ marker ‖ name ‖ 00 ‖ args.
func readRequest(conn net.Conn) (string, []byte, error) {
	prefix := make([]byte, protocol.PrefixSize)
	if _, err := io.ReadFull(conn, prefix); err != nil {
		return "", nil, err
	}
	total := protocol.DecodePrefix(prefix)
	if total < 5 {
		return "", nil, fmt.Errorf("server: frame of %d bytes is shorter than its own header", total)
	}

	body := make([]byte, total)
	if _, err := io.ReadFull(conn, body); err != nil {
		return "", nil, err
	}

	nameLen := int(body[3]) - 1
	if nameLen < 0 || 5+nameLen > len(body) {
		return "", nil, fmt.Errorf("server: name marker %d out of range", body[3])
	}
	name := string(body[4 : 4+nameLen])
	if body[4+nameLen] != 0x00 {
		return "", nil, fmt.Errorf("server: missing separator after request name")
	}
	return name, body[5+nameLen:], nil
}

// writeResponse frames a payload: int64 length, then a 4-byte header the
// client's receive path discards, then the payload.
func writeResponse(conn net.Conn, payload []byte) error {
	buf := make([]byte, 0, protocol.PrefixSize+protocol.ResponseHeaderSize+len(payload))
	buf = binary.BigEndian.AppendUint64(buf, uint64(protocol.ResponseHeaderSize+len(payload)))
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, payload...)
	_, err := conn.Write(buf)
	return err
}
