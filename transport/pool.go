package transport

import (
	"fmt"
	"sync"
)

// Pool manages reusable transports to a single analysis server.
//
// The protocol allows one request in flight per connection, so experiment
// frameworks that interleave queries from several routines either share one
// connection behind the client's lock or borrow exclusive connections from
// this pool. A borrowed transport is used by one caller at a time, which
// keeps echo matching unambiguous.
type Pool struct {
	mu      sync.Mutex
	conns   chan *PoolConn // buffered channel as FIFO queue
	addr    string
	max     int
	cur     int // currently created transports, may be < max
	closed  bool
	factory func() (Transport, error)
}

// PoolConn wraps a Transport with pool metadata.
type PoolConn struct {
	Transport
	unusable bool // Marked true when the exchange on it broke (DataError, conn error)
}

// MarkUnusable flags the transport so Put closes it instead of recycling it.
// Callers do this after a DataError: the stream may still hold bytes of the
// broken exchange.
func (c *PoolConn) MarkUnusable() {
	c.unusable = true
}

// NewPool creates a pool with the given upper bound. Transports are created
// lazily; the pool starts empty and grows on demand.
func NewPool(addr string, max int, factory func() (Transport, error)) *Pool {
	return &Pool{
		conns:   make(chan *PoolConn, max),
		addr:    addr,
		max:     max,
		factory: factory,
	}
}

// Get borrows a transport.
// Strategy:
//  1. Take an idle one from the channel if available
//  2. If the pool is under its limit, create a new one
//  3. Otherwise block until a transport is returned
func (p *Pool) Get() (*PoolConn, error) {
	select {
	case conn := <-p.conns:
		if conn == nil {
			return nil, fmt.Errorf("transport: pool for %s is closed", p.addr)
		}
		if conn.unusable {
			conn.Close()
			p.mu.Lock()
			p.cur--
			p.mu.Unlock()
			return p.createNew()
		}
		return conn, nil
	default:
		p.mu.Lock()
		under := p.cur < p.max
		p.mu.Unlock()
		if under {
			return p.createNew()
		}
		conn := <-p.conns
		if conn == nil {
			return nil, fmt.Errorf("transport: pool for %s is closed", p.addr)
		}
		return conn, nil
	}
}

// Put returns a transport to the pool. Unusable transports are closed and
// dropped so the next Get dials a fresh one. After Close the transport is
// closed instead of recycled.
func (p *Pool) Put(conn *PoolConn) {
	p.mu.Lock()
	if conn.unusable || p.closed {
		p.cur--
		p.mu.Unlock()
		conn.Close()
		return
	}
	p.mu.Unlock()
	p.conns <- conn
}

// Close shuts down the pool and closes all idle transports. Transports still
// borrowed are closed when returned.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.conns)
	for conn := range p.conns {
		conn.Close()
		p.cur--
	}
	return nil
}

func (p *Pool) createNew() (*PoolConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("transport: pool for %s is closed", p.addr)
	}
	if p.cur >= p.max {
		return nil, fmt.Errorf("transport: pool for %s exhausted", p.addr)
	}
	t, err := p.factory()
	if err != nil {
		return nil, err
	}
	p.cur++
	return &PoolConn{Transport: t}, nil
}
