package loadbalance

import (
	"errors"
	"sync/atomic"

	"tbv-rpc/registry"
)

// ErrNoEndpoints is returned when the discovered list is empty.
var ErrNoEndpoints = errors.New("loadbalance: no endpoints available")

// RoundRobin distributes sessions evenly across the endpoint list using a
// lock-free atomic counter.
type RoundRobin struct {
	counter int64
}

// NewRoundRobin returns a balancer starting at the first endpoint.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Pick selects the next endpoint in order.
func (b *RoundRobin) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobin) Name() string {
	return "RoundRobin"
}
