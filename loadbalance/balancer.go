// Package loadbalance picks one endpoint when a server name resolves to
// several registered instances (e.g. a bank of simulators in CI).
//
// Only an initial pick happens here: once dialed, a session stays pinned to
// its endpoint, because consecutive queries read state from one running
// analysis.
package loadbalance

import "tbv-rpc/registry"

// Balancer selects one endpoint from the discovered list.
type Balancer interface {
	// Pick selects one endpoint. Must be goroutine-safe.
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name returns the strategy name, for logging.
	Name() string
}
