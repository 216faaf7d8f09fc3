// Package registry resolves analysis-server names to network endpoints.
//
// A lab typically runs one Turbo-BrainVoyager or Turbo-Satori instance per
// scanner room; experiment machines look the endpoint up by room name
// instead of hardcoding addresses in every paradigm script. Two
// implementations exist: an etcd-backed registry for shared lab
// infrastructure and an in-memory static registry for fixed setups and
// tests.
package registry

import "context"

// Endpoint is one registered analysis-server instance.
type Endpoint struct {
	Addr    string // host:port of the network plugin
	Variant string // "tbv" or "satori", informational
	Version string // advertised plugin version, informational
}

// Registry is the name-to-endpoint directory.
type Registry interface {
	// Register announces an endpoint under a server name with a TTL in
	// seconds; the registration is renewed until Deregister or process
	// death.
	Register(name string, ep Endpoint, ttl int64) error

	// Deregister withdraws an endpoint.
	Deregister(name string, addr string) error

	// Discover returns all live endpoints for a server name.
	Discover(name string) ([]Endpoint, error)

	// Watch emits the updated endpoint list whenever it changes. The
	// channel is closed when ctx is done.
	Watch(ctx context.Context, name string) <-chan []Endpoint
}
