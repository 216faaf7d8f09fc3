package client

import (
	"fmt"
	"net"
	"strconv"

	"tbv-rpc/loadbalance"
	"tbv-rpc/registry"
)

// DialService resolves a registered analysis-server name (e.g. a scanner
// room) to an endpoint and dials it. When several endpoints are registered
// under the same name the balancer picks one; the session then stays pinned
// to that endpoint for its whole lifetime.
func DialService(reg registry.Registry, name string, bal loadbalance.Balancer, opts ...Option) (*Connection, error) {
	instances, err := reg.Discover(name)
	if err != nil {
		return nil, fmt.Errorf("client: discover %q: %w", name, err)
	}
	instance, err := bal.Pick(instances)
	if err != nil {
		return nil, fmt.Errorf("client: pick endpoint for %q: %w", name, err)
	}

	host, portStr, err := net.SplitHostPort(instance.Addr)
	if err != nil {
		return nil, fmt.Errorf("client: bad registered address %q: %w", instance.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("client: bad registered port %q: %w", portStr, err)
	}
	return Dial(host, port, opts...)
}
