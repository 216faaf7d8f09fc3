package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/tbv-rpc/"

// EtcdRegistry implements Registry on etcd v3. Entries live under
// /tbv-rpc/{name}/{addr} as JSON-encoded Endpoints, bound to TTL leases so
// that a dead analysis machine disappears from the directory on its own.
type EtcdRegistry struct {
	client *clientv3.Client // thread-safe, shared across goroutines
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register stores the endpoint under a TTL lease and keeps the lease alive
// in the background.
func (r *EtcdRegistry) Register(name string, ep Endpoint, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(ep)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, keyPrefix+name+"/"+ep.Addr, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain KeepAlive responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes the endpoint, typically during simulator shutdown.
func (r *EtcdRegistry) Deregister(name string, addr string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+name+"/"+addr)
	return err
}

// Watch re-reads the endpoint list on every change under the name's prefix.
// Cancelling ctx ends the watch and closes the returned channel.
func (r *EtcdRegistry) Watch(ctx context.Context, name string) <-chan []Endpoint {
	ch := make(chan []Endpoint, 1)
	prefix := keyPrefix + name + "/"

	go func() {
		defer close(ch)
		watchChan := r.client.Watch(ctx, prefix, clientv3.WithPrefix())
		for range watchChan {
			// Re-fetch the full list; simpler than folding individual
			// watch events into it.
			endpoints, _ := r.Discover(name)
			select {
			case ch <- endpoints:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// Discover lists the currently registered endpoints for a server name.
func (r *EtcdRegistry) Discover(name string) ([]Endpoint, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+name+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]Endpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var ep Endpoint
		if err := json.Unmarshal(kv.Value, &ep); err != nil {
			continue // skip malformed entries
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}
