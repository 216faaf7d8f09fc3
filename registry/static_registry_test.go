package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRegistryRegisterDiscover(t *testing.T) {
	reg := NewStaticRegistry()

	require.NoError(t, reg.Register("scanner-1", Endpoint{Addr: "10.0.0.5:55555", Variant: "tbv"}, 0))
	require.NoError(t, reg.Register("scanner-1", Endpoint{Addr: "10.0.0.6:55555", Variant: "tbv"}, 0))

	eps, err := reg.Discover("scanner-1")
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, "10.0.0.5:55555", eps[0].Addr)

	eps, err = reg.Discover("scanner-2")
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestStaticRegistryDeregister(t *testing.T) {
	reg := NewStaticRegistry()
	require.NoError(t, reg.Register("nirs-lab", Endpoint{Addr: "10.0.0.7:55556", Variant: "satori"}, 0))
	require.NoError(t, reg.Deregister("nirs-lab", "10.0.0.7:55556"))

	eps, err := reg.Discover("nirs-lab")
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestStaticRegistryWatch(t *testing.T) {
	reg := NewStaticRegistry()
	ch := reg.Watch(context.Background(), "scanner-1")

	require.NoError(t, reg.Register("scanner-1", Endpoint{Addr: "10.0.0.5:55555"}, 0))

	eps := <-ch
	require.Len(t, eps, 1)
	assert.Equal(t, "10.0.0.5:55555", eps[0].Addr)
}

func TestStaticRegistryWatchCancel(t *testing.T) {
	reg := NewStaticRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	ch := reg.Watch(ctx, "scanner-1")

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}

	// Updates after cancellation reach no watcher.
	require.NoError(t, reg.Register("scanner-1", Endpoint{Addr: "10.0.0.5:55555"}, 0))
}
