package server

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tbv-rpc/client"
	"tbv-rpc/codec"
	"tbv-rpc/protocol"
	"tbv-rpc/registry"
)

func startSimulator(t *testing.T, sim *Simulator) string {
	t.Helper()
	require.NoError(t, sim.Listen("tcp", "127.0.0.1:0"))
	go sim.Serve()
	t.Cleanup(func() { sim.Shutdown(time.Second) })
	return sim.Addr()
}

func dial(t *testing.T, addr string) *client.Connection {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c, err := client.Dial(host, port, client.WithTimeout(time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHandshake(t *testing.T) {
	sim := New(WithVersion(3, 2, 1))
	addr := startSimulator(t, sim)

	c := dial(t, addr)
	assert.Equal(t, [3]int32{3, 2, 1}, c.PluginVersion())
	assert.True(t, c.IsConnected())
}

func TestHandlerEchoAndPayload(t *testing.T) {
	sim := New()
	sim.Handle("tGetCurrentTimePoint", func([]byte) []byte {
		return codec.Int32(17)
	})
	addr := startSimulator(t, sim)

	c := dial(t, addr)
	data, rt, err := c.RequestData("tGetCurrentTimePoint")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rt, time.Duration(0))

	v, err := codec.DecodeInt32(data)
	require.NoError(t, err)
	assert.Equal(t, int32(17), v)
}

func TestHandlerSeesArgumentBytes(t *testing.T) {
	sim := New()
	sim.Handle("tGetMeanOfROI", func(args []byte) []byte {
		roi, _ := codec.DecodeInt32(args)
		return codec.Float32(float32(roi) * 1.5)
	})
	addr := startSimulator(t, sim)

	c := dial(t, addr)
	data, _, err := c.RequestData("tGetMeanOfROI", codec.Int32(4))
	require.NoError(t, err)

	v, err := codec.DecodeFloat32(data)
	require.NoError(t, err)
	assert.Equal(t, float32(6), v)
}

func TestUnknownRequestIsRejected(t *testing.T) {
	sim := New()
	addr := startSimulator(t, sim)

	c := dial(t, addr)
	_, _, err := c.RequestData("tBadRequest")

	var re *protocol.RequestError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Message, "tBadRequest")
}

func TestSequentialRequestsOnOneConnection(t *testing.T) {
	sim := New()
	tp := int32(0)
	sim.Handle("tGetCurrentTimePoint", func([]byte) []byte {
		tp++
		return codec.Int32(tp)
	})
	addr := startSimulator(t, sim)

	c := dial(t, addr)
	for want := int32(1); want <= 5; want++ {
		data, _, err := c.RequestData("tGetCurrentTimePoint")
		require.NoError(t, err)
		v, err := codec.DecodeInt32(data)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestAnnounceAndShutdownDeregisters(t *testing.T) {
	reg := registry.NewStaticRegistry()

	sim := New()
	require.NoError(t, sim.Listen("tcp", "127.0.0.1:0"))
	go sim.Serve()
	require.NoError(t, sim.Announce(reg, "scanner-1", "tbv", 10))

	eps, err := reg.Discover("scanner-1")
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, sim.Addr(), eps[0].Addr)

	require.NoError(t, sim.Shutdown(time.Second))
	eps, err = reg.Discover("scanner-1")
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestShutdownStopsServe(t *testing.T) {
	sim := New()
	require.NoError(t, sim.Listen("tcp", "127.0.0.1:0"))

	served := make(chan error, 1)
	go func() { served <- sim.Serve() }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, sim.Shutdown(time.Second))

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}
