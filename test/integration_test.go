package test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tbv-rpc/client"
	"tbv-rpc/codec"
	"tbv-rpc/loadbalance"
	"tbv-rpc/middleware"
	"tbv-rpc/registry"
	"tbv-rpc/server"
	"tbv-rpc/tbv"
)

func startScanner(t *testing.T, opts ...server.Option) *server.Simulator {
	t.Helper()
	sim := server.New(opts...)
	require.NoError(t, sim.Listen("tcp", "127.0.0.1:0"))
	go sim.Serve()
	t.Cleanup(func() { sim.Shutdown(time.Second) })
	return sim
}

func TestDiscoveryDialAndQuery(t *testing.T) {
	sim := startScanner(t, server.WithVersion(4, 0, 0))
	sim.Handle("tGetCurrentTimePoint", func([]byte) []byte { return codec.Int32(11) })

	reg := registry.NewStaticRegistry()
	require.NoError(t, sim.Announce(reg, "scanner", "tbv", 30))

	conn, err := client.DialService(reg, "scanner", loadbalance.NewRoundRobin(),
		client.WithTimeout(time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	c := tbv.Wrap(conn)
	assert.Equal(t, [3]int32{4, 0, 0}, c.PluginVersion())

	tp, _, err := c.GetCurrentTimePoint()
	require.NoError(t, err)
	assert.Equal(t, int32(11), tp)
}

func TestRoundRobinAcrossScanners(t *testing.T) {
	reg := registry.NewStaticRegistry()
	for _, id := range []int32{100, 200} {
		sim := startScanner(t)
		sim.Handle("tGetCurrentTimePoint", func(v int32) server.Handler {
			return func([]byte) []byte { return codec.Int32(v) }
		}(id))
		require.NoError(t, sim.Announce(reg, "scanner", "tbv", 30))
	}

	bal := loadbalance.NewRoundRobin()
	seen := map[int32]bool{}
	for i := 0; i < 2; i++ {
		conn, err := client.DialService(reg, "scanner", bal,
			client.WithTimeout(time.Second))
		require.NoError(t, err)

		tp, _, err := tbv.Wrap(conn).GetCurrentTimePoint()
		require.NoError(t, err)
		seen[tp] = true
		conn.Close()
	}
	assert.Len(t, seen, 2)
}

func TestFullMiddlewareChain(t *testing.T) {
	sim := startScanner(t)
	sim.Handle("tGetMeanOfROI", func(args []byte) []byte {
		roi, _ := codec.DecodeInt32(args)
		return codec.Float32(float32(roi) * 2)
	})

	promReg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetrics(promReg)
	require.NoError(t, err)

	conn, err := client.DialService(
		registryWith(t, sim), "scanner", loadbalance.NewRoundRobin(),
		client.WithTimeout(time.Second),
		client.WithMiddleware(
			middleware.Logging(zerolog.Nop()),
			metrics.Middleware(),
			middleware.RateLimit(100, 10),
			middleware.Retry(2, 10*time.Millisecond),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	c := tbv.Wrap(conn)
	for roi := int32(0); roi < 3; roi++ {
		mean, _, err := c.GetMeanOfROI(roi)
		require.NoError(t, err)
		assert.Equal(t, float32(roi)*2, mean)
	}

	families, err := promReg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "tbvrpc_request_duration_seconds")
}

func registryWith(t *testing.T, sim *server.Simulator) registry.Registry {
	t.Helper()
	reg := registry.NewStaticRegistry()
	require.NoError(t, sim.Announce(reg, "scanner", "tbv", 30))
	return reg
}
