package client

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tbv-rpc/codec"
	"tbv-rpc/message"
	"tbv-rpc/middleware"
	"tbv-rpc/protocol"
	"tbv-rpc/transport"
)

// scriptTransport acts out a server from inside the process. Each sent
// request frame is answered by respond; a nil respond leaves the transport
// silent so waits run into their budget.
type scriptTransport struct {
	respond func(name string, args []byte) []byte // post-header payload
	buf     bytes.Buffer
	sent    []string
	cleared int
}

func echoServer(tails map[string][]byte) func(string, []byte) []byte {
	return func(name string, args []byte) []byte {
		if name == handshakeRequest {
			v := codec.Int32(3)
			v = append(v, codec.Int32(1)...)
			v = append(v, codec.Int32(4)...)
			return append(protocol.EchoPrefix(name, args), v...)
		}
		return append(protocol.EchoPrefix(name, args), tails[name]...)
	}
}

func (s *scriptTransport) Connect() error { return nil }

func (s *scriptTransport) Send(frame []byte) error {
	nameLen := int(frame[11]) - 1
	name := string(frame[12 : 12+nameLen])
	args := frame[13+nameLen:]
	s.sent = append(s.sent, name)

	if s.respond == nil {
		return nil
	}
	payload := s.respond(name, args)
	if payload == nil {
		return nil
	}
	prefix := make([]byte, 8)
	full := append(make([]byte, 4), payload...)
	prefix[7] = byte(len(full)) // test payloads stay below 256 bytes
	s.buf.Write(prefix)
	s.buf.Write(full)
	return nil
}

func (s *scriptTransport) Receive(n int, budget time.Duration) ([]byte, error) {
	if budget <= 0 || s.buf.Len() < n {
		return nil, transport.ErrTimeout
	}
	out := make([]byte, n)
	s.buf.Read(out)
	return out, nil
}

func (s *scriptTransport) Clear() error {
	s.cleared++
	s.buf.Reset()
	return nil
}

func (s *scriptTransport) Close() error { return nil }

func dialScript(t *testing.T, respond func(string, []byte) []byte, opts ...Option) (*Connection, *scriptTransport) {
	t.Helper()
	tr := &scriptTransport{respond: respond}
	opts = append(opts, WithTransport(tr), WithTimeout(100*time.Millisecond))
	c, err := Dial("testhost", 55555, opts...)
	require.NoError(t, err)
	return c, tr
}

func TestDialRecordsPluginVersion(t *testing.T) {
	c, tr := dialScript(t, echoServer(nil))
	defer c.Close()

	assert.Equal(t, [3]int32{3, 1, 4}, c.PluginVersion())
	assert.Equal(t, Connected, c.State())
	assert.Equal(t, []string{handshakeRequest}, tr.sent)
}

func TestConnectIsIdempotent(t *testing.T) {
	c, tr := dialScript(t, echoServer(nil))
	defer c.Close()

	require.NoError(t, c.Connect())
	assert.Len(t, tr.sent, 1, "second Connect must not redo the handshake")
}

func TestConnectFailsOnUndecodableHandshake(t *testing.T) {
	tr := &scriptTransport{respond: func(name string, args []byte) []byte {
		return append(protocol.EchoPrefix(name, args), 0x00, 0x01) // 2 bytes, not a version triple
	}}
	c := New("testhost", 55555, WithTransport(tr), WithTimeout(100*time.Millisecond))

	err := c.Connect()
	require.Error(t, err)
	assert.Equal(t, Disconnected, c.State())

	// Setup failure is generic, not part of the request taxonomy.
	var te *protocol.TimeoutError
	var re *protocol.RequestError
	var de *protocol.DataError
	assert.False(t, errors.As(err, &te))
	assert.False(t, errors.As(err, &re))
	assert.False(t, errors.As(err, &de))
}

func TestRequestDataWhileDisconnected(t *testing.T) {
	c := New("testhost", 55555, WithTransport(&scriptTransport{}))
	_, _, err := c.RequestData("tGetCurrentTimePoint")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRequestDataReturnsExactPayload(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	c, _ := dialScript(t, echoServer(map[string][]byte{"tGetSomething": payload}))
	defer c.Close()

	data, rt, err := c.RequestData("tGetSomething", codec.Int32(9))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.GreaterOrEqual(t, rt, time.Duration(0))
}

func TestRequestDataRejectedRequest(t *testing.T) {
	c, _ := dialScript(t, func(name string, args []byte) []byte {
		if name == handshakeRequest {
			return echoServer(nil)(name, args)
		}
		return []byte(protocol.RejectSentinel + ": '" + name + "'")
	})
	defer c.Close()

	_, _, err := c.RequestData("tBadRequest")
	var re *protocol.RequestError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Message, "tBadRequest")
}

func TestRequestDataEchoMismatch(t *testing.T) {
	c, _ := dialScript(t, func(name string, args []byte) []byte {
		if name == handshakeRequest {
			return echoServer(nil)(name, args)
		}
		return append(protocol.EchoPrefix("tSomethingElse", args), 0x00)
	})
	defer c.Close()

	_, _, err := c.RequestData("tGetNrOfROIs")
	var de *protocol.DataError
	require.ErrorAs(t, err, &de)
}

func TestRequestDataTimeout(t *testing.T) {
	c, tr := dialScript(t, echoServer(nil))
	defer c.Close()
	tr.respond = nil // go silent after the handshake

	start := time.Now()
	_, _, err := c.RequestData("tGetCurrentTimePoint")
	var te *protocol.TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRequestDataDrainsBeforeSend(t *testing.T) {
	c, tr := dialScript(t, echoServer(map[string][]byte{"tGetNrOfROIs": codec.Int32(2)}))
	defer c.Close()

	before := tr.cleared
	_, _, err := c.RequestData("tGetNrOfROIs")
	require.NoError(t, err)
	assert.Equal(t, before+1, tr.cleared)
}

func TestHostPortImmutableWhileConnected(t *testing.T) {
	c, _ := dialScript(t, echoServer(nil))

	require.Error(t, c.SetHost("otherhost"))
	require.Error(t, c.SetPort(1234))
	assert.Equal(t, "testhost", c.Host())
	assert.Equal(t, 55555, c.Port())

	require.NoError(t, c.Close())
	require.NoError(t, c.SetHost("otherhost"))
	require.NoError(t, c.SetPort(1234))
}

func TestCloseIsIdempotent(t *testing.T) {
	c, _ := dialScript(t, echoServer(nil))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, Disconnected, c.State())

	_, _, err := c.RequestData("tGetCurrentTimePoint")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestMiddlewareWrapsRequests(t *testing.T) {
	var seen []string
	spy := func(next middleware.HandlerFunc) middleware.HandlerFunc {
		return func(ctx context.Context, req *message.Request) *message.Response {
			seen = append(seen, req.Name)
			return next(ctx, req)
		}
	}

	c, _ := dialScript(t, echoServer(map[string][]byte{"tGetNrOfROIs": codec.Int32(3)}),
		WithMiddleware(spy))
	defer c.Close()

	_, _, err := c.RequestData("tGetNrOfROIs")
	require.NoError(t, err)
	assert.Equal(t, []string{handshakeRequest, "tGetNrOfROIs"}, seen)
}

func TestSetTimeout(t *testing.T) {
	c, _ := dialScript(t, echoServer(nil))
	defer c.Close()

	c.SetTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout())
}
