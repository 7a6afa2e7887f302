package daemon

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlbn/phosphor/internal/usbproto"
)

type fakeEndpoint struct {
	writes [][]byte
}

func (f *fakeEndpoint) Write(p []byte) error {
	cp := make([]byte, len(p))
	copy(cp, p)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeEndpoint) Close() error { return nil }

func startTestDaemon(t *testing.T) (*Daemon, *fakeEndpoint) {
	t.Helper()
	ep := &fakeEndpoint{}
	d := New(ep)
	go d.ListenAndServe()
	t.Cleanup(func() { d.Close() })

	require.Eventually(t, func() bool {
		_, err := os.Stat(usbproto.SocketPath)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	return d, ep
}

func TestDaemon_ForwardsWriteCommand(t *testing.T) {
	_, ep := startTestDaemon(t)

	conn, err := net.DialTimeout("unix", usbproto.SocketPath, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(usbproto.EncodeWrite(0x00, 0x42))
	require.NoError(t, err)

	resp := make([]byte, 1)
	_, err = conn.Read(resp)
	require.NoError(t, err)
	assert.Equal(t, byte(usbproto.RespOK), resp[0])
	assert.Len(t, ep.writes, 1)
}

func TestDaemon_UnknownCommandReturnsError(t *testing.T) {
	_, _ = startTestDaemon(t)

	conn, err := net.DialTimeout("unix", usbproto.SocketPath, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte{0xEE})
	require.NoError(t, err)

	resp := make([]byte, 2)
	_, err = conn.Read(resp)
	require.NoError(t, err)
	assert.Equal(t, byte(usbproto.RespErr), resp[0])
}

func TestDaemon_QuitClosesConnection(t *testing.T) {
	_, _ = startTestDaemon(t)

	conn, err := net.DialTimeout("unix", usbproto.SocketPath, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte{usbproto.CmdQuit})
	require.NoError(t, err)

	resp := make([]byte, 1)
	conn.Read(resp)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	n, _ := conn.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
}
