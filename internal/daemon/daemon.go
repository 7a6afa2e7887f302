// Package daemon implements the privileged counterpart to
// device.USBBridge: a process that owns the real USB handle (running
// with whatever permissions udev/usbfs requires) and exposes it over
// a UNIX domain socket to unprivileged player processes, one client at
// a time.
//
// Grounded on original_source/src/usb_bridge.rs's wire protocol (see
// internal/usbproto) and IntuitionAmiga-IntuitionEngine's
// audio_backend_oto.go for the "own the privileged resource, serve a
// simple request stream" shape, here applied to a socket server
// instead of an audio callback.
package daemon

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/sandlbn/phosphor/internal/logx"
	"github.com/sandlbn/phosphor/internal/usbproto"
)

// Endpoint is the real USB transport a Daemon drives. A production
// build supplies a libusb-backed implementation; nothing in this
// package depends on which one.
type Endpoint interface {
	Write(packet []byte) error
	Close() error
}

// Daemon serves one client connection at a time on usbproto.SocketPath,
// decoding the command stream and forwarding register writes to ep.
type Daemon struct {
	ep Endpoint

	mu       sync.Mutex
	listener net.Listener
	closing  bool
}

// New returns a Daemon driving the given endpoint.
func New(ep Endpoint) *Daemon {
	return &Daemon{ep: ep}
}

// ListenAndServe removes any stale socket file, binds SocketPath, and
// serves connections until Close is called or an unrecoverable listen
// error occurs.
func (d *Daemon) ListenAndServe() error {
	os.Remove(usbproto.SocketPath)

	l, err := net.Listen("unix", usbproto.SocketPath)
	if err != nil {
		return fmt.Errorf("daemon: listen: %w", err)
	}
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()

	logx.Infof("daemon", "listening on %s", usbproto.SocketPath)
	for {
		conn, err := l.Accept()
		if err != nil {
			d.mu.Lock()
			closing := d.closing
			d.mu.Unlock()
			if closing {
				return nil
			}
			return err
		}
		d.serveOne(conn)
	}
}

// Close stops accepting new connections.
func (d *Daemon) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closing = true
	if d.listener == nil {
		return nil
	}
	err := d.listener.Close()
	os.Remove(usbproto.SocketPath)
	return err
}

// serveOne handles a single client to completion before Accept is
// called again, enforcing the one-client-at-a-time contract a shared
// USB endpoint requires.
func (d *Daemon) serveOne(conn net.Conn) {
	defer conn.Close()
	logx.Infof("daemon", "client connected")
	defer logx.Infof("daemon", "client disconnected")

	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		cmd := buf[0]
		if err := d.dispatch(conn, cmd, buf[1:n]); err != nil {
			writeErr(conn, err)
			continue
		}
		writeOK(conn)
		if cmd == usbproto.CmdQuit || cmd == usbproto.CmdClose {
			return
		}
	}
}

func (d *Daemon) dispatch(conn net.Conn, cmd byte, payload []byte) error {
	switch cmd {
	case usbproto.CmdInit:
		return d.ep.Write([]byte{usbproto.CmdInit})
	case usbproto.CmdReset:
		return d.ep.Write([]byte{usbproto.CmdReset})
	case usbproto.CmdStereo:
		return d.ep.Write(append([]byte{usbproto.CmdStereo}, payload...))
	case usbproto.CmdWrite:
		return d.ep.Write(append([]byte{usbproto.CmdWrite}, payload...))
	case usbproto.CmdMute:
		return d.ep.Write([]byte{usbproto.CmdMute})
	case usbproto.CmdRing:
		records := usbproto.DecodeRing(payload)
		return d.ep.Write(usbproto.EncodeRing(records))
	case usbproto.CmdFlush:
		return d.ep.Write([]byte{usbproto.CmdFlush})
	case usbproto.CmdClose:
		return d.ep.Write([]byte{usbproto.CmdClose})
	case usbproto.CmdQuit:
		return nil
	default:
		return fmt.Errorf("unknown command 0x%02X", cmd)
	}
}

func writeOK(conn net.Conn) {
	conn.Write([]byte{usbproto.RespOK})
}

func writeErr(conn net.Conn, err error) {
	msg := err.Error()
	if len(msg) > 255 {
		msg = msg[:255]
	}
	conn.Write([]byte{usbproto.RespErr, byte(len(msg))})
	conn.Write([]byte(msg))
}
