package device

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sandlbn/phosphor/internal/logx"
	"github.com/sandlbn/phosphor/internal/usbproto"
)

// USBBridge is a client of the privileged usbsid-bridged daemon: it
// sends command bytes over a UNIX domain socket and reads back a
// one-byte status (plus a length-prefixed error message on failure),
// so an unprivileged player process never needs direct libusb access.
//
// Grounded 1:1 on original_source/src/usb_bridge.rs's BridgeDevice:
// same socket path, same connect/send_cmd/read_response shape, same
// batching of register writes into CMD_RING packets followed by a
// single CMD_FLUSH.
type USBBridge struct {
	mu   sync.Mutex
	conn net.Conn

	pending []usbproto.RingRecord
}

// NewUSBBridge dials the bridge daemon's well-known socket and sends
// CMD_INIT.
func NewUSBBridge() (*USBBridge, error) {
	conn, err := net.DialTimeout("unix", usbproto.SocketPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("device: usb-bridge connect: %w", err)
	}
	b := &USBBridge{conn: conn}
	if err := b.sendCmd([]byte{usbproto.CmdInit}); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *USBBridge) sendCmd(payload []byte) error {
	if _, err := b.conn.Write(payload); err != nil {
		return fmt.Errorf("device: usb-bridge write: %w", err)
	}
	return b.readResponse()
}

// readResponse reads the daemon's one-byte status, plus a length byte
// and that many message bytes when the status is RespErr.
func (b *USBBridge) readResponse() error {
	status := make([]byte, 1)
	if _, err := readFull(b.conn, status); err != nil {
		return fmt.Errorf("device: usb-bridge read status: %w", err)
	}
	if status[0] == usbproto.RespOK {
		return nil
	}

	lenBuf := make([]byte, 1)
	if _, err := readFull(b.conn, lenBuf); err != nil {
		return fmt.Errorf("device: usb-bridge read error length: %w", err)
	}
	msg := make([]byte, lenBuf[0])
	if _, err := readFull(b.conn, msg); err != nil {
		return fmt.Errorf("device: usb-bridge read error message: %w", err)
	}
	return fmt.Errorf("device: usb-bridge: %s", string(msg))
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// RingCycled buffers one delta-cycled write; Flush drains the buffer
// as one or more CMD_RING packets followed by CMD_FLUSH, matching the
// Rust original's ring_cycled/flush split.
func (b *USBBridge) RingCycled(reg uint8, value uint8, deltaCycles uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, usbproto.RingRecord{Reg: reg, Value: value, Cycles: clampCycles(deltaCycles)})
	return nil
}

func clampCycles(c uint32) uint16 {
	if c > 0xFFFF {
		return 0xFFFF
	}
	return uint16(c)
}

// Flush sends all pending writes and a trailing CMD_FLUSH.
func (b *USBBridge) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.pending) > 0 {
		n := len(b.pending)
		if n > usbproto.MaxRingRecords {
			n = usbproto.MaxRingRecords
		}
		if err := b.sendCmd(usbproto.EncodeRing(b.pending[:n])); err != nil {
			return err
		}
		b.pending = b.pending[n:]
	}
	return b.sendCmd([]byte{usbproto.CmdFlush})
}

// SetStereo toggles second-SID routing on the daemon side.
func (b *USBBridge) SetStereo(enabled bool) error {
	return b.sendCmd(usbproto.EncodeStereo(enabled))
}

// Mute silences all mapped SIDs immediately.
func (b *USBBridge) Mute() error {
	return b.sendCmd([]byte{usbproto.CmdMute})
}

// Close releases the daemon connection, muting and closing the device
// first.
func (b *USBBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	if err := b.sendCmd([]byte{usbproto.CmdClose}); err != nil {
		logx.Errorf("usb-bridge", "close: %v", err)
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}
