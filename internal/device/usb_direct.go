package device

import (
	"errors"
	"sync"

	"github.com/sandlbn/phosphor/internal/usbproto"
)

// usbEndpoint abstracts the bulk-transfer write a real libusb handle
// would perform, so this package has no hard dependency on a cgo
// libusb binding when that hardware is absent (as it always is on the
// machine building this module). A real deployment supplies a
// gousb-backed implementation at the call site that constructs
// USBDirect.
type usbEndpoint interface {
	Write(packet []byte) error
	Close() error
}

// USBDirect talks to a USBSID-Pico dongle without a mediating daemon,
// using the same command stream as USBBridge but writing packets
// straight to a bulk endpoint from a dedicated goroutine so a slow
// kernel write never stalls the scheduler's frame pacing.
//
// Grounded on original_source/src/usb_bridge.rs's wire format (shared
// via internal/usbproto) and IntuitionAmiga-IntuitionEngine's
// startAsync background-goroutine idiom in sid_player.go, here used
// for a bounded outgoing packet queue instead of command dispatch.
type USBDirect struct {
	ep usbEndpoint

	mu      sync.Mutex
	pending []usbproto.RingRecord

	queue chan []byte
	done  chan struct{}
}

// NewUSBDirect attempts to open a direct connection to a USBSID-Pico.
// No real USB stack is wired into this build (see usbEndpoint); until
// a concrete endpoint is supplied via newUSBDirectWithEndpoint, this
// always reports unavailable so CreateAuto's fallback chain moves on
// to the software emulator.
func NewUSBDirect() (*USBDirect, error) {
	return nil, errors.New("device: usb-direct: no libusb endpoint wired in this build")
}

// newUSBDirectWithEndpoint is the constructor a real deployment (or a
// test with a fake endpoint) uses once a bulk transfer handle exists.
func newUSBDirectWithEndpoint(ep usbEndpoint) *USBDirect {
	d := &USBDirect{ep: ep, queue: make(chan []byte, 256), done: make(chan struct{})}
	go d.writer()
	return d
}

func (d *USBDirect) writer() {
	for {
		select {
		case pkt := <-d.queue:
			_ = d.ep.Write(pkt)
		case <-d.done:
			return
		}
	}
}

// RingCycled buffers a write like USBBridge does.
func (d *USBDirect) RingCycled(reg uint8, value uint8, deltaCycles uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, usbproto.RingRecord{Reg: reg, Value: value, Cycles: clampCycles(deltaCycles)})
	return nil
}

// Flush enqueues one packet per MaxRingRecords-sized batch of pending
// writes for the writer goroutine to send.
func (d *USBDirect) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.pending) > 0 {
		n := len(d.pending)
		if n > usbproto.MaxRingRecords {
			n = usbproto.MaxRingRecords
		}
		pkt := usbproto.EncodeRing(d.pending[:n])
		select {
		case d.queue <- pkt:
		default:
			return errors.New("device: usb-direct: write queue full")
		}
		d.pending = d.pending[n:]
	}
	return nil
}

// SetStereo enqueues a CMD_STEREO toggle.
func (d *USBDirect) SetStereo(enabled bool) error {
	d.queue <- usbproto.EncodeStereo(enabled)
	return nil
}

// Mute enqueues CMD_MUTE.
func (d *USBDirect) Mute() error {
	d.queue <- []byte{usbproto.CmdMute}
	return nil
}

// Close stops the writer goroutine and releases the endpoint.
func (d *USBDirect) Close() error {
	close(d.done)
	return d.ep.Close()
}
