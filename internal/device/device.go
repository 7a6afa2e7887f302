// Package device implements the four output sinks a loaded tune can
// be routed to: a USB bridge client talking to a privileged daemon, a
// direct USB writer, a software-emulated SID, and an HTTP client for a
// networked Ultimate-64. All four satisfy player.Sink, so the
// scheduler never needs to know which one it is driving.
//
// Grounded on original_source/src/sid_device.rs's SidDevice trait and
// create_engine/create_auto dispatch, and on
// IntuitionAmiga-IntuitionEngine's SoundChip abstraction idiom (one
// small interface, several concrete backends selected by name).
package device

import "fmt"

// Config carries the subset of preferences any sink constructor might
// need; unused fields are ignored by sinks that don't need them.
type Config struct {
	U64Address  string
	U64Password string
}

// Sink is the device-facing half of player.Sink, repeated here so this
// package does not need to import internal/player (which would create
// an import cycle, since player depends on device indirectly via the
// sink factory callers wire up).
type Sink interface {
	RingCycled(reg uint8, value uint8, deltaCycles uint32) error
	Flush() error
	SetStereo(enabled bool) error
	Mute() error
	Close() error
}

// Names of the available engines, as accepted by Create.
const (
	NameUSBBridge = "usb-bridge"
	NameUSBDirect = "usb-direct"
	NameEmulated  = "emulated"
	NameNative    = "native"
)

// Create builds a named Sink.
func Create(name string, cfg Config) (Sink, error) {
	switch name {
	case NameUSBBridge, "usb":
		return NewUSBBridge()
	case NameUSBDirect:
		return NewUSBDirect()
	case NameEmulated, "":
		return NewEmulated()
	case NameNative, "u64":
		if cfg.U64Address == "" {
			return nil, fmt.Errorf("device: native engine requires a U64 address")
		}
		return NewNative(cfg.U64Address, cfg.U64Password)
	default:
		return nil, fmt.Errorf("device: unknown engine %q", name)
	}
}

// CreateAuto tries each real-hardware sink in turn, falling back to
// the software emulator, and only reaching the native U64 sink if an
// address was configured.
//
// Grounded on sid_device.rs's create_auto. Order tried: USB bridge ->
// direct USB -> U64 (only with an address) -> emulated.
func CreateAuto(cfg Config) (Sink, error) {
	if s, err := NewUSBBridge(); err == nil {
		return s, nil
	}
	if s, err := NewUSBDirect(); err == nil {
		return s, nil
	}
	if cfg.U64Address != "" {
		if s, err := NewNative(cfg.U64Address, cfg.U64Password); err == nil {
			return s, nil
		}
	}
	return NewEmulated()
}
