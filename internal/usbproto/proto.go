// Package usbproto defines the wire protocol shared by every USB
// output path: the UNIX-socket bridge client, the privileged daemon
// that owns the bridge's listening end, and the direct in-process USB
// writer. All three encode the same command stream so a tune's
// register-write pattern is indistinguishable from the wire's point of
// view regardless of which path delivers it.
//
// Grounded 1:1 on original_source/src/usb_bridge.rs's command byte
// values and ring-packet layout; IntuitionAmiga-IntuitionEngine has no
// USB dongle output of its own to generalise from here, so this
// package is the one place the original Rust wire format is kept
// verbatim rather than reshaped into a teacher idiom -- the protocol
// is an external contract with real hardware/daemon firmware, not an
// internal design choice this engine is free to restyle.
package usbproto

// Command opcodes understood by the bridge daemon and a direct USB
// sink alike.
const (
	CmdInit   = 0x01
	CmdClock  = 0x02
	CmdReset  = 0x03
	CmdStereo = 0x04
	CmdWrite  = 0x05
	CmdMute   = 0x07
	CmdClose  = 0x08
	CmdRing   = 0x09
	CmdFlush  = 0x0A
	CmdQuit   = 0xFF
)

// Response status bytes the bridge sends back after most commands.
const (
	RespOK  = 0x00
	RespErr = 0x01
)

// SocketPath is the well-known UNIX socket the privileged bridge
// daemon listens on.
const SocketPath = "/tmp/usbsid-bridge.sock"

// MaxRingRecords bounds how many 4-byte (reg, value, cyclesHi,
// cyclesLo) records fit in one OP_CYCLED_WRITE packet alongside its
// 1-byte header.
const (
	RingRecordSize  = 4
	MaxRingRecords  = 15
	RingPacketBytes = 1 + MaxRingRecords*RingRecordSize // cmd byte + records, padded to 64 by the transport
)

// RingRecord is one delta-cycled register write as it appears on the
// wire: reg and value followed by a big-endian 16-bit cycle delta
// since the previous record (or since the last flush, for the first
// record in a packet).
type RingRecord struct {
	Reg    uint8
	Value  uint8
	Cycles uint16
}

// EncodeRing serialises up to MaxRingRecords records as a single
// CMD_RING command payload: CmdRing byte, then 4 bytes per record
// (reg, value, cyclesHi, cyclesLo).
func EncodeRing(records []RingRecord) []byte {
	if len(records) > MaxRingRecords {
		records = records[:MaxRingRecords]
	}
	buf := make([]byte, 0, 1+len(records)*RingRecordSize)
	buf = append(buf, CmdRing)
	for _, r := range records {
		buf = append(buf, r.Reg, r.Value, byte(r.Cycles>>8), byte(r.Cycles))
	}
	return buf
}

// DecodeRing parses a CMD_RING payload (without its leading command
// byte) back into records, for the daemon side of the socket.
func DecodeRing(payload []byte) []RingRecord {
	n := len(payload) / RingRecordSize
	out := make([]RingRecord, 0, n)
	for i := 0; i < n; i++ {
		b := payload[i*RingRecordSize : (i+1)*RingRecordSize]
		out = append(out, RingRecord{
			Reg:    b[0],
			Value:  b[1],
			Cycles: uint16(b[2])<<8 | uint16(b[3]),
		})
	}
	return out
}

// EncodeWrite serialises a single immediate (non-ring) register write.
func EncodeWrite(reg, value uint8) []byte {
	return []byte{CmdWrite, reg, value}
}

// EncodeStereo serialises a CMD_STEREO toggle.
func EncodeStereo(enabled bool) []byte {
	v := byte(0)
	if enabled {
		v = 1
	}
	return []byte{CmdStereo, v}
}
