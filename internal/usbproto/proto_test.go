package usbproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEncodeRing_HeaderByteIsCmdRing(t *testing.T) {
	buf := EncodeRing([]RingRecord{{Reg: 0x00, Value: 0x10, Cycles: 0x0102}})
	assert.Equal(t, byte(CmdRing), buf[0])
	assert.Equal(t, []byte{0x00, 0x10, 0x01, 0x02}, buf[1:])
}

func TestEncodeRing_TruncatesBeyondMaxRecords(t *testing.T) {
	records := make([]RingRecord, MaxRingRecords+5)
	buf := EncodeRing(records)
	assert.Equal(t, 1+MaxRingRecords*RingRecordSize, len(buf))
}

// Ring encode/decode round trip law.
func TestRing_RoundTripLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, MaxRingRecords).Draw(t, "n")
		records := make([]RingRecord, n)
		for i := range records {
			records[i] = RingRecord{
				Reg:    uint8(rapid.IntRange(0, 255).Draw(t, "reg")),
				Value:  uint8(rapid.IntRange(0, 255).Draw(t, "value")),
				Cycles: uint16(rapid.IntRange(0, 65535).Draw(t, "cycles")),
			}
		}
		buf := EncodeRing(records)
		decoded := DecodeRing(buf[1:])
		assert.Equal(t, records, decoded)
	})
}
