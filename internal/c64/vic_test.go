package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVic_RasterCompareRaisesIRQWhenEnabled(t *testing.T) {
	v := NewVic()
	v.WriteRegister(vicIRQEnable, vicIRQRaster)
	v.WriteRegister(vicRaster, 0x32)

	v.SetRaster(0x32)
	assert.True(t, v.Asserted())
}

func TestVic_RasterCompareIgnoredWhenDisabled(t *testing.T) {
	v := NewVic()
	v.WriteRegister(vicRaster, 0x32)
	v.SetRaster(0x32)
	assert.False(t, v.Asserted())
}

func TestVic_AckClearsIRQ(t *testing.T) {
	v := NewVic()
	v.WriteRegister(vicIRQEnable, vicIRQRaster)
	v.WriteRegister(vicRaster, 0x10)
	v.SetRaster(0x10)
	assert.True(t, v.Asserted())

	v.WriteRegister(vicIRQLine, vicIRQRaster)
	assert.False(t, v.Asserted())
}

func TestVic_RasterMSBRoundTrip(t *testing.T) {
	v := NewVic()
	v.SetRaster(0x150)
	cr1 := v.ReadRegister(vicCR1)
	assert.Equal(t, uint8(0x80), cr1&0x80)
	assert.Equal(t, uint8(0x50), v.ReadRegister(vicRaster))
}

func TestVic_BadLineRequiresDenAndScrollMatch(t *testing.T) {
	v := NewVic()
	assert.False(t, v.IsBadLine(0x50))

	v.WriteRegister(vicCR1, 0x10) // DEN set, yscroll=0
	assert.True(t, v.IsBadLine(0x50))
	assert.False(t, v.IsBadLine(0x51))
	assert.False(t, v.IsBadLine(0x20)) // below $30
}

func TestVic_TickAdvancesRasterOncePerLine(t *testing.T) {
	v := NewVic()
	for i := 0; i < vicCyclesPerLine-1; i++ {
		assert.Equal(t, 0, v.Tick())
	}
	assert.Equal(t, 0, v.Tick()) // the cyclesPerLine-th cycle wraps the line
	assert.Equal(t, uint16(1), v.raster)
}

func TestVic_TickFiresNewFrameExactlyOncePerFrame(t *testing.T) {
	v := NewVic()
	for line := 0; line < vicLinesPerFrame; line++ {
		for c := 0; c < vicCyclesPerLine; c++ {
			v.Tick()
		}
		if line < vicLinesPerFrame-1 {
			assert.False(t, v.NewFrame())
		}
	}
	assert.True(t, v.NewFrame())
	assert.False(t, v.NewFrame()) // edge consumed, not level
}

func TestVic_TickReportsStolenCyclesOnBadLine(t *testing.T) {
	v := NewVic()
	v.WriteRegister(vicCR1, 0x10) // DEN set, yscroll=0: line 0x30 is bad
	for line := 0; line < 0x2F; line++ {
		for c := 0; c < vicCyclesPerLine; c++ {
			v.Tick()
		}
	}
	var stolen int
	for c := 0; c < vicCyclesPerLine; c++ {
		stolen = v.Tick()
	}
	assert.Equal(t, BadLineStallCycles, stolen)
}

func TestVic_TickRasterIRQFiresOnceOnEdge(t *testing.T) {
	v := NewVic()
	v.WriteRegister(vicIRQEnable, vicIRQRaster)
	v.WriteRegister(vicRaster, 0x01)

	for c := 0; c < vicCyclesPerLine; c++ {
		v.Tick()
	}
	assert.True(t, v.Asserted())

	v.WriteRegister(vicIRQLine, vicIRQRaster) // ack
	assert.False(t, v.Asserted())

	// staying on the same line must not re-fire the edge.
	v.checkRasterIRQ()
	assert.False(t, v.Asserted())
}
