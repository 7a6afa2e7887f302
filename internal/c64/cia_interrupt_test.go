package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptSource_8521AssertsImmediately(t *testing.T) {
	s := NewInterruptSource(CiaMos8521)
	s.SetMask(ciaIRQBit | ciaFlagTA)
	s.Trigger(ciaFlagTA)
	assert.True(t, s.Asserted())
}

func TestInterruptSource_6526DelaysOneCycle(t *testing.T) {
	s := NewInterruptSource(CiaMos6526)
	s.SetMask(ciaIRQBit | ciaFlagTA)
	s.Trigger(ciaFlagTA)
	assert.False(t, s.Asserted())
	s.TickDelayed()
	assert.True(t, s.Asserted())
}

func TestInterruptSource_UnmaskedTriggerDoesNotAssert(t *testing.T) {
	s := NewInterruptSource(CiaMos8521)
	s.SetMask(ciaIRQBit | ciaFlagTB)
	s.Trigger(ciaFlagTA)
	assert.False(t, s.Asserted())
}

func TestInterruptSource_ClearResetsLineAndReportsBit7(t *testing.T) {
	s := NewInterruptSource(CiaMos8521)
	s.SetMask(ciaIRQBit | ciaFlagTA)
	s.Trigger(ciaFlagTA)

	out := s.Clear()
	assert.Equal(t, uint8(ciaIRQBit|ciaFlagTA), out)
	assert.False(t, s.Asserted())

	out2 := s.Clear()
	assert.Equal(t, uint8(0), out2)
}

func TestInterruptSource_MaskClearBitStopsFutureAssert(t *testing.T) {
	s := NewInterruptSource(CiaMos8521)
	s.SetMask(ciaIRQBit | ciaFlagTA)
	s.SetMask(ciaFlagTA) // bit7=0: clear TA from mask
	s.Trigger(ciaFlagTA)
	assert.False(t, s.Asserted())
}
