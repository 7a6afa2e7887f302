package mos6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(addr uint16) byte     { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v byte) { b.mem[addr] = v }

func TestCPU_LDAImmediateSetsFlags(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x1000] = 0xA9 // LDA #$00
	bus.mem[0x1001] = 0x00

	c := New(bus)
	c.PC = 0x1000
	c.Step()

	assert.Equal(t, byte(0), c.A)
	assert.True(t, c.getFlag(FlagZ))
	assert.False(t, c.getFlag(FlagN))
}

func TestCPU_AbsoluteXPageCrossCostsExtraCycle(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x1000] = 0xBD // LDA $10FF,X
	bus.mem[0x1001] = 0xFF
	bus.mem[0x1002] = 0x10
	bus.mem[0x1101] = 0x42

	c := New(bus)
	c.PC = 0x1000
	c.X = 0x02 // 0x10FF + 2 = 0x1101, crosses page
	cycles := c.Step()

	assert.Equal(t, byte(0x42), c.A)
	assert.Equal(t, 5, cycles) // base 4 + 1 for page cross
}

func TestCPU_BranchTakenAndPageCrossCycles(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x10FC] = 0xF0 // BEQ +$02 (target crosses into next page)
	bus.mem[0x10FD] = 0x02

	c := New(bus)
	c.PC = 0x10FC
	c.setFlag(FlagZ, true)
	cycles := c.Step()

	assert.Equal(t, uint16(0x1100), c.PC)
	assert.Equal(t, 4, cycles) // base 2 + taken 1 + page-cross 1
}

func TestCPU_JSRThenRTSRoundTrips(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x1000] = 0x20 // JSR $2000
	bus.mem[0x1001] = 0x00
	bus.mem[0x1002] = 0x20
	bus.mem[0x2000] = 0x60 // RTS

	c := New(bus)
	c.PC = 0x1000
	c.SP = 0xFF
	c.Step()
	assert.Equal(t, uint16(0x2000), c.PC)
	c.Step()
	assert.Equal(t, uint16(0x1003), c.PC)
}

func TestCPU_IRQMaskedByInterruptFlag(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x30
	bus.mem[0x1000] = 0xEA // NOP

	c := New(bus)
	c.PC = 0x1000
	c.setFlag(FlagI, true)
	c.SetIRQLine(true)
	c.Step()

	assert.Equal(t, uint16(0x1001), c.PC) // NOP ran, IRQ deferred
}

func TestCPU_IRQServicedWhenUnmasked(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x30

	c := New(bus)
	c.PC = 0x1000
	c.SP = 0xFF
	c.setFlag(FlagI, false)
	c.SetIRQLine(true)
	c.Step()

	assert.Equal(t, uint16(0x3000), c.PC)
	assert.True(t, c.getFlag(FlagI))
}

func TestCPU_NMIIsEdgeTriggeredNotLevel(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x40
	bus.mem[0x1000] = 0xEA

	c := New(bus)
	c.PC = 0x1000
	c.SP = 0xFF
	c.SetNMILine(false) // already low, no prior low->high edge yet
	c.Step()
	assert.Equal(t, uint16(0x1001), c.PC) // NOP ran, no NMI taken

	c.SetNMILine(true) // rising edge now latched
	c.PC = 0x1000
	c.Step()
	assert.Equal(t, uint16(0x4000), c.PC)
}

func TestCPU_NMIHeldHighDoesNotRetrigger(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x40
	bus.mem[0x1000] = 0xEA

	c := New(bus)
	c.PC = 0x1000
	c.SP = 0xFF
	c.SetNMILine(true)
	c.Step()
	assert.Equal(t, uint16(0x4000), c.PC) // edge taken once

	c.PC = 0x1000
	c.SetNMILine(true) // still asserted, no new edge
	c.Step()
	assert.Equal(t, uint16(0x1001), c.PC) // NOP ran, not retriggered
}

func TestCPU_DecimalModeADC(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x1000] = 0x69 // ADC #$01 in decimal mode, 0x09+0x01=0x10 BCD
	bus.mem[0x1001] = 0x01

	c := New(bus)
	c.PC = 0x1000
	c.A = 0x09
	c.setFlag(FlagD, true)
	c.Step()

	assert.Equal(t, byte(0x10), c.A)
	assert.False(t, c.getFlag(FlagC))
}
