package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandlbn/phosphor/internal/c64"
	"github.com/sandlbn/phosphor/internal/mos6502"
)

func TestDeltaEncode_FirstWriteIsAbsoluteRestAreDeltas(t *testing.T) {
	writes := []CapturedWrite{
		{FrameCycle: 100, Reg: 0x00, Value: 0x10},
		{FrameCycle: 150, Reg: 0x01, Value: 0x20},
	}
	out := deltaEncode(writes, false)
	assert.Equal(t, uint32(100), out[0].FrameCycle)
	assert.Equal(t, uint32(50), out[1].FrameCycle)
}

func TestDeltaEncode_MirrorMonoDuplicatesLowRegsOntoSID2(t *testing.T) {
	writes := []CapturedWrite{{FrameCycle: 10, Reg: 0x04, Value: 0x11}}
	out := deltaEncode(writes, true)
	assert.Len(t, out, 2)
	assert.Equal(t, uint8(0x24), out[1].Reg)
	assert.Equal(t, uint32(0), out[1].FrameCycle)
}

func TestDeltaEncode_HighRegsNotMirroredWhenBeyondVolume(t *testing.T) {
	writes := []CapturedWrite{{FrameCycle: 10, Reg: 0x19, Value: 0x11}} // past $18
	out := deltaEncode(writes, true)
	assert.Len(t, out, 1)
}

func TestScheduler_RunInitReturnsOnTrampolineHalt(t *testing.T) {
	sids := c64.NewSIDMap(0xD400)
	sched := &Scheduler{ctx: NewContext(EnginePSID, true, TrackInfo{})}
	bus := c64.NewBusPSID(sids, sched)
	cpu := mos6502.New(bus)
	sched.bus = bus
	sched.cpu = cpu

	// INIT routine: LDA #$2A; RTS
	bus.LoadBinary(0x1000, []byte{0xA9, 0x2A, 0x60})
	cpu.Reset()

	sched.RunInit(0x1000, 0, false)
	assert.Equal(t, byte(0x2A), cpu.A)
}

func TestScheduler_RunInitRSIDReturnsEarlyOnIRQReadyWithoutReachingHalt(t *testing.T) {
	sids := c64.NewSIDMap(0xD400)
	sched := &Scheduler{ctx: NewContext(EngineRSID, true, TrackInfo{})}
	bus := c64.NewBusRSID(sids, sched)
	cpu := mos6502.New(bus)
	sched.bus = bus
	sched.cpu = cpu

	// INIT: start CIA1 Timer A with its mask bit set, install a soft
	// IRQ vector at $3000, then spin forever -- an RSID INIT that is
	// itself interrupt-driven from here on and never falls through the
	// call trampoline.
	bus.LoadBinary(0x1000, []byte{
		0xA9, 0x01, 0x8D, 0x04, 0xDC, // LDA #$01; STA $DC04 (TimerA lo)
		0xA9, 0x00, 0x8D, 0x05, 0xDC, // LDA #$00; STA $DC05 (TimerA hi)
		0xA9, 0x81, 0x8D, 0x0D, 0xDC, // LDA #$81; STA $DC0D (ICR: set, TA)
		0xA9, 0x01, 0x8D, 0x0E, 0xDC, // LDA #$01; STA $DC0E (CRA: start)
		0xA9, 0x00, 0x8D, 0x14, 0x03, // LDA #$00; STA $0314
		0xA9, 0x30, 0x8D, 0x15, 0x03, // LDA #$30; STA $0315
		0x4C, 0x1E, 0x10, // JMP $101E (spin here)
	})
	cpu.Reset()

	sched.RunInit(0x1000, 0, true)

	assert.True(t, bus.IRQReady())
	assert.NotEqual(t, uint16(trampolineHalt), cpu.PC)
}

func TestScheduler_RunFrameCapturesSIDWrites(t *testing.T) {
	sids := c64.NewSIDMap(0xD400)
	ctx := NewContext(EnginePSID, true, TrackInfo{})
	sched := &Scheduler{ctx: ctx}
	bus := c64.NewBusPSID(sids, sched)
	cpu := mos6502.New(bus)
	sched.bus = bus
	sched.cpu = cpu

	// PLAY routine: LDA #$42; STA $D400; RTS
	bus.LoadBinary(0x2000, []byte{0xA9, 0x42, 0x8D, 0x00, 0xD4, 0x60})
	cpu.Reset()

	writes := sched.RunFrame(0x2000, false)
	assert.Len(t, writes, 1)
	assert.Equal(t, uint8(0x00), writes[0].Reg)
	assert.Equal(t, uint8(0x42), writes[0].Value)
}

func TestScheduler_RunFrameViaInterruptTicksVic(t *testing.T) {
	sids := c64.NewSIDMap(0xD400)
	ctx := NewContext(EngineRSID, true, TrackInfo{})
	sched := &Scheduler{ctx: ctx}
	bus := c64.NewBusRSID(sids, sched)
	cpu := mos6502.New(bus)
	sched.bus = bus
	sched.cpu = cpu

	bus.LoadBinary(0x1000, []byte{0x4C, 0x00, 0x10}) // JMP $1000 (spin)
	cpu.Reset()
	cpu.SetPC(0x1000)

	sched.runCyclesServicingInterrupts(1000)
	assert.Greater(t, bus.Vic.ReadRegister(0x12), uint8(0)) // raster low byte advanced
}

func TestWaitUntil_ReturnsNearDeadline(t *testing.T) {
	deadline := time.Now().Add(5 * time.Millisecond)
	waitUntil(deadline)
	assert.WithinDuration(t, deadline, time.Now(), 2*time.Millisecond)
}

func TestWaitUntil_PastDeadlineReturnsImmediately(t *testing.T) {
	start := time.Now()
	waitUntil(start.Add(-time.Second))
	assert.Less(t, time.Since(start), 5*time.Millisecond)
}
