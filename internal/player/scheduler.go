package player

import (
	"github.com/sandlbn/phosphor/internal/c64"
	"github.com/sandlbn/phosphor/internal/mos6502"
)

// initPollPeriodCycles and initBudgetCycles bound how long the
// scheduler will run a tune's INIT routine looking for it to return
// control (via the call-trampoline's halt landing), matching tunes
// whose INIT performs lengthy setup (e.g. decompressing packed data)
// without ever exceeding a reasonable budget if INIT never returns
// (a malformed or deliberately hostile tune).
//
// Grounded on original_source/src/player/mod.rs's identical constants
// (50_000 cycle poll period, 30_000_000 cycle total budget) and
// IntuitionAmiga-IntuitionEngine's callRoutine/RenderFrames trampoline
// pattern in sid_6502_player.go, which this generalises from a single
// fixed Z80-style routine call into the documented readiness-polling
// loop (spec 4.10).
const (
	initPollPeriodCycles = 50000
	initBudgetCycles     = 30000000

	// trampolineHalt is the address installTrampoline's JSR returns to
	// (where its JMP spins in place) once the called routine RTS's back; execution is considered
	// "returned" once PC reaches this address.
	trampolineHalt = 0xFFF0
)

// Bus is the subset of c64.Machine behaviour the scheduler drives.
type Bus interface {
	mos6502.Bus
	AddCycles(n int)
	StartFrame()
	IRQAsserted() bool
	NMIAsserted() bool
	IRQReady() bool
	NMIReady() bool
	ClearStaleInterrupts()
}

// Sink receives the per-frame batch of SID writes a CPU run captured,
// already delta-encoded and mirrored per Context.MirrorMono.
type Sink interface {
	RingCycled(reg uint8, value uint8, deltaCycles uint32) error
	Flush() error
}

// Scheduler drives one loaded tune: it owns the CPU, the bus, a
// Context describing timing, and writes captured SID register access
// to a Sink once per frame.
type Scheduler struct {
	cpu *mos6502.CPU
	bus Bus
	ctx *Context

	writes []CapturedWrite
}

// NewScheduler returns a Scheduler for the given bus/cpu pair, already
// wired so the bus reports captured SID writes into it via the
// WriteSink interface (see c64.WriteSink).
func NewScheduler(bus Bus, cpu *mos6502.CPU, ctx *Context) *Scheduler {
	return &Scheduler{bus: bus, cpu: cpu, ctx: ctx}
}

// CaptureWrite implements c64.WriteSink, appending to the current
// frame's write batch.
func (s *Scheduler) CaptureWrite(frameCycle uint32, reg uint8, value uint8) {
	s.writes = append(s.writes, CapturedWrite{FrameCycle: frameCycle, Reg: reg, Value: value})
}

// RunInit calls a tune's INIT routine at initAddr with the given
// subtune number in A, via the standard JSR-then-halt trampoline.
// viaInterrupt selects PSID or RSID INIT semantics (spec 4.9): PSID
// just steps the CPU looking for the trampoline halt, with no
// peripheral ticking or interrupt delivery; RSID ticks every
// peripheral and delivers interrupts each step, additionally polling
// the IRQ-ready/NMI-ready predicates every initPollPeriodCycles so an
// RSID tune that never falls through the trampoline (because it is
// entirely interrupt-driven from here on) still hands control to the
// frame loop once its handler is live. Either path that exhausts
// initBudgetCycles without returning clears the interrupt-disable
// flag and proceeds anyway, accommodating INIT routines (packers,
// decompressors) that never return control at all. Either way,
// clear_stale_ints runs on both CIAs before returning, so a timer a
// tune started and stopped during INIT doesn't leave a stale,
// permanently re-asserting underflow flag behind.
func (s *Scheduler) RunInit(initAddr uint16, subtune uint8, viaInterrupt bool) {
	s.installTrampoline(initAddr)
	s.cpu.A = subtune
	s.cpu.SetPC(trampolineHalt - 3) // the JSR instruction written below

	if viaInterrupt {
		s.runInitRSID()
	} else {
		s.runInitPSID()
	}
	s.bus.ClearStaleInterrupts()
}

func (s *Scheduler) runInitPSID() {
	var ran uint32
	for ran < initBudgetCycles {
		consumed := s.cpu.Step()
		ran += uint32(consumed)
		if s.cpu.PC == trampolineHalt {
			return
		}
	}
	s.cpu.SR &^= mos6502.FlagI
}

func (s *Scheduler) runInitRSID() {
	var ran, sincePoll uint32
	for ran < initBudgetCycles {
		s.cpu.SetIRQLine(s.bus.IRQAsserted())
		s.cpu.SetNMILine(s.bus.NMIAsserted())
		consumed := s.cpu.Step()
		s.bus.AddCycles(consumed)
		ran += uint32(consumed)
		sincePoll += uint32(consumed)

		if s.cpu.PC == trampolineHalt {
			return
		}
		if sincePoll >= initPollPeriodCycles {
			sincePoll -= initPollPeriodCycles
			if s.bus.IRQReady() || s.bus.NMIReady() {
				return
			}
		}
	}
	s.cpu.SR &^= mos6502.FlagI
}

// installTrampoline writes "JSR target; JMP halt" at halt-3/halt so
// calling it and waiting for PC==halt is equivalent to calling target
// as a subroutine that returns to a landing pad instead of wherever
// its own return address points -- this is what lets INIT/PLAY be
// invoked as plain functions despite being written as interrupt- or
// BASIC-called routines with no caller-supplied return convention.
//
// Grounded on sid_6502_player.go's callRoutine, same trampoline shape.
func (s *Scheduler) installTrampoline(target uint16) {
	jsr := trampolineHalt - 3
	s.bus.Write(uint16(jsr), 0x20) // JSR
	s.bus.Write(uint16(jsr+1), byte(target))
	s.bus.Write(uint16(jsr+2), byte(target>>8))
	s.bus.Write(trampolineHalt, 0x4C) // JMP trampolineHalt (spin)
	s.bus.Write(trampolineHalt+1, byte(trampolineHalt&0xFF))
	s.bus.Write(trampolineHalt+2, byte(trampolineHalt>>8))
}

// RunFrame calls a tune's PLAY routine once (for PSID tunes) or simply
// runs CyclesPerFrame worth of CPU time while servicing whatever
// interrupts the tune's own handler installed (for RSID tunes),
// collects the writes captured during that frame, converts them to
// delta-encoded records relative to the previous write's cycle, and
// returns them ready for a Sink.
func (s *Scheduler) RunFrame(playAddr uint16, viaInterrupt bool) []CapturedWrite {
	s.writes = s.writes[:0]
	s.bus.StartFrame()

	if viaInterrupt {
		s.runCyclesServicingInterrupts(s.ctx.CyclesPerFrame)
	} else {
		s.installTrampoline(playAddr)
		s.cpu.SetPC(trampolineHalt - 3)
		var ran uint32
		for ran < s.ctx.CyclesPerFrame*4 { // generous multiple as a runaway guard
			consumed := s.cpu.Step()
			ran += uint32(consumed)
			if s.cpu.PC == trampolineHalt {
				break
			}
		}
		s.bus.AddCycles(int(s.ctx.CyclesPerFrame) - int(ran))
	}

	return deltaEncode(s.writes, s.ctx.MirrorMono)
}

// runCyclesServicingInterrupts is the RSID frame loop (spec 4.9 step
// 3): step the CPU one instruction at a time, feeding the IRQ/NMI
// lines their current state before each step (NMI's edge latch lives
// on the CPU itself, so it persists correctly across this loop's many
// calls per frame same as the spec's context-carried prev_nmi), and
// push every consumed cycle through the bus so CIA1, CIA2 and the VIC
// stay in lockstep with the CPU -- including any bad-line stolen
// cycles the bus folds back into its own accounting and the jiffy
// clock bump it performs on a VIC new-frame edge.
func (s *Scheduler) runCyclesServicingInterrupts(n uint32) {
	var done uint32
	for done < n {
		s.cpu.SetIRQLine(s.bus.IRQAsserted())
		s.cpu.SetNMILine(s.bus.NMIAsserted())
		consumed := s.cpu.Step()
		s.bus.AddCycles(consumed)
		done += uint32(consumed)
	}
}

// deltaEncode converts a batch of absolute-frame-cycle writes into
// deltas relative to the previous write (the wire format every device
// sink expects), and, when mirrorMono is set, duplicates every write
// to a register at or below the master volume register onto the
// second SID's corresponding register at delta zero.
//
// Grounded on original_source/src/player/mod.rs's send_sid_writes.
func deltaEncode(writes []CapturedWrite, mirrorMono bool) []CapturedWrite {
	const sidVolReg = 0x18
	const sidRegs = 0x20

	out := make([]CapturedWrite, 0, len(writes)*2)
	var prevCycle uint32
	for i, w := range writes {
		delta := w.FrameCycle - prevCycle
		if i == 0 {
			delta = w.FrameCycle
		}
		out = append(out, CapturedWrite{FrameCycle: delta, Reg: w.Reg, Value: w.Value})
		prevCycle = w.FrameCycle

		if mirrorMono && w.Reg <= sidVolReg {
			out = append(out, CapturedWrite{FrameCycle: 0, Reg: w.Reg + sidRegs, Value: w.Value})
		}
	}
	return out
}

var _ c64.WriteSink = (*Scheduler)(nil)
