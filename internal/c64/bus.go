package c64

// Bus is the address-space contract the 6502 core drives: byte-wide
// reads and writes plus a way to feed it elapsed cycles so its
// internal devices (CIA timers, VIC raster, TOD clock) stay in sync
// with CPU execution.
//
// Grounded on IntuitionAmiga-IntuitionEngine's SIDPlaybackBus6502,
// split here into a shared Machine core plus the two mode-specific
// wrappers (BusPSID, BusRSID) spec 4.9/4.16 require, since PSID and
// RSID tunes are driven through meaningfully different memory maps.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	AddCycles(n int)
}

const (
	sidBase    = 0xD400
	sidEnd     = 0xD7FF
	vicBase    = 0xD000
	vicEnd     = 0xD3FF
	cia1Base   = 0xDC00
	cia1End    = 0xDCFF
	cia2Base   = 0xDD00
	cia2End    = 0xDDFF
	cpuPortReg = 0x0001
)

// WriteSink receives every SID register write the CPU performs, tagged
// with the cycle (relative to the start of the current frame) it
// occurred on -- the raw material the scheduler turns into device
// writes (spec 4.8, 4.14's CapturedWrite).
type WriteSink interface {
	CaptureWrite(frameCycle uint32, reg uint8, value uint8)
}

// Machine is the C64 memory/device core shared by both PSID and RSID
// playback: 64KB of RAM, the PLA/MMU banking logic, one or more mapped
// SID chips, a VIC-II, and the two CIAs.
type Machine struct {
	ram [0x10000]byte

	Mmu  *Mmu
	Vic  *Vic
	CIA1 *CIA
	CIA2 *CIA
	SIDs *SIDMap

	cycles     uint64
	frameStart uint64

	cpuPort uint8

	sink WriteSink
}

// NewMachine returns a Machine with power-on-reset devices and the
// given SID register map (spec 4.8's multi-base support).
func NewMachine(sids *SIDMap, sink WriteSink) *Machine {
	return &Machine{
		Mmu:  NewMmu(),
		Vic:  NewVic(),
		CIA1: NewCIA(CiaMos6526),
		CIA2: NewCIA(CiaMos6526),
		SIDs: sids,
		sink: sink,
	}
}

// LoadBinary copies data into RAM starting at addr, as a PSID/RSID
// loader does with a tune's C64 program image.
func (m *Machine) LoadBinary(addr uint16, data []byte) {
	copy(m.ram[int(addr):], data)
}

// StartFrame marks the current cycle count as frame-relative zero, so
// subsequent writes are tagged with the offset the scheduler expects.
func (m *Machine) StartFrame() {
	m.frameStart = m.cycles
}

// Cycles returns the total elapsed cycle count since reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Read implements Bus.Read by consulting the PLA's read map.
func (m *Machine) Read(addr uint16) byte {
	switch m.Mmu.ReadSource(addr) {
	case PageIO:
		return m.readIO(addr)
	default:
		return m.ram[addr]
	}
}

// Write implements Bus.Write by consulting the PLA's write map.
// The $0001 CPU port is always RAM-backed but also drives the MMU.
func (m *Machine) Write(addr uint16, value byte) {
	if addr == cpuPortReg {
		m.cpuPort = value
		m.Mmu.SetCPUPort(value)
	}
	switch m.Mmu.WriteSource(addr) {
	case PageIO:
		m.writeIO(addr, value)
	default:
		m.ram[addr] = value
	}
}

func (m *Machine) readIO(addr uint16) byte {
	switch {
	case addr >= sidBase && addr <= sidEnd:
		// SID registers are write-only on real hardware except for
		// the envelope/oscillator readback ports (0x19/0x1B), which
		// this headless engine has no analogue source for; every SID
		// register reads as 0.
		return 0
	case addr >= vicBase && addr <= vicEnd:
		return m.Vic.ReadRegister(uint8(addr - vicBase))
	case addr >= cia1Base && addr <= cia1End:
		return m.CIA1.ReadRegister(uint8(addr - cia1Base))
	case addr >= cia2Base && addr <= cia2End:
		return m.CIA2.ReadRegister(uint8(addr - cia2Base))
	default:
		return m.Mmu.NextFloatingByte()
	}
}

func (m *Machine) writeIO(addr uint16, value byte) {
	switch {
	case addr >= sidBase && addr <= sidEnd:
		if offset, ok := m.SIDs.Map(addr); ok {
			if m.sink != nil {
				m.sink.CaptureWrite(uint32(m.cycles-m.frameStart), offset, value)
			}
		}
	case addr >= vicBase && addr <= vicEnd:
		m.Vic.WriteRegister(uint8(addr-vicBase), value)
	case addr >= cia1Base && addr <= cia1End:
		m.CIA1.WriteRegister(uint8(addr-cia1Base), value)
	case addr >= cia2Base && addr <= cia2End:
		m.CIA2.WriteRegister(uint8(addr-cia2Base), value)
	}
}

// AddCycles advances the bus clock and every cycle-driven device: both
// CIAs' timers (TOD ticks once every ~100,000 Phi2 cycles, a tenth of
// a second at PAL clock, close enough for SID playback which never
// reads TOD for audio-critical timing) and the VIC-II's raster
// counter. A bad line the VIC reports stalls the CPU for
// BadLineStallCycles; those cycles still elapse for every peripheral,
// so they are folded back into the budget rather than skipped (spec
// 4.9 step 3's "add stolen BA cycles back into the accumulator and
// re-tick peripherals with the stolen cycles"). A VIC new-frame edge
// bumps the jiffy clock at $00A0-$00A2.
func (m *Machine) AddCycles(n int) {
	if n <= 0 {
		return
	}
	const todDivisor = 98525 // ~1/10s at PAL's 985248Hz Phi2 clock
	for n > 0 {
		n--
		m.cycles++
		todTick := m.cycles%todDivisor == 0
		m.CIA1.Tick(todTick)
		m.CIA2.Tick(todTick)
		if stolen := m.Vic.Tick(); stolen > 0 {
			n += stolen
		}
		if m.Vic.NewFrame() {
			m.bumpJiffyClock()
		}
	}
}

// jiffyHi, jiffyMid, jiffyLo are the 24-bit jiffy-clock bytes the
// KERNAL exposes at $00A0-$00A2, most significant byte first.
const (
	jiffyHi  = 0x00A0
	jiffyMid = 0x00A1
	jiffyLo  = 0x00A2
)

// bumpJiffyClock increments the 24-bit jiffy counter by one, carrying
// through the mid and high bytes on wraparound. Called once per VIC
// new-frame edge, independently of whether the tune's own IRQ handler
// also increments $00A2 when delivered (spec 4.7's default handler
// does, for RSID tunes that never install their own).
func (m *Machine) bumpJiffyClock() {
	m.ram[jiffyLo]++
	if m.ram[jiffyLo] != 0 {
		return
	}
	m.ram[jiffyMid]++
	if m.ram[jiffyMid] != 0 {
		return
	}
	m.ram[jiffyHi]++
}

// IRQReady reports whether an RSID tune's INIT routine has set up
// enough state for the playback scheduler to stop polling and hand
// control to the interrupt-driven frame loop: the software IRQ vector
// at $0314 no longer points at the default RTI-only stub, and either
// the VIC raster IRQ is enabled or CIA1 Timer A is running with its
// mask bit set. Spec 4.9's IRQ-ready INIT-phase predicate.
func (m *Machine) IRQReady() bool {
	vec := uint16(m.ram[0x0314]) | uint16(m.ram[0x0315])<<8
	if vec == DefaultIRQVector {
		return false
	}
	rasterEnabled := m.Vic.irqEnable&vicIRQRaster != 0
	ta := m.CIA1.TimerA.Running && m.CIA1.IRQ.mask&ciaFlagTA != 0
	return rasterEnabled || ta
}

// NMIReady is IRQReady's NMI counterpart: the software NMI vector at
// $0318 or the hardware NMI vector at $FFFA has been rewritten away
// from its default, and CIA2 -- the only NMI source this engine
// models -- has a non-zero mask with Timer A running.
func (m *Machine) NMIReady() bool {
	softVec := uint16(m.ram[0x0318]) | uint16(m.ram[0x0319])<<8
	hwVec := uint16(m.ram[VecNMI]) | uint16(m.ram[VecNMI+1])<<8
	if softVec == DefaultNMIVector && hwVec == stubNMIEntry {
		return false
	}
	return m.CIA2.IRQ.mask != 0 && m.CIA2.TimerA.Running
}

// ClearStaleInterrupts runs CIA.ClearStaleInterrupts on both CIAs,
// the end-of-INIT cleanup spec 4.9 mandates so a timer a tune stopped
// mid-INIT doesn't leave a permanent un-acked IRQ flood.
func (m *Machine) ClearStaleInterrupts() {
	m.CIA1.ClearStaleInterrupts()
	m.CIA2.ClearStaleInterrupts()
}

// IRQAsserted reports whether any IRQ-capable source (CIA1, VIC-II) is
// currently holding the IRQ line low.
func (m *Machine) IRQAsserted() bool {
	return m.CIA1.IRQ.Asserted() || m.Vic.Asserted()
}

// NMIAsserted reports whether CIA2 -- the only NMI source this engine
// models, since no RESTORE-key/cartridge NMI line exists headlessly --
// is holding the NMI line low.
func (m *Machine) NMIAsserted() bool {
	return m.CIA2.IRQ.Asserted()
}
