package c64

// CIA register offsets within its 16-byte I/O window.
const (
	ciaPRA  = 0x00
	ciaPRB  = 0x01
	ciaDDRA = 0x02
	ciaDDRB = 0x03
	ciaTALo = 0x04
	ciaTAHi = 0x05
	ciaTBLo = 0x06
	ciaTBHi = 0x07
	ciaTODT = 0x08
	ciaTODS = 0x09
	ciaTODM = 0x0A
	ciaTODH = 0x0B
	ciaSDR  = 0x0C
	ciaICR  = 0x0D
	ciaCRA  = 0x0E
	ciaCRB  = 0x0F
)

// CRA/CRB control bits shared by both timers.
const (
	crStart     = 0x01
	crPBOn      = 0x02
	crOneShot   = 0x08
	crForceLoad = 0x10
	crInMode    = 0x20 // CRA: 0=Phi2, 1=CNT pin; CRB bits 5-6: 10 = cascade from TA
	crSerialDir = 0x40 // CRA only: serial port direction
	crTODFreq50 = 0x80 // CRA only
)

// TOD holds a BCD time-of-day clock's four register bytes.
type TOD struct {
	Tenths uint8
	Secs   uint8
	Mins   uint8
	Hours  uint8

	latched     bool
	latchTenths uint8
	latchSecs   uint8
	latchMins   uint8
	latchHours  uint8
	running     bool
}

// Tick advances the clock by one tenth of a second in BCD, matching
// the 6526's TOD counter chain. Frozen until the first write to Hours
// starts it, per the real chip's documented behaviour.
func (c *TOD) Tick() {
	if !c.running {
		return
	}
	c.Tenths = bcdInc(c.Tenths, 10)
	if c.Tenths != 0 {
		return
	}
	c.Secs = bcdInc(c.Secs, 60)
	if c.Secs != 0 {
		return
	}
	c.Mins = bcdInc(c.Mins, 60)
	if c.Mins != 0 {
		return
	}
	pm := c.Hours & 0x80
	switch h := c.Hours & 0x1F; h {
	case 0x11:
		c.Hours = 0x12 | (pm ^ 0x80)
	case 0x12:
		c.Hours = 0x01 | pm
	default:
		c.Hours = bcdInc(h, 12) | pm
	}
}

func bcdInc(v uint8, wrapDecimal uint8) uint8 {
	lo := v & 0x0F
	hi := v >> 4
	lo++
	if lo == 10 {
		lo = 0
		hi++
	}
	v = (hi << 4) | lo
	if int(hi*10+lo) >= int(wrapDecimal) {
		return 0
	}
	return v
}

// CIA models a 6526/8521 complex: two timers, an interrupt source, an
// 8-bit serial shift register with its own underflow-triggered IRQ
// source, and a TOD clock. It does not model the data-direction/port
// pin electrical behaviour (no joystick or keyboard matrix reader
// exists in this headless engine), only the registers a SID player's
// INIT/PLAY routines actually touch: the timer latches, the control
// registers, and the ICR.
//
// Grounded on IntuitionAmiga-IntuitionEngine's flat ciaTimerA/B +
// ciaICR fields in sid_playback_bus_6502.go, restructured into the
// documented per-chip record (spec 4.3) backed by the Timer and
// InterruptSource types above.
type CIA struct {
	TimerA Timer
	TimerB Timer
	IRQ    InterruptSource
	Clock  TOD

	cra, crb uint8
	sdr      uint8
	sdrBits  int // bits shifted out since last load; 8 triggers IRQ
}

// NewCIA returns a power-on-reset CIA of the given interrupt model.
func NewCIA(model CiaModel) *CIA {
	c := &CIA{
		TimerA: *NewTimer(),
		TimerB: *NewTimer(),
		IRQ:    *NewInterruptSource(model),
	}
	return c
}

// Tick advances the CIA by one Phi2 cycle: both timers (Timer B
// cascading from Timer A's underflow when so configured), the delayed
// interrupt pipeline, and the TOD clock's 10Hz/50Hz/60Hz tick.
func (c *CIA) Tick(todTick bool) {
	c.IRQ.TickDelayed()

	aUnderflowed := c.TimerA.Tick()
	if aUnderflowed {
		c.IRQ.Trigger(ciaFlagTA)
		if c.cra&crSerialDir != 0 {
			c.ShiftOut()
		}
	}

	if c.TimerB.Mode == TimerModeCascade {
		if aUnderflowed && c.TimerB.Running {
			if c.TimerB.Tick() {
				c.IRQ.Trigger(ciaFlagTB)
			}
		}
	} else if c.TimerB.Tick() {
		c.IRQ.Trigger(ciaFlagTB)
	}

	if todTick {
		c.Clock.Tick()
	}
}

// ReadRegister implements a CPU read from one of the CIA's 16 I/O
// bytes. Reading ICR ($0D) clears the pending-flags register and
// deasserts IRQ, per the real chip.
func (c *CIA) ReadRegister(offset uint8) uint8 {
	switch offset & 0x0F {
	case ciaTALo:
		return uint8(c.TimerA.Counter)
	case ciaTAHi:
		return uint8(c.TimerA.Counter >> 8)
	case ciaTBLo:
		return uint8(c.TimerB.Counter)
	case ciaTBHi:
		return uint8(c.TimerB.Counter >> 8)
	case ciaTODT:
		return c.Clock.Tenths
	case ciaTODS:
		return c.Clock.Secs
	case ciaTODM:
		return c.Clock.Mins
	case ciaTODH:
		return c.Clock.Hours
	case ciaSDR:
		return c.sdr
	case ciaICR:
		return c.IRQ.Clear()
	case ciaCRA:
		return c.cra
	case ciaCRB:
		return c.crb
	default:
		return 0
	}
}

// WriteRegister implements a CPU write to one of the CIA's 16 I/O
// bytes.
func (c *CIA) WriteRegister(offset uint8, value uint8) {
	switch offset & 0x0F {
	case ciaTALo:
		c.TimerA.SetLatchLo(value)
	case ciaTAHi:
		c.TimerA.SetLatchHi(value)
		if !c.TimerA.Running {
			c.applyCRA(c.cra)
		}
	case ciaTBLo:
		c.TimerB.SetLatchLo(value)
	case ciaTBHi:
		c.TimerB.SetLatchHi(value)
		if !c.TimerB.Running {
			c.applyCRB(c.crb)
		}
	case ciaTODT:
		c.Clock.Tenths = value & 0x0F
	case ciaTODS:
		c.Clock.Secs = value & 0x7F
	case ciaTODM:
		c.Clock.Mins = value & 0x7F
	case ciaTODH:
		c.Clock.Hours = value & 0xFF
		c.Clock.running = true
	case ciaSDR:
		c.sdr = value
		c.sdrBits = 0
	case ciaICR:
		c.IRQ.SetMask(value)
	case ciaCRA:
		c.applyCRA(value)
	case ciaCRB:
		c.applyCRB(value)
	}
}

func (c *CIA) applyCRA(value uint8) {
	c.cra = value
	c.TimerA.Running = value&crStart != 0
	c.TimerA.OneShot = value&crOneShot != 0
	if value&crForceLoad != 0 {
		c.TimerA.ForceReload()
	}
}

func (c *CIA) applyCRB(value uint8) {
	c.crb = value
	c.TimerB.Running = value&crStart != 0
	c.TimerB.OneShot = value&crOneShot != 0
	if value&0x60 == 0x40 {
		c.TimerB.Mode = TimerModeCascade
	} else {
		c.TimerB.Mode = TimerModePhi2
	}
	if value&crForceLoad != 0 {
		c.TimerB.ForceReload()
	}
}

// ClearStaleInterrupts drops the underflow-pending flag for any timer
// that is not currently running. Called on both CIAs at the end of
// INIT: without it, a tune that starts a timer and then stops it again
// before INIT returns leaves an un-acked underflow flag that
// re-asserts the IRQ line forever, since nothing else will ever read
// ICR to clear it.
func (c *CIA) ClearStaleInterrupts() {
	if !c.TimerA.Running {
		c.IRQ.ClearSource(ciaFlagTA)
	}
	if !c.TimerB.Running {
		c.IRQ.ClearSource(ciaFlagTB)
	}
}

// ShiftOut counts one bit clocked out of the serial port; on the
// eighth bit it resets the count and raises the SDR interrupt source,
// matching the real chip's byte-at-a-time SDR IRQ. The SDR byte itself
// is left unchanged.
func (c *CIA) ShiftOut() {
	c.sdrBits++
	if c.sdrBits >= 8 {
		c.sdrBits = 0
		c.IRQ.Trigger(ciaFlagSDR)
	}
}
