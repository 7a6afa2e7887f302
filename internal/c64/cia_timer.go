package c64

// TimerMode selects what clocks a CIA timer: the system clock (every
// cycle) or underflows of the other timer in the same CIA (cascade).
type TimerMode int

const (
	TimerModePhi2 TimerMode = iota
	TimerModeCascade
)

// Timer implements one 16-bit CIA (6526/8521) timer: a free-running
// counter that reloads from a latch on underflow (or stays stopped in
// one-shot mode), used for both Timer A and Timer B.
//
// The Rust original (original_source/src/c64_emu/cia/timer.rs) follows
// VICE's bitmask state-machine model of the real two-phase latch
// pipeline. That model exists to reproduce cycle-exact CPU-port
// scribble bugs real tunes occasionally rely on; nothing in this
// engine's scope depends on that level of fidelity, so this generalises
// spec 4.3's documented counter/latch/running/oneshot/toggle record
// directly instead of translating the VICE trick bitwise.
type Timer struct {
	Counter uint16
	Latch   uint16
	Running bool
	OneShot bool
	Mode    TimerMode

	// PBToggle flips each time the timer underflows, whether or not PB6/PB7
	// output is configured; only meaningful when that output mode is set.
	PBToggle bool
}

// NewTimer returns a stopped timer with an all-ones latch, the CIA
// power-on default.
func NewTimer() *Timer {
	return &Timer{Latch: 0xFFFF}
}

// SetLatchLo/SetLatchHi write one byte of the latch. Per the real chip,
// writing the low byte of a stopped timer also loads the counter
// immediately; writing the high byte of a stopped timer loads both
// bytes (the counter takes the full latch value).
func (t *Timer) SetLatchLo(b uint8) {
	t.Latch = (t.Latch & 0xFF00) | uint16(b)
	if !t.Running {
		t.Counter = (t.Counter & 0xFF00) | uint16(b)
	}
}

func (t *Timer) SetLatchHi(b uint8) {
	t.Latch = (t.Latch & 0x00FF) | uint16(b)<<8
	if !t.Running {
		t.Counter = t.Latch
	}
}

// ForceReload reloads the counter from the latch immediately, as the
// real chip does when the force-load control bit is strobed.
func (t *Timer) ForceReload() {
	t.Counter = t.Latch
}

// Tick advances the timer by one qualifying clock (a Phi2 cycle for a
// Phi2-mode timer, or one underflow pulse for a cascade-mode timer fed
// by its partner). It reports whether the counter underflowed.
func (t *Timer) Tick() (underflowed bool) {
	if !t.Running {
		return false
	}
	if t.Counter == 0 {
		t.Counter = t.Latch
		t.PBToggle = !t.PBToggle
		if t.OneShot {
			t.Running = false
		}
		return true
	}
	t.Counter--
	return false
}
