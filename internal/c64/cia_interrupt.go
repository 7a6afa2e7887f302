package c64

// CiaModel selects which interrupt-delivery timing a CIA chip variant
// uses: the 8521 asserts its IRQ line the same cycle a source is
// triggered, while 6526 variants buffer the trigger for one cycle.
type CiaModel int

const (
	CiaMos6526 CiaModel = iota
	CiaMos8521
)

const (
	ciaFlagTA  = 0x01
	ciaFlagTB  = 0x02
	ciaFlagTOD = 0x04
	ciaFlagSDR = 0x08
	ciaFlagFLG = 0x10
	ciaIRQBit  = 0x80
)

// InterruptSource models a CIA's ICR/IDR pair: the mask register
// (ICR, written by the CPU) and the pending-flags register (IDR, read
// by the CPU, which clears it and the IRQ line).
//
// Grounded on original_source/src/c64_emu/cia/interrupt.rs's
// InterruptSource, simplified to the two models actually distinguished
// there (immediate 8521 vs one-cycle-delayed 6526); the W4485 variant
// it also models is not reachable from any SID tune in this engine's
// scope and is dropped.
type InterruptSource struct {
	model CiaModel

	mask    uint8 // ICR: which IDR bits may assert the IRQ line
	pending uint8 // IDR: which sources have fired since last read

	asserted       bool
	pendingTrigger uint8
}

// NewInterruptSource returns a cleared interrupt source for the given
// chip model.
func NewInterruptSource(model CiaModel) *InterruptSource {
	return &InterruptSource{model: model}
}

// SetMask writes the ICR register. Bit 7 selects set (OR the low bits
// into the mask) or clear (AND their complement out of the mask); the
// write can itself raise IRQ if a matching source is already pending.
func (s *InterruptSource) SetMask(value uint8) {
	bits := value & 0x1F
	if value&ciaIRQBit != 0 {
		s.mask |= bits
	} else {
		s.mask &^= bits
	}
	if s.pending&s.mask&0x1F != 0 {
		s.asserted = true
	}
}

// Trigger records that a source (one of the ciaFlag* bits) has fired.
// 8521s assert the IRQ line immediately when the trigger matches the
// mask; 6526s buffer it for delivery on the next TickDelayed.
func (s *InterruptSource) Trigger(source uint8) {
	s.pending |= source
	if s.pending&s.mask&0x1F == 0 {
		return
	}
	if s.model == CiaMos8521 {
		s.asserted = true
	} else {
		s.pendingTrigger |= source
	}
}

// TickDelayed delivers any 6526-model triggers buffered by Trigger
// during the previous cycle. Called once per cycle; a no-op on 8521.
func (s *InterruptSource) TickDelayed() {
	if s.pendingTrigger == 0 {
		return
	}
	s.asserted = true
	s.pendingTrigger = 0
}

// Clear reads (and clears) the IDR, deasserting the IRQ line, and
// returns the pending-flags byte with bit 7 set if the line had been
// asserted, matching the real $0D/$0D read semantics.
func (s *InterruptSource) Clear() uint8 {
	out := s.pending
	if s.asserted {
		out |= ciaIRQBit
	}
	s.pending = 0
	s.asserted = false
	return out
}

// Asserted reports whether the IRQ line is currently held low.
func (s *InterruptSource) Asserted() bool {
	return s.asserted
}

// ClearSource clears one pending flag bit without disturbing the
// others, deasserting the line only if nothing pending still matches
// the mask. Used by CIA.ClearStaleInterrupts to drop an underflow flag
// left behind by a timer a tune stopped during INIT.
func (s *InterruptSource) ClearSource(source uint8) {
	s.pending &^= source
	s.pendingTrigger &^= source
	if s.pending&s.mask&0x1F == 0 {
		s.asserted = false
	}
}
