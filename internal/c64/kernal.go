package c64

// KERNAL vector and stub addresses. A PSID/RSID player expects a real
// KERNAL's interrupt handling to be present even though none is
// loaded; the stub below reproduces just enough of it for INIT/PLAY
// routines that enable CIA or VIC interrupts to run correctly.
const (
	VecNMI = 0xFFFA
	VecRES = 0xFFFC
	VecIRQ = 0xFFFE

	stubIRQEntry = 0xFF48
	stubNMIEntry = 0xFE43

	// DefaultIRQVector and DefaultNMIVector are the register-restoring
	// RTI routines InstallKernalStub points $0314/$0318 at by default --
	// the values the playback scheduler's INIT-readiness predicates
	// (spec 4.9) compare a tune's soft vectors against to detect that
	// it installed its own handler.
	DefaultIRQVector = stubIRQEntry + 17 // stubIRQEntry + len(ack-both-sources code)
	DefaultNMIVector = stubNMIEntry + 11 // stubNMIEntry + len(ack-CIA2 code)
)

// InstallKernalStub writes a minimal hardware IRQ/NMI entry point plus
// the vectors pointing at it into ram. The entry point acknowledges
// both interrupt sources a PSID/RSID tune can raise (CIA1 and VIC-II)
// before returning, matching the real KERNAL's requirement that a
// handler must read $DC0D and $D019 even if it only cares about one,
// since leaving the other source's flag set would re-trigger the IRQ
// line forever.
//
// Grounded on IntuitionAmiga-IntuitionEngine's installIRQStub, which
// instead jumps through the soft vector at $0314/$0315; this stub is
// a self-contained replacement that does real acknowledgement work,
// since this engine has no BASIC/KERNAL ROM image to fall back into.
func InstallKernalStub(ram *[0x10000]byte) {
	// IRQ entry at $FF48:
	//   PHA; TXA; PHA; TYA; PHA       ; save registers (5 bytes)
	//   LDA $DC0D                     ; ack CIA1 (clear latch, drop IRQ line)
	//   LDA $D019                     ; ack VIC-II
	//   STA $D019                     ; write-1-to-clear semantics
	//   JMP ($0314)                   ; dispatch to the tune's own IRQ vector
	// The default handler at DefaultIRQVector (and DefaultNMIVector) is
	//   PLA; TAY; PLA; TAX; PLA       ; restore registers
	//   RTI
	code := []byte{
		0x48,       // PHA
		0x8A, 0x48, // TXA, PHA
		0x98, 0x48, // TYA, PHA
		0xAD, 0x0D, 0xDC, // LDA $DC0D
		0xAD, 0x19, 0xD0, // LDA $D019
		0x8D, 0x19, 0xD0, // STA $D019
		0x6C, 0x14, 0x03, // JMP ($0314)
	}
	copy(ram[stubIRQEntry:], code)

	nmiCode := []byte{
		0x48, 0x8A, 0x48, 0x98, 0x48, // PHA; TXA; PHA; TYA; PHA
		0xAD, 0x0D, 0xDD, // LDA $DD0D (ack CIA2, the NMI source)
		0x6C, 0x18, 0x03, // JMP ($0318)
	}
	copy(ram[stubNMIEntry:], nmiCode)

	ram[VecIRQ] = byte(stubIRQEntry & 0xFF)
	ram[VecIRQ+1] = byte(stubIRQEntry >> 8)
	ram[VecNMI] = byte(stubNMIEntry & 0xFF)
	ram[VecNMI+1] = byte(stubNMIEntry >> 8)

	// Soft vectors ($0314/5 IRQ, $0318/9 NMI) default to routines that
	// pop the registers the entry stub pushed and RTI, so a tune that
	// never installs its own handler still returns cleanly.
	ram[0x0314] = byte(DefaultIRQVector & 0xFF)
	ram[0x0315] = byte(DefaultIRQVector >> 8)
	ram[0x0318] = byte(DefaultNMIVector & 0xFF)
	ram[0x0319] = byte(DefaultNMIVector >> 8)
	exit := []byte{0x68, 0xA8, 0x68, 0xAA, 0x68, 0x40} // PLA; TAY; PLA; TAX; PLA; RTI
	copy(ram[DefaultIRQVector:], exit)
	copy(ram[DefaultNMIVector:], exit)
}
