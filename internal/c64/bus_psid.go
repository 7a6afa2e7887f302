package c64

// BusPSID drives a Machine the way a PSID tune expects: no real
// KERNAL/BASIC ROM is mapped in (PSID INIT/PLAY routines are written
// assuming a bare-metal environment with only the CIA/VIC/SID I/O
// window and RAM), and the CPU port is forced so every bank reads as
// plain RAM except the I/O window, matching the convention real PSID
// players use to keep the tune's own zero-page and stack usage safe.
//
// Grounded on IntuitionAmiga-IntuitionEngine's SIDPlaybackBus6502,
// whose ram[0x10000] + fixed I/O-window switch is exactly this
// environment; this wrapper only adds the documented PSID-specific
// reset sequence (spec 4.9) the teacher's bus leaves implicit.
type BusPSID struct {
	*Machine
}

// NewBusPSID returns a Machine configured for PSID playback: CPU port
// set so HIRAM is clear (the $A000/$E000 banks read as RAM) while
// LORAM and CHAREN keep the I/O window mapped in, and the KERNAL IRQ/NMI
// stub installed so INIT routines that enable CIA timers or the VIC
// raster IRQ still return control to the scheduler correctly.
func NewBusPSID(sids *SIDMap, sink WriteSink) *BusPSID {
	b := &BusPSID{Machine: NewMachine(sids, sink)}
	b.Mmu.SetCPUPort(0x05) // LORAM=1, HIRAM=0, CHAREN=1: all-RAM + I/O
	InstallKernalStub(&b.ram)
	return b
}

// Reset reinitialises the bus to its post-load PSID state, preserving
// the loaded program image but clearing devices and re-applying the
// PSID banking convention.
func (b *BusPSID) Reset() {
	b.cycles = 0
	b.frameStart = 0
	b.CIA1 = NewCIA(CiaMos6526)
	b.CIA2 = NewCIA(CiaMos6526)
	b.Vic = NewVic()
	b.Mmu.SetCPUPort(0x05)
	InstallKernalStub(&b.ram)
}
