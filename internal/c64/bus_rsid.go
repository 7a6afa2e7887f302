package c64

// BusRSID drives a Machine the way an RSID tune requires: RSID tunes
// are real C64 programs that assume the full KERNAL/BASIC environment
// is present and interrupts are live from the moment INIT is called,
// so unlike BusPSID this wrapper maps the CPU port to its normal
// power-on value (KERNAL+BASIC+IO visible) and never forces PLAY to be
// called except through the tune's own interrupt handler -- an RSID
// tune's PLAY address in the header is informational only (spec
// 4.16); the scheduler drives it purely via IRQ delivery.
//
// Grounded on IntuitionAmiga-IntuitionEngine's SIDPlaybackBus6502 for
// the device wiring, and original_source's player/rsid_bus.rs for the
// RSID-specific banking decision the teacher's PSID-only bus never had
// to make.
type BusRSID struct {
	*Machine
}

// NewBusRSID returns a Machine configured for RSID playback.
func NewBusRSID(sids *SIDMap, sink WriteSink) *BusRSID {
	b := &BusRSID{Machine: NewMachine(sids, sink)}
	b.Mmu.SetCPUPort(0x37) // power-on default: KERNAL+BASIC+IO visible
	InstallKernalStub(&b.ram)
	return b
}

// Reset reinitialises the bus to its post-load RSID state.
func (b *BusRSID) Reset() {
	b.cycles = 0
	b.frameStart = 0
	b.CIA1 = NewCIA(CiaMos6526)
	b.CIA2 = NewCIA(CiaMos6526)
	b.Vic = NewVic()
	b.Mmu.SetCPUPort(0x37)
	InstallKernalStub(&b.ram)
}

// DrivesPlayViaInterrupt reports that, unlike PSID, the scheduler must
// never call the PLAY address directly for this bus: an RSID tune
// installs its own IRQ/NMI vector during INIT and the KERNAL stub
// dispatches to it each frame.
func (b *BusRSID) DrivesPlayViaInterrupt() bool {
	return true
}
