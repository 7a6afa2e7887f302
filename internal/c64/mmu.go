package c64

// PageSource identifies which backing store a 4KB CPU page resolves to.
type PageSource int

const (
	PageRAM PageSource = iota
	PageBasicROM
	PageKernalROM
	PageCharROM
	PageIO
)

// Mmu models the C64 PLA's address decoding: the CPU port bits
// (LORAM/HIRAM/CHAREN) plus the cartridge lines (EXROM/GAME) select,
// for each of the sixteen 4KB pages, which device answers reads and
// which answers writes.
//
// Grounded on original_source/src/c64_emu/mmu.rs's PageMapping/Mmu
// design, re-expressed as two 16-entry lookup tables recomputed on
// every control-line change, matching the recompute-on-write idiom
// IntuitionAmiga-IntuitionEngine uses for its own bank switching in
// sid_playback_bus_6502.go's writeVIC/writeCIA1 handlers.
type Mmu struct {
	loram  bool
	hiram  bool
	charen bool
	exrom  bool
	game   bool

	readMap  [16]PageSource
	writeMap [16]PageSource

	seed uint32
}

// NewMmu returns an Mmu in the power-on configuration: no cartridge
// present (exrom=game=true), CPU port floating high (loram=hiram=
// charen=true), which selects the normal KERNAL+BASIC+IO map.
func NewMmu() *Mmu {
	m := &Mmu{
		loram:  true,
		hiram:  true,
		charen: true,
		exrom:  true,
		game:   true,
		seed:   3686734,
	}
	m.recompute()
	return m
}

// SetCPUPort updates the LORAM/HIRAM/CHAREN bits from the $01 I/O port
// (bit0=LORAM, bit1=HIRAM, bit2=CHAREN) and recomputes the page maps.
func (m *Mmu) SetCPUPort(value uint8) {
	m.loram = value&0x01 != 0
	m.hiram = value&0x02 != 0
	m.charen = value&0x04 != 0
	m.recompute()
}

// SetExromGame updates the cartridge sense lines and recomputes the
// page maps. Both true (no cartridge) is the default PSID/RSID state;
// exrom=false && game=true selects Ultimax mode.
func (m *Mmu) SetExromGame(exrom, game bool) {
	m.exrom = exrom
	m.game = game
	m.recompute()
}

func (m *Mmu) recompute() {
	for p := 0; p < 16; p++ {
		m.readMap[p] = PageRAM
		m.writeMap[p] = PageRAM
	}

	if !m.exrom && m.game {
		// Ultimax: IO and KERNAL are forced in regardless of CPU port.
		m.readMap[0xD] = PageIO
		m.writeMap[0xD] = PageIO
		for p := 0xE; p <= 0xF; p++ {
			m.readMap[p] = PageKernalROM
			m.writeMap[p] = PageRAM
		}
		return
	}

	if m.hiram {
		m.readMap[0xE] = PageKernalROM
		m.readMap[0xF] = PageKernalROM
	}
	if m.loram && m.hiram {
		m.readMap[0xA] = PageBasicROM
		m.readMap[0xB] = PageBasicROM
	}
	if m.loram || m.hiram {
		if m.charen {
			m.readMap[0xD] = PageIO
			m.writeMap[0xD] = PageIO
		} else {
			m.readMap[0xD] = PageCharROM
		}
	}
}

// ReadSource reports which device answers a CPU read from addr.
func (m *Mmu) ReadSource(addr uint16) PageSource {
	return m.readMap[addr>>12]
}

// WriteSource reports which device answers a CPU write to addr.
func (m *Mmu) WriteSource(addr uint16) PageSource {
	return m.writeMap[addr>>12]
}

// NextFloatingByte returns the next pseudo-random byte a disconnected
// data bus would float to, e.g. reading an unmapped I/O register.
// Grounded on original_source's Mmu::last_read_byte LCG; the exact
// multiplier/increment reproduce its period, not any real PLA
// behaviour, which is genuinely pseudo-random.
func (m *Mmu) NextFloatingByte() uint8 {
	m.seed = m.seed*1664525 + 1013904223
	return uint8(m.seed >> 16)
}
