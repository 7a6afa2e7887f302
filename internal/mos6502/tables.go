package mos6502

// initOpcodeTable populates the 256-entry dispatch table for the
// documented NMOS 6502 instruction set. Opcodes with no entry (the
// illegal/undocumented ones) dispatch to nil, which Step treats as a
// silent two-cycle NOP.
//
// Grounded on cpu_six5go2.go's InitOpcodeTable/executeOpcodeSwitch
// opcode numbering, restricted to the documented subset this engine's
// playback scope needs.
func (c *CPU) initOpcodeTable() {
	t := &c.opcodeTable

	t[0xA9] = (*CPU).ldaImm
	t[0xA5] = (*CPU).ldaZP
	t[0xB5] = (*CPU).ldaZPX
	t[0xAD] = (*CPU).ldaAbs
	t[0xBD] = (*CPU).ldaAbsX
	t[0xB9] = (*CPU).ldaAbsY
	t[0xA1] = (*CPU).ldaIndX
	t[0xB1] = (*CPU).ldaIndY

	t[0xA2] = (*CPU).ldxImm
	t[0xA6] = (*CPU).ldxZP
	t[0xB6] = (*CPU).ldxZPY
	t[0xAE] = (*CPU).ldxAbs
	t[0xBE] = (*CPU).ldxAbsY

	t[0xA0] = (*CPU).ldyImm
	t[0xA4] = (*CPU).ldyZP
	t[0xB4] = (*CPU).ldyZPX
	t[0xAC] = (*CPU).ldyAbs
	t[0xBC] = (*CPU).ldyAbsX

	t[0x85] = (*CPU).staZP
	t[0x95] = (*CPU).staZPX
	t[0x8D] = (*CPU).staAbs
	t[0x9D] = (*CPU).staAbsX
	t[0x99] = (*CPU).staAbsY
	t[0x81] = (*CPU).staIndX
	t[0x91] = (*CPU).staIndY

	t[0x86] = (*CPU).stxZP
	t[0x96] = (*CPU).stxZPY
	t[0x8E] = (*CPU).stxAbs

	t[0x84] = (*CPU).styZP
	t[0x94] = (*CPU).styZPX
	t[0x8C] = (*CPU).styAbs

	t[0xAA] = (*CPU).tax
	t[0xA8] = (*CPU).tay
	t[0x8A] = (*CPU).txa
	t[0x98] = (*CPU).tya
	t[0xBA] = (*CPU).tsx
	t[0x9A] = (*CPU).txs

	t[0x48] = (*CPU).pha
	t[0x08] = (*CPU).php
	t[0x68] = (*CPU).pla
	t[0x28] = (*CPU).plp

	t[0x29] = (*CPU).andImm
	t[0x25] = (*CPU).andZP
	t[0x35] = (*CPU).andZPX
	t[0x2D] = (*CPU).andAbs
	t[0x3D] = (*CPU).andAbsX
	t[0x39] = (*CPU).andAbsY
	t[0x21] = (*CPU).andIndX
	t[0x31] = (*CPU).andIndY

	t[0x09] = (*CPU).oraImm
	t[0x05] = (*CPU).oraZP
	t[0x15] = (*CPU).oraZPX
	t[0x0D] = (*CPU).oraAbs
	t[0x1D] = (*CPU).oraAbsX
	t[0x19] = (*CPU).oraAbsY
	t[0x01] = (*CPU).oraIndX
	t[0x11] = (*CPU).oraIndY

	t[0x49] = (*CPU).eorImm
	t[0x45] = (*CPU).eorZP
	t[0x55] = (*CPU).eorZPX
	t[0x4D] = (*CPU).eorAbs
	t[0x5D] = (*CPU).eorAbsX
	t[0x59] = (*CPU).eorAbsY
	t[0x41] = (*CPU).eorIndX
	t[0x51] = (*CPU).eorIndY

	t[0x69] = (*CPU).adcImm
	t[0x65] = (*CPU).adcZP
	t[0x75] = (*CPU).adcZPX
	t[0x6D] = (*CPU).adcAbs
	t[0x7D] = (*CPU).adcAbsX
	t[0x79] = (*CPU).adcAbsY
	t[0x61] = (*CPU).adcIndX
	t[0x71] = (*CPU).adcIndY

	t[0xE9] = (*CPU).sbcImm
	t[0xE5] = (*CPU).sbcZP
	t[0xF5] = (*CPU).sbcZPX
	t[0xED] = (*CPU).sbcAbs
	t[0xFD] = (*CPU).sbcAbsX
	t[0xF9] = (*CPU).sbcAbsY
	t[0xE1] = (*CPU).sbcIndX
	t[0xF1] = (*CPU).sbcIndY

	t[0xC9] = (*CPU).cmpImm
	t[0xC5] = (*CPU).cmpZP
	t[0xD5] = (*CPU).cmpZPX
	t[0xCD] = (*CPU).cmpAbs
	t[0xDD] = (*CPU).cmpAbsX
	t[0xD9] = (*CPU).cmpAbsY
	t[0xC1] = (*CPU).cmpIndX
	t[0xD1] = (*CPU).cmpIndY

	t[0xE0] = (*CPU).cpxImm
	t[0xE4] = (*CPU).cpxZP
	t[0xEC] = (*CPU).cpxAbs

	t[0xC0] = (*CPU).cpyImm
	t[0xC4] = (*CPU).cpyZP
	t[0xCC] = (*CPU).cpyAbs

	t[0xE6] = (*CPU).incZP
	t[0xF6] = (*CPU).incZPX
	t[0xEE] = (*CPU).incAbs
	t[0xFE] = (*CPU).incAbsX

	t[0xC6] = (*CPU).decZP
	t[0xD6] = (*CPU).decZPX
	t[0xCE] = (*CPU).decAbs
	t[0xDE] = (*CPU).decAbsX

	t[0xE8] = (*CPU).inx
	t[0xC8] = (*CPU).iny
	t[0xCA] = (*CPU).dex
	t[0x88] = (*CPU).dey

	t[0x0A] = (*CPU).aslAcc
	t[0x06] = (*CPU).aslZP
	t[0x16] = (*CPU).aslZPX
	t[0x0E] = (*CPU).aslAbs
	t[0x1E] = (*CPU).aslAbsX

	t[0x4A] = (*CPU).lsrAcc
	t[0x46] = (*CPU).lsrZP
	t[0x56] = (*CPU).lsrZPX
	t[0x4E] = (*CPU).lsrAbs
	t[0x5E] = (*CPU).lsrAbsX

	t[0x2A] = (*CPU).rolAcc
	t[0x26] = (*CPU).rolZP
	t[0x36] = (*CPU).rolZPX
	t[0x2E] = (*CPU).rolAbs
	t[0x3E] = (*CPU).rolAbsX

	t[0x6A] = (*CPU).rorAcc
	t[0x66] = (*CPU).rorZP
	t[0x76] = (*CPU).rorZPX
	t[0x6E] = (*CPU).rorAbs
	t[0x7E] = (*CPU).rorAbsX

	t[0x24] = (*CPU).bitZP
	t[0x2C] = (*CPU).bitAbs

	t[0x4C] = (*CPU).jmpAbs
	t[0x6C] = (*CPU).jmpInd
	t[0x20] = (*CPU).jsr
	t[0x60] = (*CPU).rts
	t[0x40] = (*CPU).rti
	t[0x00] = (*CPU).brk

	t[0x90] = (*CPU).bcc
	t[0xB0] = (*CPU).bcs
	t[0xF0] = (*CPU).beq
	t[0xD0] = (*CPU).bne
	t[0x30] = (*CPU).bmi
	t[0x10] = (*CPU).bpl
	t[0x50] = (*CPU).bvc
	t[0x70] = (*CPU).bvs

	t[0x18] = (*CPU).clc
	t[0x38] = (*CPU).sec
	t[0xD8] = (*CPU).cld
	t[0xF8] = (*CPU).sed
	t[0x58] = (*CPU).cli
	t[0x78] = (*CPU).sei
	t[0xB8] = (*CPU).clv

	t[0xEA] = (*CPU).nop
}

// initCycleTable populates the base cycle cost of each opcode (before
// any page-crossing or branch-taken penalty the instruction itself
// adds). Unlisted entries (illegal opcodes) default to 2.
func (c *CPU) initCycleTable() {
	for i := range c.cycleTable {
		c.cycleTable[i] = 2
	}
	costs := map[byte]uint8{
		0xA9: 2, 0xA5: 3, 0xB5: 4, 0xAD: 4, 0xBD: 4, 0xB9: 4, 0xA1: 6, 0xB1: 5,
		0xA2: 2, 0xA6: 3, 0xB6: 4, 0xAE: 4, 0xBE: 4,
		0xA0: 2, 0xA4: 3, 0xB4: 4, 0xAC: 4, 0xBC: 4,
		0x85: 3, 0x95: 4, 0x8D: 4, 0x9D: 5, 0x99: 5, 0x81: 6, 0x91: 6,
		0x86: 3, 0x96: 4, 0x8E: 4,
		0x84: 3, 0x94: 4, 0x8C: 4,
		0xAA: 2, 0xA8: 2, 0x8A: 2, 0x98: 2, 0xBA: 2, 0x9A: 2,
		0x48: 3, 0x08: 3, 0x68: 4, 0x28: 4,
		0x29: 2, 0x25: 3, 0x35: 4, 0x2D: 4, 0x3D: 4, 0x39: 4, 0x21: 6, 0x31: 5,
		0x09: 2, 0x05: 3, 0x15: 4, 0x0D: 4, 0x1D: 4, 0x19: 4, 0x01: 6, 0x11: 5,
		0x49: 2, 0x45: 3, 0x55: 4, 0x4D: 4, 0x5D: 4, 0x59: 4, 0x41: 6, 0x51: 5,
		0x69: 2, 0x65: 3, 0x75: 4, 0x6D: 4, 0x7D: 4, 0x79: 4, 0x61: 6, 0x71: 5,
		0xE9: 2, 0xE5: 3, 0xF5: 4, 0xED: 4, 0xFD: 4, 0xF9: 4, 0xE1: 6, 0xF1: 5,
		0xC9: 2, 0xC5: 3, 0xD5: 4, 0xCD: 4, 0xDD: 4, 0xD9: 4, 0xC1: 6, 0xD1: 5,
		0xE0: 2, 0xE4: 3, 0xEC: 4,
		0xC0: 2, 0xC4: 3, 0xCC: 4,
		0xE6: 5, 0xF6: 6, 0xEE: 6, 0xFE: 7,
		0xC6: 5, 0xD6: 6, 0xCE: 6, 0xDE: 7,
		0xE8: 2, 0xC8: 2, 0xCA: 2, 0x88: 2,
		0x0A: 2, 0x06: 5, 0x16: 6, 0x0E: 6, 0x1E: 7,
		0x4A: 2, 0x46: 5, 0x56: 6, 0x4E: 6, 0x5E: 7,
		0x2A: 2, 0x26: 5, 0x36: 6, 0x2E: 6, 0x3E: 7,
		0x6A: 2, 0x66: 5, 0x76: 6, 0x6E: 6, 0x7E: 7,
		0x24: 3, 0x2C: 4,
		0x4C: 3, 0x6C: 5, 0x20: 6, 0x60: 6, 0x40: 6, 0x00: 7,
		0x90: 2, 0xB0: 2, 0xF0: 2, 0xD0: 2, 0x30: 2, 0x10: 2, 0x50: 2, 0x70: 2,
		0x18: 2, 0x38: 2, 0xD8: 2, 0xF8: 2, 0x58: 2, 0x78: 2, 0xB8: 2,
		0xEA: 2,
	}
	for op, cost := range costs {
		c.cycleTable[op] = cost
	}
}
