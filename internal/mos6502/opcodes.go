package mos6502

// Instruction bodies for the full documented NMOS 6502 instruction
// set. Each function assumes the opcode byte has already been
// consumed (c.PC points at the first operand byte) and base cycles
// already charged by Step via the cycle table; only page-crossing and
// branch-taken penalties are added here.
//
// Grounded on cpu_six5go2.go's per-instruction methods (adc/sbc/asl/
// lsr/rol/ror/compare/branch) and its addressing-mode dispatch shape,
// reassembled into one flat switch-free table of small closures
// rather than the teacher's giant executeOpcodeSwitch, since this
// core drives only one instruction set and a table read is clearer
// than a 256-case switch for that case.

func (c *CPU) ldaImm() { c.A = c.fetch(); c.updateNZ(c.A) }
func (c *CPU) ldaZP()  { c.A = c.readByte(c.addrZeroPage()); c.updateNZ(c.A) }
func (c *CPU) ldaZPX() { c.A = c.readByte(c.addrZeroPageX()); c.updateNZ(c.A) }
func (c *CPU) ldaAbs() { c.A = c.readByte(c.addrAbsolute()); c.updateNZ(c.A) }
func (c *CPU) ldaAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.A = c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) ldaAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.A = c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) ldaIndX() { c.A = c.readByte(c.addrIndirectX()); c.updateNZ(c.A) }
func (c *CPU) ldaIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.A = c.readByte(addr)
	c.updateNZ(c.A)
}

func (c *CPU) ldxImm() { c.X = c.fetch(); c.updateNZ(c.X) }
func (c *CPU) ldxZP()  { c.X = c.readByte(c.addrZeroPage()); c.updateNZ(c.X) }
func (c *CPU) ldxZPY() { c.X = c.readByte(c.addrZeroPageY()); c.updateNZ(c.X) }
func (c *CPU) ldxAbs() { c.X = c.readByte(c.addrAbsolute()); c.updateNZ(c.X) }
func (c *CPU) ldxAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.X = c.readByte(addr)
	c.updateNZ(c.X)
}

func (c *CPU) ldyImm() { c.Y = c.fetch(); c.updateNZ(c.Y) }
func (c *CPU) ldyZP()  { c.Y = c.readByte(c.addrZeroPage()); c.updateNZ(c.Y) }
func (c *CPU) ldyZPX() { c.Y = c.readByte(c.addrZeroPageX()); c.updateNZ(c.Y) }
func (c *CPU) ldyAbs() { c.Y = c.readByte(c.addrAbsolute()); c.updateNZ(c.Y) }
func (c *CPU) ldyAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.Y = c.readByte(addr)
	c.updateNZ(c.Y)
}

func (c *CPU) staZP()   { c.writeByte(c.addrZeroPage(), c.A) }
func (c *CPU) staZPX()  { c.writeByte(c.addrZeroPageX(), c.A) }
func (c *CPU) staAbs()  { c.writeByte(c.addrAbsolute(), c.A) }
func (c *CPU) staAbsX() { addr, _ := c.addrAbsoluteX(); c.writeByte(addr, c.A) }
func (c *CPU) staAbsY() { addr, _ := c.addrAbsoluteY(); c.writeByte(addr, c.A) }
func (c *CPU) staIndX() { c.writeByte(c.addrIndirectX(), c.A) }
func (c *CPU) staIndY() { addr, _ := c.addrIndirectY(); c.writeByte(addr, c.A) }

func (c *CPU) stxZP()  { c.writeByte(c.addrZeroPage(), c.X) }
func (c *CPU) stxZPY() { c.writeByte(c.addrZeroPageY(), c.X) }
func (c *CPU) stxAbs() { c.writeByte(c.addrAbsolute(), c.X) }

func (c *CPU) styZP()  { c.writeByte(c.addrZeroPage(), c.Y) }
func (c *CPU) styZPX() { c.writeByte(c.addrZeroPageX(), c.Y) }
func (c *CPU) styAbs() { c.writeByte(c.addrAbsolute(), c.Y) }

func (c *CPU) tax() { c.X = c.A; c.updateNZ(c.X) }
func (c *CPU) tay() { c.Y = c.A; c.updateNZ(c.Y) }
func (c *CPU) txa() { c.A = c.X; c.updateNZ(c.A) }
func (c *CPU) tya() { c.A = c.Y; c.updateNZ(c.A) }
func (c *CPU) tsx() { c.X = c.SP; c.updateNZ(c.X) }
func (c *CPU) txs() { c.SP = c.X }

func (c *CPU) pha() { c.push(c.A) }
func (c *CPU) php() { c.push(c.SR | FlagB | FlagU) }
func (c *CPU) pla() { c.A = c.pop(); c.updateNZ(c.A) }
func (c *CPU) plp() { c.SR = (c.pop() &^ FlagB) | FlagU }

func (c *CPU) andImm() { c.A &= c.fetch(); c.updateNZ(c.A) }
func (c *CPU) andZP()  { c.A &= c.readByte(c.addrZeroPage()); c.updateNZ(c.A) }
func (c *CPU) andZPX() { c.A &= c.readByte(c.addrZeroPageX()); c.updateNZ(c.A) }
func (c *CPU) andAbs() { c.A &= c.readByte(c.addrAbsolute()); c.updateNZ(c.A) }
func (c *CPU) andAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.A &= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) andAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.A &= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) andIndX() { c.A &= c.readByte(c.addrIndirectX()); c.updateNZ(c.A) }
func (c *CPU) andIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.A &= c.readByte(addr)
	c.updateNZ(c.A)
}

func (c *CPU) oraImm() { c.A |= c.fetch(); c.updateNZ(c.A) }
func (c *CPU) oraZP()  { c.A |= c.readByte(c.addrZeroPage()); c.updateNZ(c.A) }
func (c *CPU) oraZPX() { c.A |= c.readByte(c.addrZeroPageX()); c.updateNZ(c.A) }
func (c *CPU) oraAbs() { c.A |= c.readByte(c.addrAbsolute()); c.updateNZ(c.A) }
func (c *CPU) oraAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.A |= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) oraAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.A |= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) oraIndX() { c.A |= c.readByte(c.addrIndirectX()); c.updateNZ(c.A) }
func (c *CPU) oraIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.A |= c.readByte(addr)
	c.updateNZ(c.A)
}

func (c *CPU) eorImm() { c.A ^= c.fetch(); c.updateNZ(c.A) }
func (c *CPU) eorZP()  { c.A ^= c.readByte(c.addrZeroPage()); c.updateNZ(c.A) }
func (c *CPU) eorZPX() { c.A ^= c.readByte(c.addrZeroPageX()); c.updateNZ(c.A) }
func (c *CPU) eorAbs() { c.A ^= c.readByte(c.addrAbsolute()); c.updateNZ(c.A) }
func (c *CPU) eorAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.A ^= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) eorAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.A ^= c.readByte(addr)
	c.updateNZ(c.A)
}
func (c *CPU) eorIndX() { c.A ^= c.readByte(c.addrIndirectX()); c.updateNZ(c.A) }
func (c *CPU) eorIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.A ^= c.readByte(addr)
	c.updateNZ(c.A)
}

func (c *CPU) adcImm() { c.adc(c.fetch()) }
func (c *CPU) adcZP()  { c.adc(c.readByte(c.addrZeroPage())) }
func (c *CPU) adcZPX() { c.adc(c.readByte(c.addrZeroPageX())) }
func (c *CPU) adcAbs() { c.adc(c.readByte(c.addrAbsolute())) }
func (c *CPU) adcAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.adc(c.readByte(addr))
}
func (c *CPU) adcAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.adc(c.readByte(addr))
}
func (c *CPU) adcIndX() { c.adc(c.readByte(c.addrIndirectX())) }
func (c *CPU) adcIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.adc(c.readByte(addr))
}

func (c *CPU) sbcImm() { c.sbc(c.fetch()) }
func (c *CPU) sbcZP()  { c.sbc(c.readByte(c.addrZeroPage())) }
func (c *CPU) sbcZPX() { c.sbc(c.readByte(c.addrZeroPageX())) }
func (c *CPU) sbcAbs() { c.sbc(c.readByte(c.addrAbsolute())) }
func (c *CPU) sbcAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.sbc(c.readByte(addr))
}
func (c *CPU) sbcAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.sbc(c.readByte(addr))
}
func (c *CPU) sbcIndX() { c.sbc(c.readByte(c.addrIndirectX())) }
func (c *CPU) sbcIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.sbc(c.readByte(addr))
}

func (c *CPU) cmpImm() { c.compare(c.A, c.fetch()) }
func (c *CPU) cmpZP()  { c.compare(c.A, c.readByte(c.addrZeroPage())) }
func (c *CPU) cmpZPX() { c.compare(c.A, c.readByte(c.addrZeroPageX())) }
func (c *CPU) cmpAbs() { c.compare(c.A, c.readByte(c.addrAbsolute())) }
func (c *CPU) cmpAbsX() {
	addr, crossed := c.addrAbsoluteX()
	c.addCycleIfCrossed(crossed)
	c.compare(c.A, c.readByte(addr))
}
func (c *CPU) cmpAbsY() {
	addr, crossed := c.addrAbsoluteY()
	c.addCycleIfCrossed(crossed)
	c.compare(c.A, c.readByte(addr))
}
func (c *CPU) cmpIndX() { c.compare(c.A, c.readByte(c.addrIndirectX())) }
func (c *CPU) cmpIndY() {
	addr, crossed := c.addrIndirectY()
	c.addCycleIfCrossed(crossed)
	c.compare(c.A, c.readByte(addr))
}

func (c *CPU) cpxImm() { c.compare(c.X, c.fetch()) }
func (c *CPU) cpxZP()  { c.compare(c.X, c.readByte(c.addrZeroPage())) }
func (c *CPU) cpxAbs() { c.compare(c.X, c.readByte(c.addrAbsolute())) }

func (c *CPU) cpyImm() { c.compare(c.Y, c.fetch()) }
func (c *CPU) cpyZP()  { c.compare(c.Y, c.readByte(c.addrZeroPage())) }
func (c *CPU) cpyAbs() { c.compare(c.Y, c.readByte(c.addrAbsolute())) }

func (c *CPU) incZP() {
	a := c.addrZeroPage()
	v := c.readByte(a) + 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) incZPX() {
	a := c.addrZeroPageX()
	v := c.readByte(a) + 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) incAbs() {
	a := c.addrAbsolute()
	v := c.readByte(a) + 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) incAbsX() {
	a, _ := c.addrAbsoluteX()
	v := c.readByte(a) + 1
	c.writeByte(a, v)
	c.updateNZ(v)
}

func (c *CPU) decZP() {
	a := c.addrZeroPage()
	v := c.readByte(a) - 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) decZPX() {
	a := c.addrZeroPageX()
	v := c.readByte(a) - 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) decAbs() {
	a := c.addrAbsolute()
	v := c.readByte(a) - 1
	c.writeByte(a, v)
	c.updateNZ(v)
}
func (c *CPU) decAbsX() {
	a, _ := c.addrAbsoluteX()
	v := c.readByte(a) - 1
	c.writeByte(a, v)
	c.updateNZ(v)
}

func (c *CPU) inx() { c.X++; c.updateNZ(c.X) }
func (c *CPU) iny() { c.Y++; c.updateNZ(c.Y) }
func (c *CPU) dex() { c.X--; c.updateNZ(c.X) }
func (c *CPU) dey() { c.Y--; c.updateNZ(c.Y) }

func (c *CPU) aslAcc()  { c.A = c.asl(c.A) }
func (c *CPU) aslZP()   { a := c.addrZeroPage(); c.writeByte(a, c.asl(c.readByte(a))) }
func (c *CPU) aslZPX()  { a := c.addrZeroPageX(); c.writeByte(a, c.asl(c.readByte(a))) }
func (c *CPU) aslAbs()  { a := c.addrAbsolute(); c.writeByte(a, c.asl(c.readByte(a))) }
func (c *CPU) aslAbsX() { a, _ := c.addrAbsoluteX(); c.writeByte(a, c.asl(c.readByte(a))) }

func (c *CPU) lsrAcc()  { c.A = c.lsr(c.A) }
func (c *CPU) lsrZP()   { a := c.addrZeroPage(); c.writeByte(a, c.lsr(c.readByte(a))) }
func (c *CPU) lsrZPX()  { a := c.addrZeroPageX(); c.writeByte(a, c.lsr(c.readByte(a))) }
func (c *CPU) lsrAbs()  { a := c.addrAbsolute(); c.writeByte(a, c.lsr(c.readByte(a))) }
func (c *CPU) lsrAbsX() { a, _ := c.addrAbsoluteX(); c.writeByte(a, c.lsr(c.readByte(a))) }

func (c *CPU) rolAcc()  { c.A = c.rol(c.A) }
func (c *CPU) rolZP()   { a := c.addrZeroPage(); c.writeByte(a, c.rol(c.readByte(a))) }
func (c *CPU) rolZPX()  { a := c.addrZeroPageX(); c.writeByte(a, c.rol(c.readByte(a))) }
func (c *CPU) rolAbs()  { a := c.addrAbsolute(); c.writeByte(a, c.rol(c.readByte(a))) }
func (c *CPU) rolAbsX() { a, _ := c.addrAbsoluteX(); c.writeByte(a, c.rol(c.readByte(a))) }

func (c *CPU) rorAcc()  { c.A = c.ror(c.A) }
func (c *CPU) rorZP()   { a := c.addrZeroPage(); c.writeByte(a, c.ror(c.readByte(a))) }
func (c *CPU) rorZPX()  { a := c.addrZeroPageX(); c.writeByte(a, c.ror(c.readByte(a))) }
func (c *CPU) rorAbs()  { a := c.addrAbsolute(); c.writeByte(a, c.ror(c.readByte(a))) }
func (c *CPU) rorAbsX() { a, _ := c.addrAbsoluteX(); c.writeByte(a, c.ror(c.readByte(a))) }

func (c *CPU) bitZP()  { c.bit(c.readByte(c.addrZeroPage())) }
func (c *CPU) bitAbs() { c.bit(c.readByte(c.addrAbsolute())) }
func (c *CPU) bit(v byte) {
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagV, v&0x40 != 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) jmpAbs() { c.PC = c.addrAbsolute() }
func (c *CPU) jmpInd() { c.PC = c.addrIndirect() }
func (c *CPU) jsr() {
	addr := c.addrAbsolute()
	c.push16(c.PC - 1)
	c.PC = addr
}
func (c *CPU) rts() { c.PC = c.pop16() + 1 }
func (c *CPU) rti() {
	c.SR = (c.pop() &^ FlagB) | FlagU
	c.PC = c.pop16()
}
func (c *CPU) brk() {
	c.PC++
	c.push16(c.PC)
	c.push(c.SR | FlagB | FlagU)
	c.setFlag(FlagI, true)
	c.PC = c.read16(0xFFFE)
}

func (c *CPU) bcc() { c.branch(!c.getFlag(FlagC)) }
func (c *CPU) bcs() { c.branch(c.getFlag(FlagC)) }
func (c *CPU) beq() { c.branch(c.getFlag(FlagZ)) }
func (c *CPU) bne() { c.branch(!c.getFlag(FlagZ)) }
func (c *CPU) bmi() { c.branch(c.getFlag(FlagN)) }
func (c *CPU) bpl() { c.branch(!c.getFlag(FlagN)) }
func (c *CPU) bvc() { c.branch(!c.getFlag(FlagV)) }
func (c *CPU) bvs() { c.branch(c.getFlag(FlagV)) }

func (c *CPU) clc() { c.setFlag(FlagC, false) }
func (c *CPU) sec() { c.setFlag(FlagC, true) }
func (c *CPU) cld() { c.setFlag(FlagD, false) }
func (c *CPU) sed() { c.setFlag(FlagD, true) }
func (c *CPU) cli() { c.setFlag(FlagI, false) }
func (c *CPU) sei() { c.setFlag(FlagI, true) }
func (c *CPU) clv() { c.setFlag(FlagV, false) }

func (c *CPU) nop() {}
