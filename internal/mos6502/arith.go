package mos6502

// adc/sbc/branch/compare/shift helpers shared by the opcode table.
//
// Grounded on cpu_six5go2.go's adc/sbc/asl/lsr/rol/ror/compare/branch,
// including their decimal-mode ADC/SBC handling.

func (c *CPU) adc(value byte) {
	if c.getFlag(FlagD) {
		c.adcDecimal(value)
		return
	}
	sum := uint16(c.A) + uint16(value)
	if c.getFlag(FlagC) {
		sum++
	}
	result := byte(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^value)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.updateNZ(c.A)
}

func (c *CPU) adcDecimal(value byte) {
	carry := byte(0)
	if c.getFlag(FlagC) {
		carry = 1
	}
	lo := (c.A & 0x0F) + (value & 0x0F) + carry
	hi := (c.A >> 4) + (value >> 4)
	if lo > 9 {
		lo += 6
		hi++
	}
	v := (c.A ^ value) & 0x80
	result16 := uint16(c.A) + uint16(value) + uint16(carry)
	c.setFlag(FlagZ, byte(result16) == 0)
	if hi > 9 {
		hi += 6
	}
	c.setFlag(FlagC, hi > 15)
	out := (hi << 4) | (lo & 0x0F)
	c.setFlag(FlagN, out&0x80 != 0)
	c.setFlag(FlagV, v == 0 && (c.A^out)&0x80 != 0)
	c.A = out
}

func (c *CPU) sbc(value byte) {
	if c.getFlag(FlagD) {
		c.sbcDecimal(value)
		return
	}
	c.adc(value ^ 0xFF)
}

func (c *CPU) sbcDecimal(value byte) {
	carry := byte(0)
	if c.getFlag(FlagC) {
		carry = 1
	}
	result16 := int16(c.A) - int16(value) - int16(1-carry)

	lo := int16(c.A&0x0F) - int16(value&0x0F) - int16(1-carry)
	hi := int16(c.A>>4) - int16(value>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}

	c.setFlag(FlagC, result16 >= 0)
	c.setFlag(FlagV, (c.A^value)&0x80 != 0 && (c.A^byte(result16))&0x80 != 0)
	c.updateNZ(byte(result16))
	c.A = byte(hi<<4) | byte(lo&0x0F)
}

func (c *CPU) compare(reg, value byte) {
	result := reg - value
	c.setFlag(FlagC, reg >= value)
	c.updateNZ(result)
}

func (c *CPU) branch(taken bool) {
	offset := int8(c.fetch())
	if !taken {
		return
	}
	old := c.PC
	c.PC = uint16(int32(c.PC) + int32(offset))
	c.Cycles++
	if old&0xFF00 != c.PC&0xFF00 {
		c.Cycles++
	}
}

func (c *CPU) asl(v byte) byte {
	c.setFlag(FlagC, v&0x80 != 0)
	out := v << 1
	c.updateNZ(out)
	return out
}

func (c *CPU) lsr(v byte) byte {
	c.setFlag(FlagC, v&0x01 != 0)
	out := v >> 1
	c.updateNZ(out)
	return out
}

func (c *CPU) rol(v byte) byte {
	carryIn := byte(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	out := (v << 1) | carryIn
	c.updateNZ(out)
	return out
}

func (c *CPU) ror(v byte) byte {
	carryIn := byte(0)
	if c.getFlag(FlagC) {
		carryIn = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	out := (v >> 1) | carryIn
	c.updateNZ(out)
	return out
}
