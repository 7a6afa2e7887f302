package mos6502

// Addressing-mode helpers. Each returns the effective address (or, for
// indexed modes, also whether the index crossed a page boundary, which
// costs the NMOS chip an extra cycle on read instructions).
//
// Grounded on cpu_six5go2.go's getAbsolute/getAbsoluteX/getZeroPage/
// getIndirectX/getIndirectY family, unchanged in behaviour.

func (c *CPU) fetch() byte {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.read16(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	return uint16(c.fetch() + c.X)
}

func (c *CPU) addrZeroPageY() uint16 {
	return uint16(c.fetch() + c.Y)
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetch16()
}

func (c *CPU) addrAbsoluteX() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.X)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

func (c *CPU) addrAbsoluteY() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

func (c *CPU) addrIndirectX() uint16 {
	zp := c.fetch() + c.X
	return c.readZPWord(zp)
}

func (c *CPU) addrIndirectY() (uint16, bool) {
	zp := c.fetch()
	base := c.readZPWord(zp)
	addr := base + uint16(c.Y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

func (c *CPU) addrIndirect() uint16 {
	ptr := c.fetch16()
	// Reproduce the original 6502's page-wrap bug: if the pointer's
	// low byte is 0xFF, the high byte is fetched from ptr&0xFF00, not
	// ptr+1.
	lo := uint16(c.readByte(ptr))
	var hi uint16
	if ptr&0x00FF == 0x00FF {
		hi = uint16(c.readByte(ptr & 0xFF00))
	} else {
		hi = uint16(c.readByte(ptr + 1))
	}
	return lo | hi<<8
}

func (c *CPU) addCycleIfCrossed(crossed bool) {
	if crossed {
		c.Cycles++
	}
}
