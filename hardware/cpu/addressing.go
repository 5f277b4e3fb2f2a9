package cpu

// Each addrXxx helper consumes its operand bytes from the instruction
// stream (advancing PC) and returns the effective address plus whether a
// page boundary was crossed, for instructions that charge an extra cycle
// for it.

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	return uint16(byte(c.fetch() + c.X))
}

func (c *CPU) addrZeroPageY() uint16 {
	return uint16(byte(c.fetch() + c.Y))
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
	zp := byte(c.fetch() + c.X)
	lo := uint16(c.Bus.Read(uint16(zp)))
	hi := uint16(c.Bus.Read(uint16(byte(zp + 1))))
	return hi<<8 | lo
}

func (c *CPU) addrIndirectY() (uint16, bool) {
	zp := c.fetch()
	lo := uint16(c.Bus.Read(uint16(zp)))
	hi := uint16(c.Bus.Read(uint16(byte(zp + 1))))
	base := hi<<8 | lo
	addr := base + uint16(c.Y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

// addrZeroPageIndirect is the 65C02 addition (zp) with no index, used by
// ORA/AND/EOR/ADC/STA/LDA/CMP/SBC.
func (c *CPU) addrZeroPageIndirect() uint16 {
	zp := c.fetch()
	lo := uint16(c.Bus.Read(uint16(zp)))
	hi := uint16(c.Bus.Read(uint16(byte(zp + 1))))
	return hi<<8 | lo
}

// addrIndirect is used by JMP (abs); it faithfully reproduces the NMOS
// page-wrap bug only on the base 6502 - the 65C02 fixed it, so this
// implementation does not wrap across a page boundary.
func (c *CPU) addrIndirect() uint16 {
	ptr := c.fetch16()
	lo := uint16(c.Bus.Read(ptr))
	hi := uint16(c.Bus.Read(ptr + 1))
	return hi<<8 | lo
}

// addrAbsoluteIndexedIndirect is the 65C02 JMP (abs,X) addressing mode.
func (c *CPU) addrAbsoluteIndexedIndirect() uint16 {
	base := c.fetch16()
	ptr := base + uint16(c.X)
	lo := uint16(c.Bus.Read(ptr))
	hi := uint16(c.Bus.Read(ptr + 1))
	return hi<<8 | lo
}
