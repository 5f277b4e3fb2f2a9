package cpu

func (c *CPU) ld(reg *byte, v byte) {
	*reg = v
	c.P.setNZ(v)
}

func (c *CPU) cmp(reg, v byte) {
	c.P.Carry = reg >= v
	c.P.setNZ(reg - v)
}

func (c *CPU) and(v byte) {
	c.A &= v
	c.P.setNZ(c.A)
}

func (c *CPU) ora(v byte) {
	c.A |= v
	c.P.setNZ(c.A)
}

func (c *CPU) eor(v byte) {
	c.A ^= v
	c.P.setNZ(c.A)
}

func (c *CPU) bit(v byte) {
	c.P.Zero = c.A&v == 0
	c.P.Sign = v&0x80 != 0
	c.P.Overflow = v&0x40 != 0
}

func (c *CPU) asl(v byte) byte {
	c.P.Carry = v&0x80 != 0
	r := v << 1
	c.P.setNZ(r)
	return r
}

func (c *CPU) lsr(v byte) byte {
	c.P.Carry = v&0x01 != 0
	r := v >> 1
	c.P.setNZ(r)
	return r
}

func (c *CPU) rol(v byte) byte {
	var carryIn byte
	if c.P.Carry {
		carryIn = 1
	}
	c.P.Carry = v&0x80 != 0
	r := v<<1 | carryIn
	c.P.setNZ(r)
	return r
}

func (c *CPU) ror(v byte) byte {
	var carryIn byte
	if c.P.Carry {
		carryIn = 0x80
	}
	c.P.Carry = v&0x01 != 0
	r := v>>1 | carryIn
	c.P.setNZ(r)
	return r
}

func (c *CPU) inc(v byte) byte {
	r := v + 1
	c.P.setNZ(r)
	return r
}

func (c *CPU) dec(v byte) byte {
	r := v - 1
	c.P.setNZ(r)
	return r
}

func (c *CPU) adc(v byte) {
	if c.P.DecimalMode {
		c.adcDecimal(v)
		return
	}
	carry := 0
	if c.P.Carry {
		carry = 1
	}
	sum := int(c.A) + int(v) + carry
	result := byte(sum)
	c.P.Overflow = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.P.Carry = sum > 0xFF
	c.A = result
	c.P.setNZ(c.A)
}

func (c *CPU) adcDecimal(v byte) {
	carry := 0
	if c.P.Carry {
		carry = 1
	}
	lo := int(c.A&0x0F) + int(v&0x0F) + carry
	hi := int(c.A>>4) + int(v>>4)
	if lo > 9 {
		lo -= 10
		hi++
	}
	if hi > 9 {
		hi -= 10
		c.P.Carry = true
	} else {
		c.P.Carry = false
	}
	c.A = byte(hi<<4 | (lo & 0x0F))
	c.P.setNZ(c.A)
}

func (c *CPU) sbc(v byte) {
	if c.P.DecimalMode {
		c.sbcDecimal(v)
		return
	}
	borrow := 0
	if !c.P.Carry {
		borrow = 1
	}
	diff := int(c.A) - int(v) - borrow
	result := byte(diff)
	c.P.Overflow = (c.A^v)&0x80 != 0 && (c.A^result)&0x80 != 0
	c.P.Carry = diff >= 0
	c.A = result
	c.P.setNZ(c.A)
}

func (c *CPU) sbcDecimal(v byte) {
	borrow := 0
	if !c.P.Carry {
		borrow = 1
	}
	lo := int(c.A&0x0F) - int(v&0x0F) - borrow
	hi := int(c.A>>4) - int(v>>4)
	if lo < 0 {
		lo += 10
		hi--
	}
	if hi < 0 {
		hi += 10
		c.P.Carry = false
	} else {
		c.P.Carry = true
	}
	c.A = byte(hi<<4 | (lo & 0x0F))
	c.P.setNZ(c.A)
}

func (c *CPU) branch(cond bool) uint32 {
	rel := int8(c.fetch())
	if !cond {
		return 2
	}
	old := c.PC
	c.PC = uint16(int32(c.PC) + int32(rel))
	if old&0xFF00 != c.PC&0xFF00 {
		return 4
	}
	return 3
}

func (c *CPU) rmb(bit byte) uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr) &^ (1 << bit)
	c.Bus.Write(addr, v)
	return 5
}

func (c *CPU) smb(bit byte) uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr) | 1<<bit
	c.Bus.Write(addr, v)
	return 5
}

func (c *CPU) bbr(bit byte) uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr)
	rel := int8(c.fetch())
	if v&(1<<bit) == 0 {
		c.PC = uint16(int32(c.PC) + int32(rel))
	}
	return 5
}

func (c *CPU) bbs(bit byte) uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr)
	rel := int8(c.fetch())
	if v&(1<<bit) != 0 {
		c.PC = uint16(int32(c.PC) + int32(rel))
	}
	return 5
}

func (c *CPU) trb() uint32 {
	addr := c.addrAbsolute()
	v := c.Bus.Read(addr)
	c.P.Zero = c.A&v == 0
	c.Bus.Write(addr, v&^c.A)
	return 6
}

func (c *CPU) tsb() uint32 {
	addr := c.addrAbsolute()
	v := c.Bus.Read(addr)
	c.P.Zero = c.A&v == 0
	c.Bus.Write(addr, v|c.A)
	return 6
}

func (c *CPU) trbZP() uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr)
	c.P.Zero = c.A&v == 0
	c.Bus.Write(addr, v&^c.A)
	return 5
}

func (c *CPU) tsbZP() uint32 {
	addr := c.addrZeroPage()
	v := c.Bus.Read(addr)
	c.P.Zero = c.A&v == 0
	c.Bus.Write(addr, v|c.A)
	return 5
}
