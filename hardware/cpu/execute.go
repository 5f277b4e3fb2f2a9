package cpu

// execute dispatches a single fetched opcode and returns its (unscaled)
// cycle cost. Speed scaling and cycle/total_cycle accumulation happen in
// Step. Opcodes with no defined meaning on this core fall through to the
// default case and are logged and treated as a no-op (spec §7 CPUFault).
func (c *CPU) execute(opcode byte) uint32 {
	startPC := c.PC - 1

	switch opcode {

	// --- control flow ---
	case 0x00: // BRK (or trap dispatch)
		return c.brk()
	case 0x40: // RTI
		p := c.pop()
		c.P.FromUint8(p)
		c.PC = c.pop16()
		return 6
	case 0x4C: // JMP abs
		c.PC = c.addrAbsolute()
		return 3
	case 0x6C: // JMP (abs)
		c.PC = c.addrIndirect()
		return 5
	case 0x7C: // JMP (abs,X) [65C02]
		c.PC = c.addrAbsoluteIndexedIndirect()
		return 6
	case 0x20: // JSR abs
		addr := c.addrAbsolute()
		c.push16(c.PC - 1)
		c.PC = addr
		return 6
	case 0x60: // RTS
		c.PC = c.pop16() + 1
		return 6
	case 0x80: // BRA rel [65C02]
		return c.branch(true)
	case 0x10:
		return c.branch(!c.P.Sign)
	case 0x30:
		return c.branch(c.P.Sign)
	case 0x50:
		return c.branch(!c.P.Overflow)
	case 0x70:
		return c.branch(c.P.Overflow)
	case 0x90:
		return c.branch(!c.P.Carry)
	case 0xB0:
		return c.branch(c.P.Carry)
	case 0xD0:
		return c.branch(!c.P.Zero)
	case 0xF0:
		return c.branch(c.P.Zero)

	// --- stack / register transfer ---
	case 0x08: // PHP
		p := c.P
		p.Break = true
		c.push(p.ToUint8())
		return 3
	case 0x28: // PLP
		c.P.FromUint8(c.pop())
		return 4
	case 0x48: // PHA
		c.push(c.A)
		return 3
	case 0x68: // PLA
		c.A = c.pop()
		c.P.setNZ(c.A)
		return 4
	case 0xDA: // PHX [65C02]
		c.push(c.X)
		return 3
	case 0xFA: // PLX [65C02]
		c.X = c.pop()
		c.P.setNZ(c.X)
		return 4
	case 0x5A: // PHY [65C02]
		c.push(c.Y)
		return 3
	case 0x7A: // PLY [65C02]
		c.Y = c.pop()
		c.P.setNZ(c.Y)
		return 4
	case 0xAA:
		c.X = c.A
		c.P.setNZ(c.X)
		return 2
	case 0x8A:
		c.A = c.X
		c.P.setNZ(c.A)
		return 2
	case 0xA8:
		c.Y = c.A
		c.P.setNZ(c.Y)
		return 2
	case 0x98:
		c.A = c.Y
		c.P.setNZ(c.A)
		return 2
	case 0xBA:
		c.X = c.S
		c.P.setNZ(c.X)
		return 2
	case 0x9A:
		c.S = c.X
		return 2
	case 0xCA:
		c.X = c.dec(c.X)
		return 2
	case 0xE8:
		c.X = c.inc(c.X)
		return 2
	case 0x88:
		c.Y = c.dec(c.Y)
		return 2
	case 0xC8:
		c.Y = c.inc(c.Y)
		return 2
	case 0xEA: // NOP
		return 2

	// --- flags ---
	case 0x18:
		c.P.Carry = false
		return 2
	case 0x38:
		c.P.Carry = true
		return 2
	case 0x58:
		c.P.InterruptDisable = false
		return 2
	case 0x78:
		c.P.InterruptDisable = true
		return 2
	case 0xB8:
		c.P.Overflow = false
		return 2
	case 0xD8:
		c.P.DecimalMode = false
		return 2
	case 0xF8:
		c.P.DecimalMode = true
		return 2

	// --- loads ---
	case 0xA9:
		c.ld(&c.A, c.fetch())
		return 2
	case 0xA5:
		c.ld(&c.A, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xB5:
		c.ld(&c.A, c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0xAD:
		c.ld(&c.A, c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xBD:
		addr, cross := c.addrAbsoluteX()
		c.ld(&c.A, c.Bus.Read(addr))
		return extra(4, cross)
	case 0xB9:
		addr, cross := c.addrAbsoluteY()
		c.ld(&c.A, c.Bus.Read(addr))
		return extra(4, cross)
	case 0xA1:
		c.ld(&c.A, c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0xB1:
		addr, cross := c.addrIndirectY()
		c.ld(&c.A, c.Bus.Read(addr))
		return extra(5, cross)
	case 0xB2: // LDA (zp) [65C02]
		c.ld(&c.A, c.Bus.Read(c.addrZeroPageIndirect()))
		return 5
	case 0xA2:
		c.ld(&c.X, c.fetch())
		return 2
	case 0xA6:
		c.ld(&c.X, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xB6:
		c.ld(&c.X, c.Bus.Read(c.addrZeroPageY()))
		return 4
	case 0xAE:
		c.ld(&c.X, c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xBE:
		addr, cross := c.addrAbsoluteY()
		c.ld(&c.X, c.Bus.Read(addr))
		return extra(4, cross)
	case 0xA0:
		c.ld(&c.Y, c.fetch())
		return 2
	case 0xA4:
		c.ld(&c.Y, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xB4:
		c.ld(&c.Y, c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0xAC:
		c.ld(&c.Y, c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xBC:
		addr, cross := c.addrAbsoluteX()
		c.ld(&c.Y, c.Bus.Read(addr))
		return extra(4, cross)

	// --- stores ---
	case 0x85:
		c.Bus.Write(c.addrZeroPage(), c.A)
		return 3
	case 0x95:
		c.Bus.Write(c.addrZeroPageX(), c.A)
		return 4
	case 0x8D:
		c.Bus.Write(c.addrAbsolute(), c.A)
		return 4
	case 0x9D:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.A)
		return 5
	case 0x99:
		addr, _ := c.addrAbsoluteY()
		c.Bus.Write(addr, c.A)
		return 5
	case 0x81:
		c.Bus.Write(c.addrIndirectX(), c.A)
		return 6
	case 0x91:
		addr, _ := c.addrIndirectY()
		c.Bus.Write(addr, c.A)
		return 6
	case 0x92: // STA (zp) [65C02]
		c.Bus.Write(c.addrZeroPageIndirect(), c.A)
		return 5
	case 0x86:
		c.Bus.Write(c.addrZeroPage(), c.X)
		return 3
	case 0x96:
		c.Bus.Write(c.addrZeroPageY(), c.X)
		return 4
	case 0x8E:
		c.Bus.Write(c.addrAbsolute(), c.X)
		return 4
	case 0x84:
		c.Bus.Write(c.addrZeroPage(), c.Y)
		return 3
	case 0x94:
		c.Bus.Write(c.addrZeroPageX(), c.Y)
		return 4
	case 0x8C:
		c.Bus.Write(c.addrAbsolute(), c.Y)
		return 4

	// --- STZ [65C02] ---
	case 0x64:
		c.Bus.Write(c.addrZeroPage(), 0)
		return 3
	case 0x74:
		c.Bus.Write(c.addrZeroPageX(), 0)
		return 4
	case 0x9C:
		c.Bus.Write(c.addrAbsolute(), 0)
		return 4
	case 0x9E:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, 0)
		return 5

	// --- logical ---
	case 0x29:
		c.and(c.fetch())
		return 2
	case 0x25:
		c.and(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0x35:
		c.and(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0x2D:
		c.and(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0x3D:
		addr, cross := c.addrAbsoluteX()
		c.and(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x39:
		addr, cross := c.addrAbsoluteY()
		c.and(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x21:
		c.and(c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0x31:
		addr, cross := c.addrIndirectY()
		c.and(c.Bus.Read(addr))
		return extra(5, cross)
	case 0x32:
		c.and(c.Bus.Read(c.addrZeroPageIndirect()))
		return 5

	case 0x09:
		c.ora(c.fetch())
		return 2
	case 0x05:
		c.ora(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0x15:
		c.ora(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0x0D:
		c.ora(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0x1D:
		addr, cross := c.addrAbsoluteX()
		c.ora(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x19:
		addr, cross := c.addrAbsoluteY()
		c.ora(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x01:
		c.ora(c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0x11:
		addr, cross := c.addrIndirectY()
		c.ora(c.Bus.Read(addr))
		return extra(5, cross)
	case 0x12:
		c.ora(c.Bus.Read(c.addrZeroPageIndirect()))
		return 5

	case 0x49:
		c.eor(c.fetch())
		return 2
	case 0x45:
		c.eor(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0x55:
		c.eor(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0x4D:
		c.eor(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0x5D:
		addr, cross := c.addrAbsoluteX()
		c.eor(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x59:
		addr, cross := c.addrAbsoluteY()
		c.eor(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x41:
		c.eor(c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0x51:
		addr, cross := c.addrIndirectY()
		c.eor(c.Bus.Read(addr))
		return extra(5, cross)
	case 0x52:
		c.eor(c.Bus.Read(c.addrZeroPageIndirect()))
		return 5

	// --- BIT ---
	case 0x24:
		c.bit(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0x2C:
		c.bit(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0x34:
		c.bit(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0x3C:
		addr, cross := c.addrAbsoluteX()
		c.bit(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x89: // BIT imm [65C02] - only affects Z
		v := c.fetch()
		c.P.Zero = c.A&v == 0
		return 2

	// --- arithmetic ---
	case 0x69:
		c.adc(c.fetch())
		return 2
	case 0x65:
		c.adc(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0x75:
		c.adc(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0x6D:
		c.adc(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0x7D:
		addr, cross := c.addrAbsoluteX()
		c.adc(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x79:
		addr, cross := c.addrAbsoluteY()
		c.adc(c.Bus.Read(addr))
		return extra(4, cross)
	case 0x61:
		c.adc(c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0x71:
		addr, cross := c.addrIndirectY()
		c.adc(c.Bus.Read(addr))
		return extra(5, cross)
	case 0x72:
		c.adc(c.Bus.Read(c.addrZeroPageIndirect()))
		return 5

	case 0xE9:
		c.sbc(c.fetch())
		return 2
	case 0xE5:
		c.sbc(c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xF5:
		c.sbc(c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0xED:
		c.sbc(c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xFD:
		addr, cross := c.addrAbsoluteX()
		c.sbc(c.Bus.Read(addr))
		return extra(4, cross)
	case 0xF9:
		addr, cross := c.addrAbsoluteY()
		c.sbc(c.Bus.Read(addr))
		return extra(4, cross)
	case 0xE1:
		c.sbc(c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0xF1:
		addr, cross := c.addrIndirectY()
		c.sbc(c.Bus.Read(addr))
		return extra(5, cross)
	case 0xF2:
		c.sbc(c.Bus.Read(c.addrZeroPageIndirect()))
		return 5

	// --- compare ---
	case 0xC9:
		c.cmp(c.A, c.fetch())
		return 2
	case 0xC5:
		c.cmp(c.A, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xD5:
		c.cmp(c.A, c.Bus.Read(c.addrZeroPageX()))
		return 4
	case 0xCD:
		c.cmp(c.A, c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xDD:
		addr, cross := c.addrAbsoluteX()
		c.cmp(c.A, c.Bus.Read(addr))
		return extra(4, cross)
	case 0xD9:
		addr, cross := c.addrAbsoluteY()
		c.cmp(c.A, c.Bus.Read(addr))
		return extra(4, cross)
	case 0xC1:
		c.cmp(c.A, c.Bus.Read(c.addrIndirectX()))
		return 6
	case 0xD1:
		addr, cross := c.addrIndirectY()
		c.cmp(c.A, c.Bus.Read(addr))
		return extra(5, cross)
	case 0xD2:
		c.cmp(c.A, c.Bus.Read(c.addrZeroPageIndirect()))
		return 5
	case 0xE0:
		c.cmp(c.X, c.fetch())
		return 2
	case 0xE4:
		c.cmp(c.X, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xEC:
		c.cmp(c.X, c.Bus.Read(c.addrAbsolute()))
		return 4
	case 0xC0:
		c.cmp(c.Y, c.fetch())
		return 2
	case 0xC4:
		c.cmp(c.Y, c.Bus.Read(c.addrZeroPage()))
		return 3
	case 0xCC:
		c.cmp(c.Y, c.Bus.Read(c.addrAbsolute()))
		return 4

	// --- shifts / inc / dec on memory ---
	case 0x0A:
		c.A = c.asl(c.A)
		return 2
	case 0x06:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.asl(c.Bus.Read(addr)))
		return 5
	case 0x16:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.asl(c.Bus.Read(addr)))
		return 6
	case 0x0E:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.asl(c.Bus.Read(addr)))
		return 6
	case 0x1E:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.asl(c.Bus.Read(addr)))
		return 7

	case 0x4A:
		c.A = c.lsr(c.A)
		return 2
	case 0x46:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.lsr(c.Bus.Read(addr)))
		return 5
	case 0x56:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.lsr(c.Bus.Read(addr)))
		return 6
	case 0x4E:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.lsr(c.Bus.Read(addr)))
		return 6
	case 0x5E:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.lsr(c.Bus.Read(addr)))
		return 7

	case 0x2A:
		c.A = c.rol(c.A)
		return 2
	case 0x26:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.rol(c.Bus.Read(addr)))
		return 5
	case 0x36:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.rol(c.Bus.Read(addr)))
		return 6
	case 0x2E:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.rol(c.Bus.Read(addr)))
		return 6
	case 0x3E:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.rol(c.Bus.Read(addr)))
		return 7

	case 0x6A:
		c.A = c.ror(c.A)
		return 2
	case 0x66:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.ror(c.Bus.Read(addr)))
		return 5
	case 0x76:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.ror(c.Bus.Read(addr)))
		return 6
	case 0x6E:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.ror(c.Bus.Read(addr)))
		return 6
	case 0x7E:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.ror(c.Bus.Read(addr)))
		return 7

	case 0x1A: // INC A [65C02]
		c.A = c.inc(c.A)
		return 2
	case 0xE6:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.inc(c.Bus.Read(addr)))
		return 5
	case 0xF6:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.inc(c.Bus.Read(addr)))
		return 6
	case 0xEE:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.inc(c.Bus.Read(addr)))
		return 6
	case 0xFE:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.inc(c.Bus.Read(addr)))
		return 7

	case 0x3A: // DEC A [65C02]
		c.A = c.dec(c.A)
		return 2
	case 0xC6:
		addr := c.addrZeroPage()
		c.Bus.Write(addr, c.dec(c.Bus.Read(addr)))
		return 5
	case 0xD6:
		addr := c.addrZeroPageX()
		c.Bus.Write(addr, c.dec(c.Bus.Read(addr)))
		return 6
	case 0xCE:
		addr := c.addrAbsolute()
		c.Bus.Write(addr, c.dec(c.Bus.Read(addr)))
		return 6
	case 0xDE:
		addr, _ := c.addrAbsoluteX()
		c.Bus.Write(addr, c.dec(c.Bus.Read(addr)))
		return 7

	// --- TRB/TSB [65C02] ---
	case 0x14:
		return c.trbZP()
	case 0x1C:
		return c.trb()
	case 0x04:
		return c.tsbZP()
	case 0x0C:
		return c.tsb()

	// --- RMB/SMB/BBR/BBS [65C02] ---
	case 0x07:
		return c.rmb(0)
	case 0x17:
		return c.rmb(1)
	case 0x27:
		return c.rmb(2)
	case 0x37:
		return c.rmb(3)
	case 0x47:
		return c.rmb(4)
	case 0x57:
		return c.rmb(5)
	case 0x67:
		return c.rmb(6)
	case 0x77:
		return c.rmb(7)
	case 0x87:
		return c.smb(0)
	case 0x97:
		return c.smb(1)
	case 0xA7:
		return c.smb(2)
	case 0xB7:
		return c.smb(3)
	case 0xC7:
		return c.smb(4)
	case 0xD7:
		return c.smb(5)
	case 0xE7:
		return c.smb(6)
	case 0xF7:
		return c.smb(7)
	case 0x0F:
		return c.bbr(0)
	case 0x1F:
		return c.bbr(1)
	case 0x2F:
		return c.bbr(2)
	case 0x3F:
		return c.bbr(3)
	case 0x4F:
		return c.bbr(4)
	case 0x5F:
		return c.bbr(5)
	case 0x6F:
		return c.bbr(6)
	case 0x7F:
		return c.bbr(7)
	case 0x8F:
		return c.bbs(0)
	case 0x9F:
		return c.bbs(1)
	case 0xAF:
		return c.bbs(2)
	case 0xBF:
		return c.bbs(3)
	case 0xCF:
		return c.bbs(4)
	case 0xDF:
		return c.bbs(5)
	case 0xEF:
		return c.bbs(6)
	case 0xFF:
		return c.bbs(7)

	default:
		return c.undefined(opcode, startPC)
	}
}

func extra(base uint32, crossed bool) uint32 {
	if crossed {
		return base + 1
	}
	return base
}
