package blockdevice

import (
	"miigo/emuerr"
	"miigo/hardware/cpu"
	"miigo/logger"
)

// smCallback implements the SmartPort trap of spec §4.I: parameters are
// passed on the stack via the return-address-minus-3 convention from the
// 1984 SmartPort technote. Ported from mii_smartport.c's
// _mii_sm_callback, with one deliberate deviation: unit validation is
// uniform for read and write (unit must be in [1, DriveCount]) rather
// than replicating the original's asymmetric (and, for write, unsafe
// off-by-one) range checks — see SPEC_FULL.md Open Question decisions.
func (c *Card) smCallback(cp *cpu.CPU) {
	sp := 0x100 + uint16(cp.S) + 1
	callAddr := readWord(cp, sp)

	spCommand := cp.Bus.Read(callAddr + 1)
	spParams := readWord(cp, callAddr+2)
	callAddr += 3
	writeWord(cp, sp, callAddr)

	spPCount := cp.Bus.Read(spParams + 0)
	spUnit := cp.Bus.Read(spParams + 1)
	spBuffer := readWord(cp, spParams+2)

	switch spCommand {
	case 0:
		c.smGetStatus(cp, spPCount, spUnit, spParams, spBuffer)
	case 1:
		c.smReadBlock(cp, spPCount, spUnit, spParams, spBuffer)
	case 2:
		c.smWriteBlock(cp, spPCount, spUnit, spParams, spBuffer)
	default:
		cp.P.Carry = true
	}
}

func (c *Card) smGetStatus(cp *cpu.CPU, pcount byte, unit byte, params uint16, buffer uint16) {
	if pcount != 3 {
		cp.P.Carry = true
		return
	}
	status := cp.Bus.Read(params + 4)
	st := byte(0x80 | 0x40 | 0x20)
	var bsize uint32

	switch status {
	case 0:
		cp.P.Carry = false
		cp.A = 0
		switch {
		case unit == 0:
			writeBlock(cp, buffer, []byte{DriveCount, 0x00, 0x01, 0x13})
		case int(unit) <= DriveCount:
			if drv := c.drive(int(unit) - 1); drv != nil {
				st |= 0x10
				bsize = drv.File.BlockCount()
			}
			writeBlock(cp, buffer, []byte{st, byte(bsize), byte(bsize >> 8), byte(bsize >> 16)})
		default:
			cp.P.Carry = true
			cp.A = ErrBadStatus
		}

	case 3:
		cp.P.Carry = false
		cp.A = 0
		if unit > 0 && int(unit) <= DriveCount {
			if drv := c.drive(int(unit) - 1); drv != nil {
				st |= 0x10
				bsize = drv.File.BlockCount()
			}
			out := make([]byte, 0, 4+17+4)
			out = append(out, st, byte(bsize), byte(bsize>>8), byte(bsize>>16))
			out = append(out, driveName(unit)...)
			out = append(out, 0x02, 0x00, 0x01, 0x13) // device type, subtype, version
			writeBlock(cp, buffer, out)
		} else {
			cp.P.Carry = true
			cp.A = ErrBadStatus
		}

	default:
		cp.P.Carry = true
		cp.A = ErrBadStatus
	}
}

func (c *Card) smReadBlock(cp *cpu.CPU, pcount byte, unit byte, params uint16, buffer uint16) {
	cp.P.Carry = false
	cp.A = 0
	if pcount != 3 {
		cp.P.Carry = true
		return
	}
	if unit < 1 || int(unit) > DriveCount {
		cp.P.Carry = true
		cp.A = ErrBadUnit
		return
	}
	drv := c.drive(int(unit) - 1)
	if drv == nil {
		cp.P.Carry = true
		cp.A = ErrNoDevice
		return
	}
	blk := uint32(cp.Bus.Read(params+4)) | uint32(cp.Bus.Read(params+5))<<8 | uint32(cp.Bus.Read(params+6))<<16
	if blk >= drv.File.BlockCount() {
		cp.P.Carry = true
		cp.A = ErrIOError
		return
	}
	var buf [BlockSize]byte
	if err := drv.File.ReadBlockAt(blk, buf[:]); err != nil {
		logger.Log(logger.Allow, "blockdevice", emuerr.New(emuerr.BlockDeviceIOError, unit, blk, err).Error())
		cp.P.Carry = true
		cp.A = ErrIOError
		return
	}
	writeBlock(cp, buffer, buf[:])
	if c.Video != nil {
		c.Video.OOBWrite(buffer, BlockSize)
	}
}

func (c *Card) smWriteBlock(cp *cpu.CPU, pcount byte, unit byte, params uint16, buffer uint16) {
	cp.P.Carry = false
	cp.A = 0
	if pcount != 3 {
		cp.P.Carry = true
		return
	}
	if unit < 1 || int(unit) > DriveCount {
		cp.P.Carry = true
		cp.A = ErrBadUnit
		return
	}
	drv := c.drive(int(unit) - 1)
	if drv == nil {
		cp.P.Carry = true
		cp.A = ErrNoDevice
		return
	}
	blk := uint32(cp.Bus.Read(params+4)) | uint32(cp.Bus.Read(params+5))<<8 | uint32(cp.Bus.Read(params+6))<<16
	if blk >= drv.File.BlockCount() {
		cp.P.Carry = true
		cp.A = ErrIOError
		return
	}
	var buf [BlockSize]byte
	readBlock(cp, buffer, buf[:])
	if err := drv.File.WriteBlockAt(blk, buf[:]); err != nil {
		logger.Log(logger.Allow, "blockdevice", emuerr.New(emuerr.BlockDeviceIOError, unit, blk, err).Error())
		cp.P.Carry = true
		cp.A = ErrIOError
		return
	}
}

// driveName returns the 17-byte length-prefixed device name a Get
// Status(3) call reports, e.g. {0x08, "MII HD 1", ...spaces}.
func driveName(unit byte) []byte {
	out := make([]byte, 17)
	out[0] = 0x08
	label := []byte("MII HD 0")
	copy(out[1:], label)
	out[8] = '0' + (unit - 1)
	for i := 1 + len(label); i < len(out); i++ {
		out[i] = ' '
	}
	return out
}
