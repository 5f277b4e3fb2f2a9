package blockdevice

import (
	"miigo/emuerr"
	"miigo/hardware/cpu"
	"miigo/logger"
)

// hdCallback implements the HD trap of spec §4.I: parameters in zero
// page $42-$47 (command, unit, buffer, block), status returns the block
// count in X:Y, read/write transfer one 512-byte block. Ported from
// mii_smartport.c's _mii_hd_callback.
func (c *Card) hdCallback(cp *cpu.CPU) {
	command := cp.Bus.Read(0x42)
	unit := cp.Bus.Read(0x43)
	buffer := readWord(cp, 0x44)
	block := readWord(cp, 0x46)

	unitIdx := int(unit >> 7)
	drv := c.drive(unitIdx)

	switch command {
	case 0: // get status
		if drv == nil {
			cp.X, cp.Y = 0, 0
			cp.P.Carry = true
			return
		}
		n := drv.File.BlockCount()
		cp.X = byte(n)
		cp.Y = byte(n >> 8)
		cp.P.Carry = false

	case 1: // read block
		if drv == nil {
			cp.P.Carry = true
			return
		}
		if uint32(block) >= drv.File.BlockCount() {
			cp.P.Carry = true
			return
		}
		var buf [BlockSize]byte
		if err := drv.File.ReadBlockAt(uint32(block), buf[:]); err != nil {
			logger.Log(logger.Allow, "blockdevice", emuerr.New(emuerr.BlockDeviceIOError, unitIdx, block, err).Error())
			cp.P.Carry = true
			return
		}
		writeBlock(cp, buffer, buf[:])
		if c.Video != nil {
			c.Video.OOBWrite(buffer, BlockSize)
		}
		cp.P.Carry = false

	case 2: // write block
		if drv == nil {
			cp.P.Carry = true
			return
		}
		if uint32(block) >= drv.File.BlockCount() {
			cp.P.Carry = true
			return
		}
		var buf [BlockSize]byte
		readBlock(cp, buffer, buf[:])
		if err := drv.File.WriteBlockAt(uint32(block), buf[:]); err != nil {
			logger.Log(logger.Allow, "blockdevice", emuerr.New(emuerr.BlockDeviceIOError, unitIdx, block, err).Error())
			cp.P.Carry = true
			return
		}
		cp.P.Carry = false

	default:
		cp.P.Carry = true
	}
}

func readWord(cp *cpu.CPU, addr uint16) uint16 {
	lo := uint16(cp.Bus.Read(addr))
	hi := uint16(cp.Bus.Read(addr + 1))
	return hi<<8 | lo
}

func writeWord(cp *cpu.CPU, addr uint16, v uint16) {
	cp.Bus.Write(addr, byte(v))
	cp.Bus.Write(addr+1, byte(v>>8))
}

func writeBlock(cp *cpu.CPU, addr uint16, buf []byte) {
	for i, b := range buf {
		cp.Bus.Write(addr+uint16(i), b)
	}
}

func readBlock(cp *cpu.CPU, addr uint16, buf []byte) {
	for i := range buf {
		buf[i] = cp.Bus.Read(addr + uint16(i))
	}
}
