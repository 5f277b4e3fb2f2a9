package blockdevice

import (
	"miigo/hardware/bus"
	"miigo/hardware/cpu"
)

// ROMSize is the size of one slot's card ROM window.
const ROMSize = 256

// DriveCount is the number of drives the card exposes, both through the
// HD trap's single unit bit and the SmartPort trap's unit number.
const DriveCount = 2

// Error codes returned in A with carry set, per spec §4.I and the
// SmartPort technote.
const (
	ErrBadStatus = 0x21
	ErrBadUnit   = 0x28
	ErrIOError   = 0x2D
	ErrNoDevice  = 0x2F
)

// romImage is the card's firmware: a stub ROM that locates the two BRK
// traps patched in by Install and jumps to them, ported byte for byte
// from mii_smartport.c's mii_rom_smartport.
var romImage = [ROMSize]byte{
	0xa2, 0x20, 0xa9, 0x00, 0xa2, 0x03, 0xa9, 0x00, 0x2c, 0xff, 0xcf, 0xa0, 0x00, 0x84, 0x44, 0x84,
	0x46, 0x84, 0x47, 0xc8, 0x84, 0x42, 0xa9, 0x4c, 0x8d, 0xfd, 0x07, 0xa9, 0xc0, 0x8d, 0xfe, 0x07,
	0x20, 0x58, 0xff, 0xba, 0xbd, 0x00, 0x01, 0x8d, 0xff, 0x07, 0x0a, 0x0a, 0x0a, 0x0a, 0x85, 0x43,
	0xa9, 0x08, 0x85, 0x45, 0x64, 0x44, 0x64, 0x46, 0x64, 0x47, 0x20, 0xfd, 0x07, 0xb0, 0x1e, 0xa9,
	0x0a, 0x85, 0x45, 0xa9, 0x01, 0x85, 0x46, 0x20, 0xfd, 0x07, 0xb0, 0x11, 0xad, 0x01, 0x08, 0xf0,
	0x0c, 0xa9, 0x01, 0xcd, 0x00, 0x08, 0xd0, 0x05, 0xa6, 0x43, 0x4c, 0x01, 0x08, 0xad, 0xff, 0x07,
	0xc9, 0xc1, 0xf0, 0x08, 0xc5, 0x01, 0xd0, 0x04, 0xa5, 0x00, 0xf0, 0x03, 0x4c, 0x00, 0xe0, 0xa9,
	0x92, 0x85, 0x44, 0xad, 0xff, 0x07, 0x85, 0x45, 0xa0, 0x00, 0xb1, 0x44, 0xf0, 0x06, 0x99, 0x55,
	0x07, 0xc8, 0x80, 0xf6, 0xad, 0xff, 0x07, 0x29, 0x0f, 0x3a, 0x09, 0xb0, 0x99, 0x55, 0x07, 0x4c,
	0xba, 0xfa, 0x8e, 0xef, 0xa0, 0x93, 0xed, 0xe1, 0xf2, 0xf4, 0x90, 0xef, 0xf2, 0xf4, 0xa0, 0x84,
	0xe9, 0xf3, 0xe3, 0xac, 0xa0, 0x82, 0xef, 0xef, 0xf4, 0xe9, 0xee, 0xe7, 0xa0, 0x93, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xea, 0x80, 0x0d, 0x80, 0x1b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xeb, 0xfb, 0x00, 0x80, 0x1b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xeb, 0xfb, 0x00, 0x80, 0x0b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xb0, 0x03, 0xa9, 0x00, 0x60, 0xa9, 0x27, 0x60, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x17, 0xc0,
}

// hdTrapOffset and smTrapOffset are the ROM offsets the stub firmware
// expects its two trap index bytes at (mii_smartport.c's addr+0xd2 and
// addr+0xe2, relative to the card's own page).
const (
	hdTrapOffset = 0xD2
	smTrapOffset = 0xE2
)

// Drive is one unit behind the card: a mounted block file plus the name
// reported by a SmartPort status call.
type Drive struct {
	File BlockFile
	Name string
}

// Card implements bus.Card for a ProDOS-block/SmartPort peripheral in
// one slot (spec §4.I).
type Card struct {
	Slot   int
	rom    [ROMSize]byte
	Drives [DriveCount]*Drive
	Video  bus.VideoNotifier

	hdTrap byte
	smTrap byte
}

// NewCard returns a card loaded with the stub firmware, not yet
// installed into a CPU's trap table.
func NewCard(slot int) *Card {
	c := &Card{Slot: slot}
	c.rom = romImage
	return c
}

// Install registers the card's HD and SmartPort trap callbacks with
// cpuInst and patches their trap index bytes into the ROM image, the Go
// equivalent of mii_smartport.c's _mii_sm_init.
func (c *Card) Install(cpuInst *cpu.CPU) {
	c.hdTrap = registerTrap(cpuInst, c.hdCallback)
	c.smTrap = registerTrap(cpuInst, c.smCallback)
	c.rom[hdTrapOffset] = c.hdTrap
	c.rom[smTrapOffset] = c.smTrap
}

func registerTrap(cpuInst *cpu.CPU, fn cpu.TrapFunc) byte {
	for i := 1; i < len(cpuInst.TrapTable); i++ {
		if cpuInst.TrapTable[i] == nil {
			cpuInst.TrapTable[i] = fn
			return byte(i)
		}
	}
	panic("blockdevice: no free CPU trap slots")
}

// Access implements bus.Card: the ROM page is read-only, writes are
// ignored (spec §4.I: "card ROM image loaded into $CsXX").
func (c *Card) Access(addr uint16, value *byte, write bool) bool {
	if write {
		return true
	}
	*value = c.rom[addr&0xFF]
	return true
}

func (c *Card) drive(unit int) *Drive {
	if unit < 0 || unit >= DriveCount {
		return nil
	}
	return c.Drives[unit]
}
