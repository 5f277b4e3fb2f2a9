package floppy

import (
	"miigo/logger"
	"miigo/romset"
)

// BootROMSize is the size of the Disk II card's slot boot ROM window.
const BootROMSize = 256

// BootROMName is the name a real Disk II boot ROM dump would register
// itself under in package romset, class ClassCard.
const BootROMName = "disk2"

// syntheticBootROM stands in for a real P5 boot ROM dump when nothing has
// registered BootROMName in romset: a page of NOPs, bootable in the
// sense that the firmware's slot scan can read it, but not a functional
// bootstrap. A real dump can be substituted at any time by registering
// it under (ClassCard, BootROMName) before NewCard is called.
var syntheticBootROM [BootROMSize]byte

func init() {
	for i := range syntheticBootROM {
		syntheticBootROM[i] = 0xEA // NOP
	}
}

// Card implements bus.Card for a Disk II controller occupying one slot
// (spec §4.H, §4.D card integration). The slot's I/O page, $C0n0-$C0nF
// for slot n, exposes the LSS soft switches (stepper phases, motor,
// drive select, Q6/Q7 mode, data register); the slot's ROM page,
// $Cn00-$CnFF, is the boot ROM read by the firmware's slot scan.
type Card struct {
	Slot       int
	Controller *Controller

	rom [BootROMSize]byte

	clockAccum int
}

// NewCard wires a card for slot around ctrl, loading its boot ROM from
// romset's (ClassCard, BootROMName) registration if one has been made,
// or the synthetic placeholder otherwise.
func NewCard(slot int, ctrl *Controller) *Card {
	c := &Card{Slot: slot, Controller: ctrl}
	if data, ok := romset.Lookup(romset.ClassCard, BootROMName); ok {
		n := len(data)
		if n > BootROMSize {
			n = BootROMSize
		}
		copy(c.rom[:n], data[:n])
	} else {
		logger.Logf(logger.Allow, "floppy", "no %q ROM registered, slot %d boot page is a synthetic placeholder", BootROMName, slot)
		c.rom = syntheticBootROM
	}
	return c
}

// Access implements bus.Card. Addresses below $C100 are this slot's I/O
// register window (the bus passes the full $C0nX address unmodified);
// addresses $C100 and above are the boot ROM page.
func (c *Card) Access(addr uint16, value *byte, write bool) bool {
	if addr < 0xC100 {
		return c.accessIO(addr, value, write)
	}
	if write {
		return true
	}
	*value = c.rom[addr&0xFF]
	return true
}

// accessIO decodes the 16-byte LSS soft-switch window, in the standard
// Disk II layout: phase 0-3 off/on, motor off/on, drive 1/2 select, then
// Q6L/Q6H/Q7L/Q7H (mode control, with Q6L additionally the data-register
// transfer point).
func (c *Card) accessIO(addr uint16, value *byte, write bool) bool {
	ctrl := c.Controller
	lo := addr & 0xF

	switch {
	case lo <= 0x7:
		phase := int(lo >> 1)
		on := lo&1 != 0
		if d := ctrl.drive(); d != nil {
			bit := byte(1) << uint(phase)
			if on {
				d.Stepper |= bit
				d.SetPhase(phase)
			} else {
				d.Stepper &^= bit
			}
		}
		return true
	case lo == 0x8:
		if d := ctrl.drive(); d != nil {
			d.Motor = false
		}
		return true
	case lo == 0x9:
		if d := ctrl.drive(); d != nil {
			d.Motor = true
		}
		return true
	case lo == 0xA:
		ctrl.Active = 0
		return true
	case lo == 0xB:
		ctrl.Active = 1
		return true
	case lo == 0xC: // Q6L: data register transfer
		ctrl.SetMode(false, ctrl.Mode&0x1 != 0)
		if write {
			ctrl.LoadWriteRegister(*value)
		} else {
			*value = ctrl.ReadDataRegister()
		}
		return true
	case lo == 0xD: // Q6H
		ctrl.SetMode(true, ctrl.Mode&0x1 != 0)
		return true
	case lo == 0xE: // Q7L: read mode
		ctrl.SetMode(ctrl.Mode&0x2 != 0, false)
		return true
	case lo == 0xF: // Q7H: write mode
		ctrl.SetMode(ctrl.Mode&0x2 != 0, true)
		return true
	}
	return false
}

// Advance drives the LSS through enough bit-cell ticks to account for
// cpuCycles elapsed CPU cycles, per spec §4.H: "every emulator tick
// advances bit_position and drives the LSS through as many state
// updates as match the target timing." BitTiming CPU cycles make up one
// bit cell; fractional progress carries over in clockAccum. The selected
// drive's motor must be on, matching the real hardware's head not
// turning, and therefore not presenting new bits, while stopped.
func (c *Card) Advance(cpuCycles int) {
	d := c.Controller.drive()
	if d == nil || !d.Motor {
		c.clockAccum = 0
		return
	}
	c.clockAccum += cpuCycles
	for c.clockAccum >= BitTiming {
		c.Controller.Tick()
		c.clockAccum -= BitTiming
	}
}
