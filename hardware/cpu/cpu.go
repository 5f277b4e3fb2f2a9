package cpu

import (
	"miigo/emuerr"
	"miigo/logger"
)

// CPU is the 65C02 register file and instruction dispatcher (spec §3,
// §4.C). It owns no memory of its own; every access goes through Bus.
type CPU struct {
	A, X, Y, S byte
	P          StatusRegister
	PC         uint16

	Cycle      uint32
	TotalCycle uint64
	Speed      float64

	// InstructionRun is a preemption budget: a timer or trap callback may
	// zero it to force RunCycles to return control to the outer loop
	// before the requested cycle count is reached.
	InstructionRun int

	PendingIRQ bool
	PendingNMI bool

	TrapTable [256]TrapFunc

	Bus CPUBus
}

// New creates a CPU wired to bus with a neutral 1.0 speed multiplier.
func New(bus CPUBus) *CPU {
	return &CPU{Bus: bus, Speed: 1.0}
}

// Reset loads PC from the reset vector and clears registers. A cold
// reset additionally asks the bus to zero guest RAM, if it supports it.
func (c *CPU) Reset(cold bool) {
	if cold {
		if rc, ok := c.Bus.(RAMClearer); ok {
			rc.ClearRAM()
		}
	}
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = StatusRegister{InterruptDisable: true}
	c.PC = c.read16(0xFFFC)
	c.Cycle = 0
	c.PendingIRQ = false
	c.PendingNMI = false
}

// RunCycles executes instructions until at least n cycles have elapsed or
// InstructionRun has been zeroed by a callback, whichever comes first.
func (c *CPU) RunCycles(n uint32) {
	c.InstructionRun = 1
	var ran uint32
	for ran < n {
		if c.InstructionRun == 0 {
			return
		}
		ran += c.Step()
	}
}

// Step executes a single instruction (or a single trap dispatch) and
// returns the number of cycles it consumed.
func (c *CPU) Step() uint32 {
	if c.PendingNMI {
		c.PendingNMI = false
		return c.interrupt(0xFFFA, false)
	}
	if c.PendingIRQ && !c.P.InterruptDisable {
		c.PendingIRQ = false
		return c.interrupt(0xFFFE, false)
	}

	opcode := c.fetch()
	cycles := c.execute(opcode)
	speed := c.Speed
	if speed < 1.0 {
		speed = 1.0
	}
	scaled := uint32(float64(cycles) * speed)
	c.Cycle += scaled
	c.TotalCycle += uint64(scaled)
	return scaled
}

func (c *CPU) fetch() byte {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.Bus.Read(addr))
	hi := uint16(c.Bus.Read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) push(v byte) {
	c.Bus.Write(0x0100+uint16(c.S), v)
	c.S--
}

func (c *CPU) pop() byte {
	c.S++
	return c.Bus.Read(0x0100 + uint16(c.S))
}

func (c *CPU) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// interrupt pushes PC and P and jumps through vector, used for real
// IRQ/NMI delivery. fromBRK additionally sets the Break flag in the
// pushed copy of P, per 6502 convention.
func (c *CPU) interrupt(vector uint16, fromBRK bool) uint32 {
	c.push16(c.PC)
	p := c.P
	p.Break = fromBRK
	c.push(p.ToUint8())
	c.P.InterruptDisable = true
	c.PC = c.read16(vector)
	return 7
}

// brk implements opcode 0x00: if a trap is registered at the byte
// following BRK, it is invoked directly instead of a real interrupt
// (spec §4.C). Otherwise BRK behaves as a real software interrupt.
func (c *CPU) brk() uint32 {
	trapID := c.Bus.Read(c.PC)
	if fn := c.TrapTable[trapID]; fn != nil {
		c.PC++
		fn(c)
		return 6
	}
	c.PC++
	return c.interrupt(0xFFFE, true)
}

// undefined logs and treats the opcode as a no-op, per spec §7's
// CPUFault recovery policy: emulation never aborts on guest misbehaviour.
func (c *CPU) undefined(opcode byte, pc uint16) uint32 {
	err := emuerr.New(emuerr.UndefinedOpcode, opcode, pc)
	logger.Log(logger.Allow, "cpu", err.Error())
	return 2
}
