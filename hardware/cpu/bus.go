package cpu

// CPUBus is the memory interface the CPU executes instructions through;
// it has no direct knowledge of banks (spec §4.C).
type CPUBus interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// RAMClearer is optionally implemented by a CPUBus to zero guest RAM on
// a cold reset (spec §4.C: "reset(cold) ... if cold zeroes guest RAM").
type RAMClearer interface {
	ClearRAM()
}

// TrapFunc is a host-side callback registered in the CPU's trap table,
// invoked when the CPU executes BRK followed by the trap's index byte
// (spec §4.C traps).
type TrapFunc func(c *CPU)
