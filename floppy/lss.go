package floppy

// ROMSize is the size of the Logic State Sequencer ROM image.
const ROMSize = 256

// Action bits decoded from a LSS ROM entry's low nibble. The ROM's
// exact bit assignment is not pinned by spec §4.H beyond "the action
// controls data_register (shift-left, load) and write_register flow";
// this is this package's concrete choice (SPEC_FULL.md Open Question
// decisions), documented so a real Disk II P6 ROM dump can be adapted to
// it if one becomes available.
const (
	actionShift = 1 << 0 // shift data_register left, feeding in the track bit
	actionLoad  = 1 << 1 // load data_register from write_register (write path)
	actionWrite = 1 << 2 // this tick contributes a bit to the track (write mode)
)

// Controller models the Disk II card's Logic State Sequencer: a
// 16-state x 16-input ROM-driven state machine clocked once per
// bit-timing tick, shared between up to two drives.
type Controller struct {
	ROM [ROMSize]byte

	State byte // lss_state, 0..15
	Mode  byte // lss_mode: Q6/Q7 bits packed as (Q6<<1)|Q7

	DataRegister  byte
	WriteRegister byte

	Clock int64 // free-running count of ticks executed

	Drives [2]*Drive
	Active int // which of Drives is selected

	// BootEnabled mirrors the card's boot signature: disk_loader.c enables
	// it once a mount succeeds (MII_SLOT_D2_SET_BOOT) so the IIe firmware's
	// slot scan considers the card bootable.
	BootEnabled bool
}

// SetBootEnabled sets or clears the card's boot signature, called by the
// disk loader after a successful mount (or at eject).
func (c *Controller) SetBootEnabled(enabled bool) {
	c.BootEnabled = enabled
}

// NewController returns a controller loaded with rom (must be exactly
// ROMSize bytes; a short ROM is zero-padded).
func NewController(rom []byte) *Controller {
	c := &Controller{}
	n := len(rom)
	if n > ROMSize {
		n = ROMSize
	}
	copy(c.ROM[:n], rom[:n])
	return c
}

func (c *Controller) drive() *Drive {
	return c.Drives[c.Active]
}

// input composes the 4-bit ROM input nibble from the current track data
// bit, the Q6/Q7 mode bits, and the drive's write-protect flag.
func (c *Controller) input(dataBit bool) byte {
	var in byte
	if dataBit {
		in |= 1 << 3
	}
	in |= (c.Mode & 0x3) << 1
	if d := c.drive(); d != nil && d.WriteProtected {
		in |= 1
	}
	return in
}

// Tick advances the sequencer by one bit-timing tick: it samples (or
// drives) one bit from the selected drive, looks up the ROM, and applies
// the resulting action. Returns the action byte for callers that want to
// observe write activity.
func (c *Controller) Tick() byte {
	d := c.drive()
	var dataBit bool
	if d != nil {
		dataBit = d.PeekBit()
	}

	idx := (c.State&0xF)<<4 | c.input(dataBit)
	entry := c.ROM[idx]
	nextState := (entry >> 4) & 0xF
	action := entry & 0xF

	// A tick touches exactly one bit cell: write mode consumes it via
	// WriteBit, otherwise the sensed bit (already in dataBit) is consumed
	// by advancing past it here.
	if action&actionWrite != 0 && d != nil {
		d.WriteBit(c.WriteRegister&0x80 != 0)
		c.WriteRegister <<= 1
	} else if d != nil {
		d.ReadBit()
	}

	if action&actionShift != 0 {
		c.DataRegister <<= 1
		if dataBit {
			c.DataRegister |= 1
		}
	}
	if action&actionLoad != 0 {
		c.DataRegister = c.WriteRegister
	}

	c.State = nextState
	c.Clock++
	return action
}

// SetMode sets the Q6/Q7 soft-switch bits that select the card's
// read/write/sense mode.
func (c *Controller) SetMode(q6, q7 bool) {
	var m byte
	if q6 {
		m |= 0x2
	}
	if q7 {
		m |= 0x1
	}
	c.Mode = m
}

// ReadDataRegister implements the guest-visible $C0xC read.
func (c *Controller) ReadDataRegister() byte {
	return c.DataRegister
}

// LoadWriteRegister implements the guest-visible $C0xC write.
func (c *Controller) LoadWriteRegister(v byte) {
	c.WriteRegister = v
}
