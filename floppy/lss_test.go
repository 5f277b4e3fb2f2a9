package floppy

import "testing"

// buildShiftROM returns a 256-byte LSS ROM where every entry requests a
// shift action and stays in state 0, so a controller driven by it turns
// into a plain serial-to-parallel shift register.
func buildShiftROM() []byte {
	rom := make([]byte, ROMSize)
	for i := range rom {
		rom[i] = actionShift // next_state = 0, action = shift
	}
	return rom
}

func TestControllerShiftsTrackBitsIntoDataRegister(t *testing.T) {
	d := NewDrive()
	d.Tracks[0].AppendBytes([]byte{0xA5})
	d.loadCurrentTrack()

	c := NewController(buildShiftROM())
	c.Drives[0] = d
	c.Active = 0

	for i := 0; i < 8; i++ {
		c.Tick()
	}
	if c.DataRegister != 0xA5 {
		t.Fatalf("DataRegister = 0x%02X, want 0xA5", c.DataRegister)
	}
}

func TestControllerWriteModeFeedsWriteRegisterToTrack(t *testing.T) {
	rom := make([]byte, ROMSize)
	for i := range rom {
		rom[i] = actionShift | actionWrite
	}

	d := NewDrive()
	d.Tracks[0].AppendBits(0, 8)
	d.loadCurrentTrack()

	c := NewController(rom)
	c.Drives[0] = d
	c.Active = 0
	c.LoadWriteRegister(0x80) // top bit set, so actionWrite writes a 1 on the first tick

	for i := 0; i < 8; i++ {
		c.Tick()
	}

	if d.CurrTrackData[0] == 0 {
		t.Fatal("expected write-mode ticks to set bits in the resident track")
	}
}

func TestSetModePacksQ6Q7(t *testing.T) {
	c := NewController(make([]byte, ROMSize))
	c.SetMode(true, false)
	if c.Mode != 0x2 {
		t.Fatalf("Mode = 0x%X, want 0x2", c.Mode)
	}
	c.SetMode(false, true)
	if c.Mode != 0x1 {
		t.Fatalf("Mode = 0x%X, want 0x1", c.Mode)
	}
}
