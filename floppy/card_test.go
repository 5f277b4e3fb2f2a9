package floppy

import "testing"

func newTestCard() (*Card, *Drive) {
	ctrl := NewController(make([]byte, ROMSize))
	d := NewDrive()
	ctrl.Drives[0] = d
	return NewCard(6, ctrl), d
}

func TestAccessBootROMServesSyntheticStubByDefault(t *testing.T) {
	c, _ := newTestCard()
	var v byte
	if !c.Access(0xC600, &v, false) || v != 0xEA {
		t.Fatalf("Access(0xC600) = %#02x, want 0xEA (synthetic NOP stub)", v)
	}
}

func TestPhaseOnStepsSelectedDrive(t *testing.T) {
	c, d := newTestCard()
	var v byte
	c.Access(0xC0E1, &v, false) // phase 0 on
	c.Access(0xC0E3, &v, false) // phase 1 on: adjacent to phase 0, steps to a higher quarter track
	if d.QTrack == 0 {
		t.Fatal("expected QTrack to move off 0 after two adjacent phase energisations")
	}
	if d.Stepper&0x2 == 0 {
		t.Fatalf("Stepper = %#02x, want phase 1 bit set", d.Stepper)
	}
}

func TestPhaseOffClearsStepperBit(t *testing.T) {
	c, d := newTestCard()
	var v byte
	c.Access(0xC0E1, &v, false) // phase 0 on
	if d.Stepper&0x1 == 0 {
		t.Fatal("expected phase 0 bit set")
	}
	c.Access(0xC0E0, &v, false) // phase 0 off
	if d.Stepper&0x1 != 0 {
		t.Fatal("expected phase 0 bit cleared")
	}
}

func TestMotorOnOff(t *testing.T) {
	c, d := newTestCard()
	var v byte
	c.Access(0xC0E9, &v, false)
	if !d.Motor {
		t.Fatal("expected motor on")
	}
	c.Access(0xC0E8, &v, false)
	if d.Motor {
		t.Fatal("expected motor off")
	}
}

func TestDriveSelect(t *testing.T) {
	ctrl := NewController(make([]byte, ROMSize))
	ctrl.Drives[0] = NewDrive()
	ctrl.Drives[1] = NewDrive()
	c := NewCard(6, ctrl)

	var v byte
	c.Access(0xC0EB, &v, false) // select drive 2
	if ctrl.Active != 1 {
		t.Fatalf("Active = %d, want 1", ctrl.Active)
	}
	c.Access(0xC0EA, &v, false) // select drive 1
	if ctrl.Active != 0 {
		t.Fatalf("Active = %d, want 0", ctrl.Active)
	}
}

func TestDataRegisterReadWrite(t *testing.T) {
	c, _ := newTestCard()
	c.Controller.DataRegister = 0x5A
	var v byte
	c.Access(0xC0EC, &v, false)
	if v != 0x5A {
		t.Fatalf("data register read = %#02x, want 0x5A", v)
	}

	write := byte(0xA5)
	c.Access(0xC0EC, &write, true)
	if c.Controller.WriteRegister != 0xA5 {
		t.Fatalf("write register = %#02x, want 0xA5", c.Controller.WriteRegister)
	}
}

func TestModeSwitchesPreserveOtherBit(t *testing.T) {
	c, _ := newTestCard()
	var v byte
	c.Access(0xC0ED, &v, false) // Q6H
	if c.Controller.Mode&0x2 == 0 {
		t.Fatal("expected Q6 set")
	}
	c.Access(0xC0EF, &v, false) // Q7H, should not disturb Q6
	if c.Controller.Mode != 0x3 {
		t.Fatalf("Mode = %#02x, want 0x3 (Q6 and Q7 both set)", c.Controller.Mode)
	}
	c.Access(0xC0EE, &v, false) // Q7L
	if c.Controller.Mode != 0x2 {
		t.Fatalf("Mode = %#02x, want 0x2 (Q6 set, Q7 clear)", c.Controller.Mode)
	}
}

func TestAdvanceTicksOncePerBitTimingWhenMotorOn(t *testing.T) {
	c, d := newTestCard()
	d.Motor = true
	before := c.Controller.Clock
	c.Advance(BitTiming * 3)
	if got := c.Controller.Clock - before; got != 3 {
		t.Fatalf("Clock advanced by %d ticks, want 3", got)
	}
}

func TestAdvanceDoesNothingWhenMotorOff(t *testing.T) {
	c, d := newTestCard()
	d.Motor = false
	before := c.Controller.Clock
	c.Advance(BitTiming * 5)
	if c.Controller.Clock != before {
		t.Fatal("expected no LSS activity while the motor is off")
	}
}
