package cpu

// StatusRegister is the 65C02 flags register, kept as named booleans
// rather than a raw bitfield so instruction implementations read and
// write flags by name (idiom kept from the teacher's 6507 core).
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// ToUint8 converts the register to the byte representation pushed onto
// the stack by PHP/BRK/IRQ/NMI. Bit 5 is unused and always reads 1.
func (sr StatusRegister) ToUint8() uint8 {
	var v uint8
	if sr.Sign {
		v |= 0x80
	}
	if sr.Overflow {
		v |= 0x40
	}
	v |= 0x20
	if sr.Break {
		v |= 0x10
	}
	if sr.DecimalMode {
		v |= 0x08
	}
	if sr.InterruptDisable {
		v |= 0x04
	}
	if sr.Zero {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}
	return v
}

// FromUint8 loads the register from a byte popped off the stack by
// PLP/RTI, or from the literal value used at reset.
func (sr *StatusRegister) FromUint8(v uint8) {
	sr.Sign = v&0x80 != 0
	sr.Overflow = v&0x40 != 0
	sr.Break = v&0x10 != 0
	sr.DecimalMode = v&0x08 != 0
	sr.InterruptDisable = v&0x04 != 0
	sr.Zero = v&0x02 != 0
	sr.Carry = v&0x01 != 0
}

func (sr *StatusRegister) setNZ(v byte) {
	sr.Zero = v == 0
	sr.Sign = v&0x80 != 0
}
