package bus

// accessSoftSwitch handles a single access to the $C000-$C0FF page
// (spec §4.D). It returns false for addresses with no defined meaning on
// this model, letting the caller fall back to a vapor read.
func (b *Bus) accessSoftSwitch(addr uint16, value *byte, write bool) bool {
	lo := addr & 0xFF

	switch {
	case lo == 0x00:
		if write {
			b.Switches = b.Switches.Set(SW80STORE, false)
		} else {
			*value = b.keyLatch
		}
		return true
	case lo == 0x01:
		b.Switches = b.Switches.Set(SW80STORE, true)
		return true
	case lo == 0x02:
		b.Switches = b.Switches.Set(SWRAMRD, false)
		return true
	case lo == 0x03:
		b.Switches = b.Switches.Set(SWRAMRD, true)
		return true
	case lo == 0x04:
		b.Switches = b.Switches.Set(SWRAMWRT, false)
		return true
	case lo == 0x05:
		b.Switches = b.Switches.Set(SWRAMWRT, true)
		return true
	case lo == 0x08:
		b.Switches = b.Switches.Set(SWALTZP, false)
		return true
	case lo == 0x09:
		b.Switches = b.Switches.Set(SWALTZP, true)
		return true
	case lo == 0x0C:
		b.Switches = b.Switches.Set(SW80COL, false)
		return true
	case lo == 0x0D:
		b.Switches = b.Switches.Set(SW80COL, true)
		return true
	case lo == 0x0E:
		b.Switches = b.Switches.Toggle(SWALTCHARSET)
		return true
	case lo == 0x0F:
		b.Switches = b.Switches.Toggle(SWALTCHARSET)
		return true
	case lo == 0x10:
		// keyboard strobe clear (spec §6: bit 7 set until $C010 is read)
		b.keyLatch &= 0x7F
		*value = b.keyLatch
		return true
	case lo == 0x19:
		if !write {
			if b.Switches.Get(SWVBL) {
				*value = 0x80
			} else {
				*value = 0x00
			}
		}
		return true
	case lo == 0x1E:
		b.Switches = b.Switches.Set(SWAN3, false)
		return true
	case lo == 0x1F:
		b.Switches = b.Switches.Set(SWAN3, true)
		return true
	case lo == 0x30:
		if b.Speaker != nil && b.Cycles != nil {
			b.Speaker.Click(b.Cycles.TotalCycle())
		}
		return true
	case lo == 0x50:
		b.Switches = b.Switches.Set(SWTEXT, false)
		return true
	case lo == 0x51:
		b.Switches = b.Switches.Set(SWTEXT, true)
		return true
	case lo == 0x52:
		b.Switches = b.Switches.Set(SWMIXED, false)
		return true
	case lo == 0x53:
		b.Switches = b.Switches.Set(SWMIXED, true)
		return true
	case lo == 0x54:
		b.Switches = b.Switches.Set(SWPAGE2, false)
		return true
	case lo == 0x55:
		b.Switches = b.Switches.Set(SWPAGE2, true)
		return true
	case lo == 0x56:
		b.Switches = b.Switches.Set(SWHIRES, false)
		return true
	case lo == 0x57:
		b.Switches = b.Switches.Set(SWHIRES, true)
		return true
	case lo >= 0x64 && lo <= 0x67:
		n := int(lo - 0x64)
		if !write {
			if b.Cycles != nil && b.Cycles.TotalCycle() < b.paddleDeadline[n] {
				*value = 0x80
			} else {
				*value = 0x00
			}
		}
		return true
	case lo == 0x70:
		b.triggerPaddles()
		return true
	case lo == 0x5E:
		b.Switches = b.Switches.Set(SWDHIRES, false)
		return true
	case lo == 0x5F:
		b.Switches = b.Switches.Set(SWDHIRES, true)
		return true
	case lo >= 0x80 && lo <= 0x8F:
		b.setLanguageCardSwitch(lo)
		return true
	case lo >= 0x90 && lo <= 0xFF:
		slot := int((lo-0x90)>>4) + 1
		if c := b.Cards[slot]; c != nil {
			return c.Access(addr, value, write)
		}
		return false
	}
	return false
}

// paddleCyclesPerCount is the approximate number of CPU cycles the RC
// timing circuit takes per unit of paddle position, derived from the
// documented ~11 cycles/unit figure for a game-paddle potentiometer at a
// 1 MHz bus clock (Apple II Reference Manual, paddle timing appendix).
const paddleCyclesPerCount = 11

func (b *Bus) triggerPaddles() {
	if b.Cycles == nil {
		return
	}
	now := b.Cycles.TotalCycle()
	for i, pos := range b.paddlePos {
		b.paddleDeadline[i] = now + uint64(pos)*paddleCyclesPerCount
	}
}

// setLanguageCardSwitch decodes the $C080-$C08F language-card bank
// switch table. The two-consecutive-read write-enable latch of the real
// hardware is not modelled; a single access to a write-enabling offset
// enables writes immediately, which is simpler and observationally
// identical for any firmware that performs the conventional double read.
func (b *Bus) setLanguageCardSwitch(lo uint16) {
	n := lo & 0x0F
	bank2 := n&0x08 == 0
	b.Switches = b.Switches.Set(SWLCBANK2, bank2)

	switch n & 0x03 {
	case 0:
		b.Switches = b.Switches.Set(SWLCREAD, true)
		b.Switches = b.Switches.Set(SWLCWRITE, false)
	case 1:
		b.Switches = b.Switches.Set(SWLCREAD, false)
		b.Switches = b.Switches.Set(SWLCWRITE, true)
	case 2:
		b.Switches = b.Switches.Set(SWLCREAD, false)
		b.Switches = b.Switches.Set(SWLCWRITE, false)
	case 3:
		b.Switches = b.Switches.Set(SWLCREAD, true)
		b.Switches = b.Switches.Set(SWLCWRITE, true)
	}
}
