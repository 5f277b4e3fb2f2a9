package bus

import "miigo/hardware/bank"

// Bus is the address decoder of spec §4.D. It owns no storage itself
// beyond the language-card RAM banks; main/auxiliary RAM, ROM, and card
// firmware are wired in as banks and cards by the top-level orchestrator.
type Bus struct {
	Switches SoftSwitches

	Main    *bank.Bank // $0000-$BFFF main DRAM
	Aux     *bank.Bank // $0000-$BFFF auxiliary DRAM
	MainROM *bank.Bank // $D000-$FFFF when the language card reads ROM

	Cards [8]Card // slot 0 unused, slots 1-7 addressable

	Video   VideoNotifier
	Speaker SpeakerSink
	Vapor   VaporSource
	Cycles  CycleSource

	lcBank1 [0x1000]byte // $D000-$DFFF, language card bank 1
	lcBank2 [0x1000]byte // $D000-$DFFF, language card bank 2
	lcCommon [0x2000]byte // $E000-$FFFF, shared between banks

	keyLatch byte

	paddlePos      [4]byte
	paddleDeadline [4]uint64
}

// New creates a bus with its RAM/ROM banks and card slots wired by the
// caller afterwards.
func New() *Bus {
	return &Bus{}
}

// Read implements cpu.CPUBus.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0xC000:
		return b.selectBank(addr, false).Peek(addr)
	case addr <= 0xC0FF:
		var v byte
		if !b.accessSoftSwitch(addr, &v, false) {
			return b.vapor(addr)
		}
		return v
	case addr <= 0xCFFF:
		return b.readCardROM(addr)
	default:
		return b.readLanguageCard(addr)
	}
}

// Write implements cpu.CPUBus.
func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0xC000:
		b.selectBank(addr, true).Poke(addr, v)
	case addr <= 0xC0FF:
		vv := v
		b.accessSoftSwitch(addr, &vv, true)
	case addr <= 0xCFFF:
		b.writeCardROM(addr, v)
	default:
		b.writeLanguageCard(addr, v)
	}
}

// ClearRAM implements cpu.RAMClearer for a cold reset.
func (b *Bus) ClearRAM() {
	zero := make([]byte, 256)
	if b.Main != nil {
		for p := 0; p < 256; p++ {
			b.Main.Write(uint16(p)*256, zero)
		}
	}
	if b.Aux != nil {
		for p := 0; p < 256; p++ {
			b.Aux.Write(uint16(p)*256, zero)
		}
	}
	for i := range b.lcBank1 {
		b.lcBank1[i] = 0
	}
	for i := range b.lcBank2 {
		b.lcBank2[i] = 0
	}
	for i := range b.lcCommon {
		b.lcCommon[i] = 0
	}
}

func (b *Bus) selectBank(addr uint16, write bool) *bank.Bank {
	if addr < 0x0200 {
		if b.Switches.Get(SWALTZP) {
			return b.Aux
		}
		return b.Main
	}
	if b.Switches.Get(SW80STORE) {
		inText := addr >= 0x0400 && addr < 0x0800
		inHires := b.Switches.Get(SWHIRES) && addr >= 0x2000 && addr < 0x4000
		if inText || inHires {
			if b.Switches.Get(SWPAGE2) {
				return b.Aux
			}
			return b.Main
		}
	}
	if write {
		if b.Switches.Get(SWRAMWRT) {
			return b.Aux
		}
		return b.Main
	}
	if b.Switches.Get(SWRAMRD) {
		return b.Aux
	}
	return b.Main
}

func (b *Bus) readCardROM(addr uint16) byte {
	slot := int(addr>>8) & 0x7
	if c := b.Cards[slot]; c != nil {
		var v byte
		if c.Access(addr, &v, false) {
			return v
		}
	}
	return b.vapor(addr)
}

func (b *Bus) writeCardROM(addr uint16, v byte) {
	slot := int(addr>>8) & 0x7
	if c := b.Cards[slot]; c != nil {
		vv := v
		c.Access(addr, &vv, true)
	}
}

func (b *Bus) readLanguageCard(addr uint16) byte {
	if b.Switches.Get(SWLCREAD) {
		if addr < 0xE000 {
			if b.Switches.Get(SWLCBANK2) {
				return b.lcBank2[addr-0xD000]
			}
			return b.lcBank1[addr-0xD000]
		}
		return b.lcCommon[addr-0xE000]
	}
	if b.MainROM == nil {
		return b.vapor(addr)
	}
	return b.MainROM.Peek(addr)
}

func (b *Bus) writeLanguageCard(addr uint16, v byte) {
	if !b.Switches.Get(SWLCWRITE) {
		return
	}
	if addr < 0xE000 {
		if b.Switches.Get(SWLCBANK2) {
			b.lcBank2[addr-0xD000] = v
		} else {
			b.lcBank1[addr-0xD000] = v
		}
		return
	}
	b.lcCommon[addr-0xE000] = v
}

func (b *Bus) vapor(addr uint16) byte {
	if b.Vapor != nil {
		return b.Vapor.VaporRead()
	}
	return 0
}

// NotifyOOBWrite tells the video renderer that size bytes starting at
// addr were written by something other than the CPU (card DMA), so a
// video line overlapping the buffer is marked dirty (spec §4.D, §4.I).
func (b *Bus) NotifyOOBWrite(addr uint16, size int) {
	if b.Video != nil {
		b.Video.OOBWrite(addr, size)
	}
}

// SetVBL is called by the video timer to reflect the visible/blanking
// phase into the SWVBL bit (spec §4.F).
func (b *Bus) SetVBL(blanking bool) {
	b.Switches = b.Switches.Set(SWVBL, blanking)
}

// KeyPress latches code into the keyboard strobe register with its high
// bit set, per spec §6's keyboard API.
func (b *Bus) KeyPress(code byte) {
	b.keyLatch = code | 0x80
}

// SetPaddlePosition records the current analog position (0-255) for
// paddle n, read back by a subsequent trigger at $C070.
func (b *Bus) SetPaddlePosition(n int, pos byte) {
	if n >= 0 && n < len(b.paddlePos) {
		b.paddlePos[n] = pos
	}
}
