package bus

import (
	"miigo/hardware/bank"
	"testing"
)

func newTestBus() *Bus {
	b := New()
	b.Main = bank.NewRaw(0x0000, 256, false)
	b.Aux = bank.NewRaw(0x0000, 256, false)
	b.MainROM = bank.NewRawFromImage(0xD000, make([]byte, 0x3000))
	return b
}

func TestMainRAMReadWrite(t *testing.T) {
	b := newTestBus()
	b.Write(0x2000, 0x42)
	if got := b.Read(0x2000); got != 0x42 {
		t.Fatalf("got %#02x, want 0x42", got)
	}
}

func TestRAMRDSwitchesToAuxForReads(t *testing.T) {
	b := newTestBus()
	b.Aux.Poke(0x4000, 0x99)
	b.Write(0xC003, 0x00) // RAMRD on
	if got := b.Read(0x4000); got != 0x99 {
		t.Fatalf("expected aux read, got %#02x", got)
	}
}

func TestTextSwitchToggles(t *testing.T) {
	b := newTestBus()
	b.Write(0xC051, 0x00) // TEXT on
	if !b.Switches.Get(SWTEXT) {
		t.Fatal("expected TEXT to be on")
	}
	b.Write(0xC050, 0x00) // TEXT off
	if b.Switches.Get(SWTEXT) {
		t.Fatal("expected TEXT to be off")
	}
}

func TestKeyboardStrobeClearsOnC010(t *testing.T) {
	b := newTestBus()
	b.KeyPress('A')
	if got := b.Read(0xC000); got != 'A'|0x80 {
		t.Fatalf("got %#02x", got)
	}
	b.Read(0xC010)
	if got := b.Read(0xC000); got&0x80 != 0 {
		t.Fatalf("expected strobe cleared, got %#02x", got)
	}
}

type fakeSpeaker struct{ clicks []uint64 }

func (f *fakeSpeaker) Click(cycle uint64) { f.clicks = append(f.clicks, cycle) }

type fixedCycles struct{ c uint64 }

func (f fixedCycles) TotalCycle() uint64 { return f.c }

func TestSpeakerAccessFiresClick(t *testing.T) {
	b := newTestBus()
	sp := &fakeSpeaker{}
	b.Speaker = sp
	b.Cycles = fixedCycles{c: 1234}
	b.Read(0xC030)
	if len(sp.clicks) != 1 || sp.clicks[0] != 1234 {
		t.Fatalf("unexpected clicks: %v", sp.clicks)
	}
}

func TestLanguageCardRAMReadWrite(t *testing.T) {
	b := newTestBus()
	b.Write(0xC083, 0x00) // bank2, read RAM, write enable
	b.Write(0xD000, 0x55)
	if got := b.Read(0xD000); got != 0x55 {
		t.Fatalf("got %#02x, want 0x55", got)
	}
}

func TestLanguageCardFallsBackToROMWhenReadDisabled(t *testing.T) {
	b := newTestBus()
	rom := make([]byte, 0x3000)
	rom[0] = 0xAB // $D000
	b.MainROM = bank.NewRawFromImage(0xD000, rom)
	b.Write(0xC082, 0x00) // read ROM, write protect
	if got := b.Read(0xD000); got != 0xAB {
		t.Fatalf("got %#02x, want 0xAB (ROM)", got)
	}
}

func TestUnknownSoftSwitchFallsBackToVapor(t *testing.T) {
	b := newTestBus()
	b.Vapor = vaporStub{v: 0x77}
	if got := b.Read(0xC0A5); got != 0x77 {
		t.Fatalf("got %#02x, want vapor value 0x77", got)
	}
}

type vaporStub struct{ v byte }

func (v vaporStub) VaporRead() byte { return v.v }

func TestVBLBitReflectsSwitch(t *testing.T) {
	b := newTestBus()
	if got := b.Read(0xC019); got&0x80 != 0 {
		t.Fatal("expected VBL clear initially")
	}
	b.SetVBL(true)
	if got := b.Read(0xC019); got&0x80 == 0 {
		t.Fatal("expected VBL bit set after SetVBL(true)")
	}
}
