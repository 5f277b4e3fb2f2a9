package video

import (
	"miigo/hardware/bus"
	"miigo/timer"
)

// Width and Height are the framebuffer dimensions spec §4.F names.
const (
	Width  = 320
	Height = 240
)

const mixedLine = 160 // first graphics line covered by text in mixed mode

// Renderer owns the framebuffer state of spec §4.F: it walks guest video
// RAM through the bus's main/auxiliary banks, tracks which of the 192
// Apple II scanlines are dirty, and rasterizes into a 320x240 indexed
// framebuffer on demand.
type Renderer struct {
	Bus     *bus.Bus
	CharROM []byte // 2KiB or 4KiB character generator dump

	PaletteIndex int
	Monochrome   bool

	FrameCount uint64

	dirty   [4]uint64 // one bit per Apple II scanline (0-191 used of 256)
	visible bool
	lineAddr uint16

	hook *dirtyHook
}

// NewRenderer wires r to track writes into the text/lores and hires/dhires
// pages of both banks in its dirty-line set (spec §4.F). Render does not
// consult that set; it redraws every line.
func NewRenderer(b *bus.Bus, charROM []byte) *Renderer {
	r := &Renderer{Bus: b, CharROM: charROM, visible: true}
	r.hook = &dirtyHook{r: r}
	if b.Main != nil {
		b.Main.InstallHook(r.hook, 0x04, 0x0B) // $0400-$0BFF, both text pages
		b.Main.InstallHook(r.hook, 0x20, 0x5F) // $2000-$5FFF, both gfx pages
	}
	if b.Aux != nil {
		b.Aux.InstallHook(r.hook, 0x04, 0x0B)
		b.Aux.InstallHook(r.hook, 0x20, 0x5F)
	}
	r.MarkAllDirty()
	return r
}

// RegisterVBLTimer arms the VBL phase timer on w (spec §4.E, §4.F): it
// alternates the visible (12480 cycle) and blanking (4550 cycle) phases,
// reflecting the blanking phase into SWVBL and advancing FrameCount on
// every transition into blanking.
func (r *Renderer) RegisterVBLTimer(w *timer.Wheel) int {
	return w.Register(12480, "vbl", r.vblFire)
}

func (r *Renderer) vblFire() int64 {
	if r.visible {
		r.visible = false
		r.FrameCount++
		r.Bus.SetVBL(true)
		return 4550
	}
	r.visible = true
	r.Bus.SetVBL(false)
	return 12480
}

// ResetVBLTimer re-arms the VBL timer into its visible phase with a full
// 12480-cycle budget. A long synchronous SD read (disk mount) can let the
// wheel accumulate a large negative remaining count on the VBL entry
// while the CPU is stalled; without this the next Advance would fire the
// timer a burst of times trying to catch up. Ported from
// mii_video_reset_vbl_timer.
func (r *Renderer) ResetVBLTimer(w *timer.Wheel, id int) {
	r.visible = true
	r.Bus.SetVBL(false)
	w.Set(id, 12480)
}

// VaporRead implements bus.VaporSource (spec §7 BusError, §9 Open
// Questions). The exact scanline/column the real beam would be over at
// any given cycle is not pinned by the spec; this returns the main-RAM
// byte 25 bytes before the last line address touched by a render pass,
// which is deterministic and changes only when a render pass runs.
func (r *Renderer) VaporRead() byte {
	if r.Bus == nil || r.Bus.Main == nil {
		return 0
	}
	addr := r.lineAddr - 25
	return r.Bus.Main.Peek(addr)
}

func (r *Renderer) MarkDirtyLine(line int) {
	if line < 0 || line >= Height {
		return
	}
	r.dirty[line/64] |= 1 << uint(line&63)
}

func (r *Renderer) MarkAllDirty() {
	for i := range r.dirty {
		r.dirty[i] = ^uint64(0)
	}
}

func (r *Renderer) isDirty(line int) bool {
	return r.dirty[line/64]&(1<<uint(line&63)) != 0
}

func (r *Renderer) clearDirty() {
	for i := range r.dirty {
		r.dirty[i] = 0
	}
}

// OOBWrite implements bus.VideoNotifier for card-DMA writes that bypass
// the bank hook path (spec §4.D, §4.I).
func (r *Renderer) OOBWrite(addr uint16, size int) {
	for i := 0; i < size; i++ {
		r.checkWrite(addr + uint16(i))
	}
}

// dirtyHook marks the scanline(s) touched by a write into text/lores or
// hires/dhires memory, then lets the underlying bank storage handle the
// write normally (ported from _mii_line_check_text_lores and
// _mii_line_check_hires_dires in mii_video.c).
type dirtyHook struct{ r *Renderer }

func (h *dirtyHook) Access(addr uint16, value *byte, write bool) bool {
	if write {
		h.r.checkWrite(addr)
	}
	return false
}

func (h *dirtyHook) Close() {}

func (r *Renderer) checkWrite(addr uint16) {
	sw := r.Bus.Switches
	store80 := sw.Get(bus.SW80STORE)
	page2 := !store80 && sw.Get(bus.SWPAGE2)

	base := uint16(0x400)
	if page2 {
		base = 0x800
	}
	if addr >= base && addr < base+0x400 {
		a := addr - base
		if line := addrToTextLine(a); line >= 0 {
			for i := line; i < line+8 && i < Height; i++ {
				r.MarkDirtyLine(i)
			}
		}
		return
	}

	mixed := sw.Get(bus.SWMIXED)
	gbase := uint16(0x2000)
	if page2 {
		gbase = 0x4000
	}
	if addr >= gbase && addr < gbase+0x2000 {
		a := addr - gbase
		if a&0x78 == 0x78 {
			return
		}
		g := int(a>>7) & 0x7
		g2 := int(a>>10) & 0x7
		gline := int(a&0x7f) / 40
		line := gline*64 + g*8 + g2
		if !mixed || line < mixedLine {
			r.MarkDirtyLine(line)
		}
	}
}

func addrToTextLine(a uint16) int {
	if a&0x7f > 0x77 {
		return -1
	}
	group := int(a>>7) & 0x7
	gline := int(a&0x7f) / 40
	return (group + gline*8) * 8
}

// Render rasterizes every line into fb, a caller-owned Width*Height
// indexed buffer, whether or not it is dirty, and clears the dirty set. fb holds a palette index per
// pixel (spec §4.F); resolve it against Palettes[r.PaletteIndex] for
// display.
func (r *Renderer) Render(fb []byte) {
	if len(fb) < Width*Height {
		return
	}
	sw := r.Bus.Switches
	switch {
	case sw.Get(bus.SWTEXT):
		r.renderText40(fb, 0, 24)
	case sw.Get(bus.SWHIRES) && sw.Get(bus.SWDHIRES):
		r.renderDHires(fb)
		if sw.Get(bus.SWMIXED) {
			r.renderText40(fb, 20, 24)
		}
	case sw.Get(bus.SWHIRES):
		r.renderHires(fb)
		if sw.Get(bus.SWMIXED) {
			r.renderText40(fb, 20, 24)
		}
	default:
		r.renderLores(fb)
		if sw.Get(bus.SWMIXED) {
			r.renderText40(fb, 20, 24)
		}
	}
	r.clearDirty()
}

func textBase(sw bus.SoftSwitches) uint16 {
	store80 := sw.Get(bus.SW80STORE)
	page2 := !store80 && sw.Get(bus.SWPAGE2)
	if page2 {
		return 0x800
	}
	return 0x400
}

func (r *Renderer) charGlyph(c byte) []byte {
	rom := r.CharROM
	if len(rom) > 4*1024 {
		rom = rom[4*1024:]
	}
	off := int(c) << 3
	if off+8 > len(rom) {
		return make([]byte, 8)
	}
	return rom[off : off+8]
}

func (r *Renderer) renderText40(fb []byte, rowFirst, yOffset int) {
	if len(r.CharROM) == 0 {
		return
	}
	sw := r.Bus.Switches
	base := textBase(sw)
	col80 := sw.Get(bus.SW80COL)
	altset := sw.Get(bus.SWALTCHARSET)
	flash := byte(0x40)
	if r.FrameCount&0x10 != 0 {
		flash = 0x100 - 0x40 // wraps mod 256 below
	}

	for row := rowFirst; row < 24; row++ {
		line := yOffset + row*8
		lineAddr := base + uint16(row&7)*0x80 + uint16(row/8)*0x28
		r.lineAddr = lineAddr
		var mainRow [40]byte
		r.Bus.Main.Read(lineAddr, mainRow[:])
		if !col80 {
			for x := 0; x < 40; x++ {
				c := mainRow[x]
				if !altset && c >= 0x40 && c <= 0x7F {
					c = byte(int(c) + int(flash))
				}
				glyph := r.charGlyph(c)
				for cy := 0; cy < 8; cy++ {
					bits := glyph[cy]
					y := line + cy
					if y >= Height {
						continue
					}
					for px := 0; px < 7; px++ {
						idx := ciWhite
						if bits&(1<<uint(px)) != 0 {
							idx = ciBlack
						}
						fb[y*Width+x*8+px] = byte(idx)
					}
					fb[y*Width+x*8+7] = ciBlack
				}
			}
			continue
		}
		var auxRow [40]byte
		r.Bus.Aux.Read(lineAddr, auxRow[:])
		for x := 0; x < 80; x++ {
			var c byte
			if x&1 != 0 {
				c = mainRow[x>>1]
			} else {
				c = auxRow[x>>1]
			}
			if !altset && c >= 0x40 && c <= 0x7F {
				c = byte(int(c) + int(flash))
			}
			glyph := r.charGlyph(c)
			for cy := 0; cy < 8; cy++ {
				bits := glyph[cy]
				y := line + cy
				if y >= Height {
					continue
				}
				fxBase := x * 4
				for px := 0; px < 4 && fxBase+px < Width; px++ {
					bit0 := uint(px * 2)
					pixel := bits&(1<<bit0) != 0 || bits&(1<<(bit0+1)) != 0
					idx := ciWhite
					if pixel {
						idx = ciBlack
					}
					fb[y*Width+fxBase+px] = byte(idx)
				}
			}
		}
	}
}

func (r *Renderer) renderLores(fb []byte) {
	sw := r.Bus.Switches
	page2 := sw.Get(bus.SWPAGE2)
	base := uint16(0x400)
	if page2 {
		base = 0x800
	}
	for lrow := 0; lrow < 48; lrow++ {
		memRow := lrow / 2
		bottom := lrow&1 != 0
		lineAddr := base + uint16(memRow&7)*0x80 + uint16(memRow/8)*0x28
		r.lineAddr = lineAddr
		var mainRow [40]byte
		r.Bus.Main.Read(lineAddr, mainRow[:])
		yStart := lrow * 5
		for col := 0; col < 40; col++ {
			b := mainRow[col]
			nibble := b & 0x0F
			if bottom {
				nibble = (b >> 4) & 0x0F
			}
			ci := baseCLUT.lores[col&1][nibble]
			xStart := col * 8
			for dy := 0; dy < 5 && yStart+dy < Height; dy++ {
				row := fb[(yStart+dy)*Width+xStart : (yStart+dy)*Width+xStart+8]
				for i := range row {
					row[i] = byte(ci)
				}
			}
		}
	}
}

func (r *Renderer) renderHires(fb []byte) {
	sw := r.Bus.Switches
	store80 := sw.Get(bus.SW80STORE)
	page2 := !store80 && sw.Get(bus.SWPAGE2)
	base := uint16(0x2000)
	if page2 {
		base = 0x4000
	}
	const xOff = (Width - 280) / 2
	for line := 0; line < 192; line++ {
		lineAddr := base + (uint16(line&0x07) << 10) + (uint16((line>>3)&0x07) << 7) + uint16(line>>6)*40
		r.lineAddr = lineAddr
		y := 24 + line
		if y >= Height {
			continue
		}
		var buf [40]byte
		r.Bus.Main.Read(lineAddr, buf[:])

		row := fb[y*Width : y*Width+Width]
		for i := range row {
			row[i] = ciBlack
		}

		var b0 byte
		b1 := buf[0]
		for col := 0; col < 40; col++ {
			var b2 byte
			if col != 39 {
				b2 = buf[col+1]
			}
			run := uint16(b0&0x60)>>5 | uint16(b1&0x7f)<<2 | uint16(b2&0x03)<<9
			odd := (col & 1) << 1
			offset := int(b1&0x80) >> 5

			for i := 0; i < 7; i++ {
				left := (run >> uint(1+i)) & 1
				pixel := (run >> uint(2+i)) & 1
				right := (run >> uint(3+i)) & 1
				idx := 0
				if !r.Monochrome {
					if pixel != 0 {
						if left != 0 || right != 0 {
							idx = 9
						} else {
							idx = offset + odd + (i & 1) + 1
						}
					} else if left != 0 && right != 0 {
						idx = offset + odd + 1 - (i&1) + 1
					}
					x := col*7 + i
					if xOff+x < Width {
						row[xOff+x] = byte(baseCLUT.hires[idx])
					}
				} else {
					x := col*7 + i
					c := ciBlack
					if pixel != 0 {
						c = ciWhite
					}
					if xOff+x < Width {
						row[xOff+x] = byte(c)
					}
				}
			}
			b0, b1 = b1, b2
		}
	}
}

func (r *Renderer) renderDHires(fb []byte) {
	sw := r.Bus.Switches
	store80 := sw.Get(bus.SW80STORE)
	page2 := !store80 && sw.Get(bus.SWPAGE2)
	base := uint16(0x2000)
	if page2 {
		base = 0x4000
	}
	color := sw.AN3Mode() != 0 && !r.Monochrome

	for line := 0; line < 192; line++ {
		lineAddr := base + (uint16(line&0x07) << 10) + (uint16((line>>3)&0x07) << 7) + uint16(line>>6)*40
		r.lineAddr = lineAddr
		y := 24 + line
		if y >= Height {
			continue
		}
		var mainRow, auxRow [40]byte
		r.Bus.Main.Read(lineAddr, mainRow[:])
		r.Bus.Aux.Read(lineAddr, auxRow[:])
		row := fb[y*Width : y*Width+Width]

		if !color {
			lastCol := -1
			var ext uint32
			for x := 0; x < Width; x++ {
				src := x * 7 / 4
				col := src / 14
				if col != lastCol {
					ext = uint32(auxRow[col]&0x7f) | uint32(mainRow[col]&0x7f)<<7
					lastCol = col
				}
				bi := src % 14
				if (ext>>uint(bi))&1 != 0 {
					row[x] = ciWhite
				} else {
					row[x] = ciBlack
				}
			}
			continue
		}

		var bits [71]byte
		for x := 0; x < 80; x++ {
			var b byte
			if x&1 != 0 {
				b = mainRow[x/2]
			} else {
				b = auxRow[x/2]
			}
			for i := 0; i < 7; i++ {
				outIndex := 2 + x*7 + i
				outByte := outIndex / 8
				outBit := 7 - outIndex%8
				bit := (b >> uint(i)) & 1
				bits[outByte] |= bit << uint(outBit)
			}
		}
		get := func(bitIndex int) byte {
			byteIdx := bitIndex / 8
			if byteIdx >= len(bits) {
				return 0
			}
			return (bits[byteIdx] >> uint(7-bitIndex%8)) & 1
		}
		for x := 0; x < Width; x++ {
			i := x * 7 / 4
			d := 2 + i
			pixel := get(i+3)<<uint(3-(d+3)%4) +
				get(i+2)<<uint(3-(d+2)%4) +
				get(i+1)<<uint(3-(d+1)%4) +
				get(i)<<uint(3-d%4)
			row[x] = byte(baseCLUT.dhires[pixel])
		}
	}
}
