package vram

import (
	"miigo/emuerr"
	"miigo/logger"
)

// PageSize is the size in bytes of both a guest page and a physical page.
const PageSize = 256

// GuestPages is the number of 256-byte pages in the full 64 KiB guest
// address space this pool can map.
const GuestPages = 256

// SwapFile is the backing store a Pool flushes evicted pages to and
// refills faulted-in pages from. *os.File satisfies this directly.
type SwapFile interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

type pageDesc struct {
	pinned bool
	inRAM  bool
	lba    uint8
}

// Pool maps a 256-page guest address range onto a smaller cache of
// physical pages, evicting to and refilling from a SwapFile (spec §4.A).
type Pool struct {
	phys      [][]byte
	physDirty []bool
	vdesc     [GuestPages]pageDesc
	oldest    int
	swap      SwapFile
	evictions int
}

// New creates a pool of physPages physical pages backed by swap. Pages 0
// and 1 (zero page and CPU stack) are permanently pinned and start
// resident; physPages must cover at least those two pages.
func New(physPages int, swap SwapFile) (*Pool, error) {
	if physPages < 2 {
		return nil, emuerr.New(emuerr.MemoryExhausted, 2, physPages)
	}
	if physPages > GuestPages {
		physPages = GuestPages
	}

	p := &Pool{
		phys:      make([][]byte, physPages),
		physDirty: make([]bool, physPages),
		swap:      swap,
		oldest:    2,
	}
	for i := range p.phys {
		p.phys[i] = make([]byte, PageSize)
	}
	for i := 0; i < physPages; i++ {
		p.vdesc[i] = pageDesc{inRAM: true, lba: uint8(i)}
	}
	p.vdesc[0].pinned = true
	p.vdesc[1].pinned = true

	zero := make([]byte, PageSize)
	for i := 0; i < GuestPages; i++ {
		if _, err := swap.WriteAt(zero, int64(i)*PageSize); err != nil {
			logger.Logf(logger.Allow, "vram", "swap pre-extend failed for guest page %d: %v", i, err)
		}
	}
	return p, nil
}

// Evictions returns the number of victim pages flushed so far, for tests
// exercising spec §8 scenario 5 (dirty-flush count equals eviction count).
func (p *Pool) Evictions() int {
	return p.evictions
}

// pageFor returns the physical page index currently caching guest page vp,
// faulting it in (and evicting a victim) if necessary.
func (p *Pool) pageFor(vp int) int {
	if p.vdesc[vp].inRAM {
		return int(p.vdesc[vp].lba)
	}
	return p.fault(vp)
}

func (p *Pool) fault(vp int) int {
	victim := -1
	for i := 0; i < GuestPages; i++ {
		idx := (p.oldest + i) % GuestPages
		d := p.vdesc[idx]
		if d.inRAM && !d.pinned {
			victim = idx
			p.oldest = (idx + 1) % GuestPages
			break
		}
	}
	if victim < 0 {
		// No unpinned resident page exists; degrade by evicting page 0
		// despite its pin (flushing it first if dirty) and reusing its
		// physical slot. This only happens if the
		// pool was misconfigured (physPages too small to hold anything
		// but the pinned pages), which spec §7 treats as init-time fatal,
		// not a runtime condition this cache needs to recover from well.
		logger.Log(logger.Allow, "vram", "no evictable page found, memory pool too small")
		victim = 0
	}

	freed := p.vdesc[victim].lba
	if p.physDirty[freed] {
		if _, err := p.swap.WriteAt(p.phys[freed], int64(victim)*PageSize); err != nil {
			logger.Logf(logger.Allow, "vram", "flush of guest page %d failed: %v", victim, err)
		}
		p.physDirty[freed] = false
	}
	p.vdesc[victim].inRAM = false
	p.evictions++

	if _, err := p.swap.ReadAt(p.phys[freed], int64(vp)*PageSize); err != nil {
		logger.Logf(logger.Allow, "vram", "refill of guest page %d failed: %v", vp, err)
	}
	p.vdesc[vp] = pageDesc{inRAM: true, lba: freed}
	p.physDirty[freed] = false
	return int(freed)
}

// ReadByte reads a single byte from the guest address space. Reads never
// fail: a cold swap read leaves the previous contents of the freed
// physical page in place.
func (p *Pool) ReadByte(addr uint16) byte {
	vp := int(addr >> 8)
	phys := p.pageFor(vp)
	return p.phys[phys][addr&0xFF]
}

// WriteByte writes a single byte into the guest address space, marking
// the backing physical page dirty.
func (p *Pool) WriteByte(addr uint16, v byte) {
	vp := int(addr >> 8)
	phys := p.pageFor(vp)
	p.phys[phys][addr&0xFF] = v
	p.physDirty[phys] = true
}

// PinRange marks every guest page touching [addr, addr+length) as pinned,
// forcing each into residency first, and unpins every other page except
// the permanently-pinned pages 0 and 1 (spec §4.A pinning policy).
func (p *Pool) PinRange(addr uint16, length int) {
	for i := 2; i < GuestPages; i++ {
		p.vdesc[i].pinned = false
	}

	start := int(addr >> 8)
	end := (int(addr) + length + PageSize - 1) / PageSize
	if end > GuestPages {
		end = GuestPages
	}
	for vp := start; vp < end; vp++ {
		p.pageFor(vp)
		p.vdesc[vp].pinned = true
	}
}
