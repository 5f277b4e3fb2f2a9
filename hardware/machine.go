package hardware

import (
	"os"
	"time"

	"miigo/audio"
	"miigo/blockdevice"
	"miigo/config"
	"miigo/curated"
	"miigo/diskloader"
	"miigo/floppy"
	"miigo/hardware/bank"
	"miigo/hardware/bus"
	"miigo/hardware/cpu"
	"miigo/hardware/vram"
	"miigo/logger"
	"miigo/romset"
	"miigo/timer"
	"miigo/video"
)

// frameInterval is the real-time budget of one 60Hz frame, the pacing
// target step 6 of the orchestration loop sleeps toward.
const frameInterval = time.Second / 60

// samplesPerFrame is sized generously above the nominal
// sampleRate/60 sample count so Drain never starves during Turbo bursts
// or a slow host frame; extra capacity is simply unused this frame.
func samplesPerFrame(sampleRate int) int {
	return (sampleRate/60 + 8) * 2 // interleaved stereo
}

// Slot assignments. DiskIISlot is fixed by the retrieved original
// (_examples/original_source/src/disk_ui.c's g_disk2_slot). BlockDeviceSlot
// has no equivalent pin in the retrieval pack; slot 5 is chosen as it sits
// immediately below the Disk II controller's conventional slot 6 and is
// otherwise unused by anything else this module wires up.
const (
	DiskIISlot      = 6
	BlockDeviceSlot = 5
)

// physPages sets the size of the paged-RAM physical pool a Machine is
// built with, per SPEC_FULL.md's PSRAM Open Question decision: enabled
// models the plentiful cache a real PSRAM device gives the guest 64 KiB
// range, disabled models a constrained on-chip-SRAM-only cache that
// forces much more eviction traffic through the swap file.
const (
	physPagesWithPSRAM    = 256 // every guest page resident, no eviction
	physPagesWithoutPSRAM = 40  // enough for zero page/stack plus headroom
)

// CyclesPerFrame is the CPU cycle budget of one 60Hz video frame at the
// Apple IIe's nominal ~1.02 MHz clock (spec §4.L).
const CyclesPerFrame = 17030

// romName is the registry name each ROM class is looked up under. A real
// firmware/character-generator dump would register itself under these
// names via romset.Register in its own package's init().
const (
	mainROMName  = "iie"
	videoROMName = "iie-video"
)

// syntheticMainROM stands in for a real system ROM dump: an image filled
// with NOPs whose reset vector points at its first byte, so a cold reset
// does not run off into undefined opcodes when no ROM has been registered.
func syntheticMainROM() []byte {
	img := make([]byte, 0x3000) // $D000-$FFFF
	for i := range img {
		img[i] = 0xEA // NOP
	}
	// 6502 vectors are little-endian pairs at $FFFA/C/E; all three point
	// at $D000, the first byte of this image, so a cold reset (and any
	// stray NMI/IRQ/BRK before real firmware is registered) lands on the
	// synthetic NOP sled instead of undefined memory.
	img[len(img)-6], img[len(img)-5] = 0x00, 0xD0 // NMI    $FFFA/B
	img[len(img)-4], img[len(img)-3] = 0x00, 0xD0 // RESET  $FFFC/D
	img[len(img)-2], img[len(img)-1] = 0x00, 0xD0 // IRQ/BRK $FFFE/F
	return img
}

// syntheticCharROM stands in for a real character generator dump: every
// glyph a solid block, distinguishable on screen but not legible text.
func syntheticCharROM() []byte {
	img := make([]byte, 0x1000)
	for i := range img {
		img[i] = 0xFF
	}
	return img
}

// cpuCycles adapts *cpu.CPU's exported TotalCycle field to the
// bus.CycleSource method interface; a type cannot have both a field and a
// method of the same name, so the bus's own view of the CPU's cycle count
// goes through this small wrapper instead of *cpu.CPU directly.
type cpuCycles struct{ cpu *cpu.CPU }

func (c cpuCycles) TotalCycle() uint64 { return c.cpu.TotalCycle }

// Machine is the top-level orchestrator of spec §4.L: it owns every
// subsystem's concrete instance, wires them together through the bus,
// and drives the CPU/timer/floppy/video/audio subsystems forward one
// frame at a time.
type Machine struct {
	Options config.Options

	CPU   *cpu.CPU
	Bus   *bus.Bus
	Wheel *timer.Wheel

	MainPool *vram.Pool
	AuxPool  *vram.Pool
	mainSwap *os.File
	auxSwap  *os.File

	Audio       *audio.Mixer
	Video       *video.Renderer
	Framebuffer [video.Width * video.Height]byte

	Disk      *floppy.Controller
	DiskCard  *floppy.Card
	BlockCard *blockdevice.Card
	Loader    *diskloader.Loader

	audioBuf []int16

	// ModalActive mirrors spec §4.L step 2: while true, RunFrame routes
	// nothing to the CPU/audio/video subsystems and only advances
	// bookkeeping the modal UI itself needs, preserving guest timers
	// across menu navigation.
	ModalActive bool

	Turbo bool // bypasses frame-pacing sleep; set by a headless/benchmark caller
}

// NewMachine builds a fully wired Machine from opts. Its two swap files
// are anonymous temp files; a caller that wants durable PSRAM-backed
// storage across process restarts should open its own files and use
// vram.New directly instead of going through NewMachine.
func NewMachine(opts config.Options) (*Machine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{Options: opts, Wheel: timer.New()}

	physPages := physPagesWithoutPSRAM
	if opts.PSRAMEnabled {
		physPages = physPagesWithPSRAM
	}

	mainSwap, err := os.CreateTemp("", "miigo-main-*.swap")
	if err != nil {
		return nil, curated.Wrap("hardware", "creating main swap file: %v", err)
	}
	m.mainSwap = mainSwap
	m.MainPool, err = vram.New(physPages, mainSwap)
	if err != nil {
		return nil, err
	}

	auxSwap, err := os.CreateTemp("", "miigo-aux-*.swap")
	if err != nil {
		return nil, curated.Wrap("hardware", "creating aux swap file: %v", err)
	}
	m.auxSwap = auxSwap
	m.AuxPool, err = vram.New(physPages, auxSwap)
	if err != nil {
		return nil, err
	}

	m.Bus = bus.New()
	m.Bus.Main = bank.NewPaged(0x0000, vram.GuestPages, m.MainPool, false)
	m.Bus.Aux = bank.NewPaged(0x0000, vram.GuestPages, m.AuxPool, false)
	m.Bus.MainROM = bank.NewRawFromImage(0xD000, mainROMImage())

	m.CPU = cpu.New(m.Bus)
	m.Bus.Cycles = cpuCycles{cpu: m.CPU}

	m.Audio = audio.New(int(opts.SampleRate))
	m.Bus.Speaker = m.Audio

	m.Video = video.NewRenderer(m.Bus, videoROMImage(opts.VideoROMBank))
	m.Video.PaletteIndex = config.NormalizedPalette(opts.PaletteIndex, video.PaletteCount)
	m.Bus.Video = m.Video
	m.Bus.Vapor = m.Video
	vblID := m.Video.RegisterVBLTimer(m.Wheel)

	m.Disk = floppy.NewController(diskLSSROM())
	m.Disk.Drives[0] = floppy.NewDrive()
	m.Disk.Drives[1] = floppy.NewDrive()
	m.DiskCard = floppy.NewCard(DiskIISlot, m.Disk)
	m.Bus.Cards[DiskIISlot] = m.DiskCard

	m.BlockCard = blockdevice.NewCard(BlockDeviceSlot)
	m.BlockCard.Video = m.Video
	m.BlockCard.Install(m.CPU)
	m.Bus.Cards[BlockDeviceSlot] = m.BlockCard

	m.Loader = &diskloader.Loader{
		Boot:       m.Disk,
		VBL:        m.Video,
		Wheel:      m.Wheel,
		VBLTimerID: vblID,
	}

	m.audioBuf = make([]int16, samplesPerFrame(int(opts.SampleRate)))

	m.CPU.Reset(true)
	return m, nil
}

// PressKey latches a guest key code, per spec §4.L step 1 and §6's
// keyboard API. Translating a host key event into a guest code is a host
// concern outside this module's scope; callers hand in the already
// translated code.
func (m *Machine) PressKey(code byte) {
	m.Bus.KeyPress(code)
}

// RunFrame executes one iteration of spec §4.L's orchestration loop:
// CPU/timer/floppy emulation for one frame's cycle budget, an audio
// drain, and a render pass, unless ModalActive is set, in which case
// steps 3-5 are skipped entirely so guest timers do not advance while a
// menu has input focus. Step 6, real-time pacing, is handled by RunFrame's
// caller measuring wall time against frameInterval, or bypassed
// altogether when Turbo is set; RunFrame itself never sleeps.
func (m *Machine) RunFrame() {
	if m.ModalActive {
		return
	}

	var ran uint32
	for ran < CyclesPerFrame {
		before := m.CPU.TotalCycle
		m.CPU.RunCycles(CyclesPerFrame - ran)
		delta := m.CPU.TotalCycle - before
		if delta == 0 {
			break
		}
		m.Wheel.Advance(int64(delta))
		m.DiskCard.Advance(int(delta))
		ran += uint32(delta)
	}

	m.Audio.Drain(m.audioBuf)
	m.Video.Render(m.Framebuffer[:])
}

// Run drives RunFrame in a loop until stop returns true, sleeping between
// frames to pace them at 60Hz unless Turbo is set. stop is polled once per
// frame, after RunFrame returns.
func (m *Machine) Run(stop func() bool) {
	for {
		deadline := time.Now().Add(frameInterval)
		m.RunFrame()
		if stop != nil && stop() {
			return
		}
		if m.Turbo {
			continue
		}
		if d := time.Until(deadline); d > 0 {
			time.Sleep(d)
		}
	}
}

// mainROMImage returns the registered system ROM, or a synthetic
// placeholder if none has been registered under (ClassMain, "iie").
func mainROMImage() []byte {
	if data, ok := romset.Lookup(romset.ClassMain, mainROMName); ok {
		return data
	}
	logger.Logf(logger.Allow, "hardware", "no %q ROM registered, main ROM is a synthetic placeholder", mainROMName)
	return syntheticMainROM()
}

// videoROMImage returns the registered character generator bank
// selected by opts.VideoROMBank, or a synthetic placeholder.
func videoROMImage(bankIdx int) []byte {
	name := videoROMName
	if bankIdx == 1 {
		name = videoROMName + "-alt"
	}
	if data, ok := romset.Lookup(romset.ClassVideo, name); ok {
		return data
	}
	logger.Logf(logger.Allow, "hardware", "no %q ROM registered, character ROM is a synthetic placeholder", name)
	return syntheticCharROM()
}

// diskLSSROM returns the registered Disk II sequencer ROM, or a
// synthetic all-shift placeholder that lets the controller run without
// producing meaningful disk data.
func diskLSSROM() []byte {
	if data, ok := romset.Lookup(romset.ClassCard, "disk2-lss"); ok {
		return data
	}
	logger.Log(logger.Allow, "hardware", "no \"disk2-lss\" ROM registered, LSS runs a synthetic all-shift sequence")
	rom := make([]byte, floppy.ROMSize)
	for i := range rom {
		rom[i] = 0x01 // actionShift on every (state, input) pair
	}
	return rom
}

// Close releases the Machine's swap files. It does not attempt to flush
// dirty pages back through the pools first; a caller that needs durable
// PSRAM contents across a Close should drain the pools itself first.
func (m *Machine) Close() error {
	var firstErr error
	if m.mainSwap != nil {
		if err := m.mainSwap.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		os.Remove(m.mainSwap.Name())
	}
	if m.auxSwap != nil {
		if err := m.auxSwap.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		os.Remove(m.auxSwap.Name())
	}
	return firstErr
}
