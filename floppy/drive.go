package floppy

// BitTiming is the default number of LSS clock ticks per bit cell,
// approximating one cell every 4us at the sequencer clock (spec §4.H).
const BitTiming = 32

// Drive models one Disk II mechanism: the quarter-track position, the
// bitstream of the track currently under the head, and the stepper/motor
// state that a controller drives through $C0x0-$C0xF soft switches.
type Drive struct {
	TrackID [MaxQTrack]byte // maps qtrack -> physical track index, or NoiseTrack
	Tracks  [NumTracks]Track

	CurrTrackData [TrackBytes]byte
	currentTrack  int // index into Tracks currently resident in CurrTrackData, or -1

	Motor          bool
	Stepper        byte
	lastPhase      int
	QTrack         int
	BitPosition    uint32
	WriteProtected bool

	SeedDirty bool
	SeedSaved bool

	lfsr           uint32
	RandomPosition uint32
}

// NewDrive returns a drive with all quarter tracks pointing at physical
// tracks 1:1 (qtrack/4) and no track currently loaded.
func NewDrive() *Drive {
	d := &Drive{
		currentTrack: -1,
		lastPhase:    -1,
		lfsr:         0xACE1,
	}
	for qt := range d.TrackID {
		d.TrackID[qt] = byte(qt / 4)
	}
	return d
}

// Reset clears the drive back to its just-constructed state: all
// quarter tracks are remapped 1:1, every track's bitstream and dirty/map
// state is discarded, and motor/stepper/position state is zeroed. Ported
// from mii_floppy_init, which the disk loader calls before mounting a new
// image so stale track data from a previous disk cannot leak through.
func (d *Drive) Reset() {
	seed := d.lfsr
	*d = Drive{
		currentTrack: -1,
		lastPhase:    -1,
		lfsr:         seed,
	}
	for qt := range d.TrackID {
		d.TrackID[qt] = byte(qt / 4)
	}
}

// SetPhase energises stepper phase (0..3), moving QTrack per the stepper
// table, and flushes + reloads the current track if the move crosses a
// track boundary.
func (d *Drive) SetPhase(phase int) {
	newQT, newPhase := Step(d.QTrack, d.lastPhase, phase)
	d.lastPhase = newPhase
	if newQT == d.QTrack {
		return
	}
	d.QTrack = newQT
	d.loadCurrentTrack()
}

// LoadCurrentTrack forces the track mapped by the drive's current
// QTrack to become resident in CurrTrackData, flushing the previous
// resident track first if dirty. Used by callers that bulk-load a
// drive's Tracks array directly (e.g. after mounting a new image) and
// need the track under the head refreshed without stepping the
// mechanism, per disk_mount_to_emulator's "load selected track as last
// operation" comment.
func (d *Drive) LoadCurrentTrack() {
	d.loadCurrentTrack()
}

// loadCurrentTrack flushes the previously-current track if dirty, then
// makes the track mapped by the new QTrack the resident one, filling
// CurrTrackData from Tracks or from the noise generator.
func (d *Drive) loadCurrentTrack() {
	if d.currentTrack >= 0 && d.Tracks[d.currentTrack].Dirty {
		copy(d.Tracks[d.currentTrack].Data[:], d.CurrTrackData[:])
		d.SeedDirty = true
	}

	physical := d.TrackID[d.QTrack]
	if physical == NoiseTrack {
		d.currentTrack = -1
		d.fillNoise()
		return
	}

	d.currentTrack = int(physical)
	d.CurrTrackData = d.Tracks[d.currentTrack].Data
	d.BitPosition = 0
}

// fillNoise fills CurrTrackData with a pseudo-random bit pattern from a
// per-drive linear feedback generator, for quarter-track positions that
// map to no physical track (spec §4.H: "a linear feedback generator
// seeded per-drive").
func (d *Drive) fillNoise() {
	for i := range d.CurrTrackData {
		d.CurrTrackData[i] = byte(d.nextLFSR())
	}
	d.RandomPosition = 0
}

func (d *Drive) nextLFSR() uint32 {
	bit := ((d.lfsr >> 0) ^ (d.lfsr >> 2) ^ (d.lfsr >> 3) ^ (d.lfsr >> 5)) & 1
	d.lfsr = (d.lfsr >> 1) | (bit << 15)
	return d.lfsr & 0xFF
}

// ReadBit returns the bit at the drive's current BitPosition within the
// resident track (or the noise stream) and advances BitPosition by one
// cell, wrapping at the track's bit count. One call to either ReadBit or
// WriteBit advances the head by exactly one bit cell; a tick that writes
// does not also separately read.
func (d *Drive) ReadBit() bool {
	if d.currentTrack < 0 {
		pos := d.RandomPosition
		d.RandomPosition = (d.RandomPosition + 1) % TrackBits
		byteIdx := pos >> 3
		shift := 7 - (pos & 7)
		return (d.CurrTrackData[byteIdx]>>shift)&1 != 0
	}

	bitCount := d.Tracks[d.currentTrack].BitCount
	if bitCount == 0 {
		return false
	}
	pos := d.BitPosition % bitCount
	d.BitPosition = (d.BitPosition + 1) % bitCount
	byteIdx := pos >> 3
	shift := 7 - (pos & 7)
	return (d.CurrTrackData[byteIdx]>>shift)&1 != 0
}

// PeekBit returns the bit at the drive's current BitPosition without
// advancing the head, so a tick that both senses and may write touches
// only one bit cell.
func (d *Drive) PeekBit() bool {
	if d.currentTrack < 0 {
		pos := d.RandomPosition
		byteIdx := pos >> 3
		shift := 7 - (pos & 7)
		return (d.CurrTrackData[byteIdx]>>shift)&1 != 0
	}
	bitCount := d.Tracks[d.currentTrack].BitCount
	if bitCount == 0 {
		return false
	}
	pos := d.BitPosition % bitCount
	byteIdx := pos >> 3
	shift := 7 - (pos & 7)
	return (d.CurrTrackData[byteIdx]>>shift)&1 != 0
}

// WriteBit writes a bit at the drive's current BitPosition into the
// resident track, marks it dirty, and advances the head by one cell,
// unless the drive is write-protected.
func (d *Drive) WriteBit(v bool) {
	if d.WriteProtected || d.currentTrack < 0 {
		return
	}
	bitCount := d.Tracks[d.currentTrack].BitCount
	if bitCount == 0 {
		return
	}
	pos := d.BitPosition % bitCount
	d.BitPosition = (d.BitPosition + 1) % bitCount
	byteIdx := pos >> 3
	shift := 7 - (pos & 7)
	if v {
		d.CurrTrackData[byteIdx] |= 1 << shift
	} else {
		d.CurrTrackData[byteIdx] &^= 1 << shift
	}
	d.Tracks[d.currentTrack].Dirty = true
}

// FlushCurrentTrack writes back the resident track's bitstream into
// Tracks if it is dirty, clearing Dirty (spec §4.H "Track write-back").
func (d *Drive) FlushCurrentTrack() {
	if d.currentTrack < 0 || !d.Tracks[d.currentTrack].Dirty {
		return
	}
	d.Tracks[d.currentTrack].Data = d.CurrTrackData
	d.Tracks[d.currentTrack].Dirty = false
	d.SeedSaved = true
}

// CurrentTrack returns the physical track index currently resident in
// CurrTrackData, or -1 if the head is over a noise (unformatted) region.
func (d *Drive) CurrentTrack() int {
	return d.currentTrack
}
