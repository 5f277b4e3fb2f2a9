package floppy

import (
	"encoding/binary"

	"miigo/curated"
)

const wozHeaderSize = 12

// NoiseTrack marks a TMAP slot, or Drive.TrackID entry, with no real data:
// an all-random bitstream is substituted (spec §4.H).
const NoiseTrack = 0xFF

// wozChunk is one {id, size} chunk header following the 12-byte file
// header, plus the byte range of its payload within the file.
type wozChunk struct {
	id    [4]byte
	start int
	size  int
}

func scanWOZChunks(data []byte) []wozChunk {
	var chunks []wozChunk
	off := wozHeaderSize
	for off+8 <= len(data) {
		var id [4]byte
		copy(id[:], data[off:off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		start := off + 8
		if start+size > len(data) {
			break
		}
		chunks = append(chunks, wozChunk{id: id, start: start, size: size})
		off = start + size
	}
	return chunks
}

func findChunk(chunks []wozChunk, id string) (wozChunk, bool) {
	for _, c := range chunks {
		if string(c.id[:]) == id {
			return c, true
		}
	}
	return wozChunk{}, false
}

// wozTMAP validates data's WOZ1/WOZ2 header and locates its TMAP chunk,
// returning the chunk's 160 raw bytes and whether the image's TRKS
// directory uses the WOZ2 layout (shared by ConvertWOZ and
// ConvertWOZTrackMap, which both need the same chunk located but read it
// for different purposes).
func wozTMAP(data []byte) (tmap []byte, woz2 bool, err error) {
	if len(data) < wozHeaderSize {
		return nil, false, curated.Wrap("floppy", "WOZ image too short")
	}
	magic := string(data[0:4])
	woz2 = magic == "WOZ2"
	if !woz2 && magic != "WOZ1" {
		return nil, false, curated.Wrap("floppy", "unrecognised WOZ magic %q", magic)
	}

	chunks := scanWOZChunks(data)
	tmapChunk, ok := findChunk(chunks, "TMAP")
	if !ok || tmapChunk.size != 160 {
		return nil, false, curated.Wrap("floppy", "WOZ image missing TMAP chunk")
	}
	return data[tmapChunk.start : tmapChunk.start+160], woz2, nil
}

// ConvertWOZ renders a WOZ1 or WOZ2 image into BDSK tracks. It reads the
// TMAP chunk to find, for each of the 35 whole-track positions (quarter
// track 4*N), the TRKS slot holding that track's bitstream, per spec
// §4.H/§6. The BDSK container this fills has storage for exactly those 35
// whole tracks; ConvertWOZTrackMap separately derives how the other
// quarter-track positions TMAP names map onto this same storage.
func ConvertWOZ(data []byte) (*[NumTracks]Track, error) {
	tmap, woz2, err := wozTMAP(data)
	if err != nil {
		return nil, err
	}

	chunks := scanWOZChunks(data)
	trksChunk, ok := findChunk(chunks, "TRKS")
	if !ok {
		return nil, curated.Wrap("floppy", "WOZ image missing TRKS chunk")
	}

	var tracks [NumTracks]Track
	for trk := 0; trk < NumTracks; trk++ {
		slot := tmap[trk*4]
		if slot == NoiseTrack {
			tracks[trk].Virgin = true
			continue
		}
		if woz2 {
			if err := loadWOZ2Track(data, trksChunk, int(slot), &tracks[trk]); err != nil {
				return nil, err
			}
		} else {
			if err := loadWOZ1Track(data, trksChunk, int(slot), &tracks[trk]); err != nil {
				return nil, err
			}
		}
	}
	return &tracks, nil
}

// ConvertWOZTrackMap derives a quarter-track -> physical-track-index map
// from a WOZ image's TMAP chunk, for Drive.TrackID (spec §3's track_id[]
// invariant, §4.H, §6's "required chunks are TMAP and TRKS"). Unlike
// ConvertWOZ's own read of tmap, which only ever looks at the 35
// whole-track entries (4*N), this walks TMAP's first MaxQTrack
// quarter-track entries (entries past MaxQTrack are not read): a quarter track sharing a whole track's TRKS slot maps to that
// track's index, same as the real drive head reading the same groove from
// an adjacent quarter-track position; any other slot value, including
// TMAP's own NoiseTrack marker, has no storage in the 35-slot BDSK
// container ConvertWOZ fills, so it is treated as NoiseTrack too —
// observationally the same as the real hardware presenting randomized
// data under the head over an unmapped half-track.
func ConvertWOZTrackMap(data []byte) (*[MaxQTrack]byte, error) {
	tmap, _, err := wozTMAP(data)
	if err != nil {
		return nil, err
	}

	slotTrack := make(map[byte]int, NumTracks)
	for trk := 0; trk < NumTracks; trk++ {
		slot := tmap[trk*4]
		if slot == NoiseTrack {
			continue
		}
		if _, exists := slotTrack[slot]; !exists {
			slotTrack[slot] = trk
		}
	}

	var trackID [MaxQTrack]byte
	for qt := 0; qt < MaxQTrack && qt < len(tmap); qt++ {
		slot := tmap[qt]
		if trk, ok := slotTrack[slot]; ok {
			trackID[qt] = byte(trk)
		} else {
			trackID[qt] = NoiseTrack
		}
	}
	return &trackID, nil
}

// loadWOZ2Track reads one 8-byte TRKS directory entry
// {start_block_le, block_count_le, bit_count_le} and copies its bit array,
// which lives at a 512-byte-aligned absolute file offset.
func loadWOZ2Track(data []byte, trks wozChunk, slot int, dst *Track) error {
	entryOff := trks.start + slot*8
	if entryOff+8 > trks.start+trks.size {
		return curated.Wrap("floppy", "WOZ2 TRKS slot %d out of range", slot)
	}
	startBlock := binary.LittleEndian.Uint16(data[entryOff : entryOff+2])
	bitCount := binary.LittleEndian.Uint32(data[entryOff+4 : entryOff+8])

	byteCount := int((bitCount + 7) / 8)
	if byteCount > TrackBytes {
		byteCount = TrackBytes
	}
	absOff := int(startBlock) * 512
	if absOff+byteCount > len(data) {
		return curated.Wrap("floppy", "WOZ2 track bit array runs past end of file")
	}

	dst.BitCount = bitCount
	copy(dst.Data[:byteCount], data[absOff:absOff+byteCount])
	return nil
}

// woz1EntrySize is the fixed size of one WOZ1 TRKS entry.
const woz1EntrySize = TrackBytes

// woz1TrailerByteCountOffset and woz1TrailerBitCountOffset locate the
// trailing {byte_count_le, bit_count_le} pair inside each 6656-byte WOZ1
// TRKS entry (spec §4.H).
const (
	woz1TrailerByteCountOffset = 6646
	woz1TrailerBitCountOffset  = 6648
)

func loadWOZ1Track(data []byte, trks wozChunk, slot int, dst *Track) error {
	entryOff := trks.start + slot*woz1EntrySize
	if entryOff+woz1EntrySize > trks.start+trks.size {
		return curated.Wrap("floppy", "WOZ1 TRKS slot %d out of range", slot)
	}
	entry := data[entryOff : entryOff+woz1EntrySize]

	byteCount := binary.LittleEndian.Uint16(entry[woz1TrailerByteCountOffset : woz1TrailerByteCountOffset+2])
	bitCount := binary.LittleEndian.Uint16(entry[woz1TrailerBitCountOffset : woz1TrailerBitCountOffset+2])

	n := int(byteCount)
	if n > TrackBytes {
		n = TrackBytes
	}
	dst.BitCount = uint32(bitCount)
	copy(dst.Data[:n], entry[:n])
	return nil
}
