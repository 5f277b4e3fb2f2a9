package floppy

import "miigo/curated"

// DSKSize is the exact byte size of a DOS-ordered or ProDOS-ordered
// 5.25" disk image: 35 tracks * 16 sectors * 256 bytes.
const DSKSize = 35 * 16 * 256

// SectorsPerTrack is the physical sector count of a 5.25" floppy track.
const SectorsPerTrack = 16

// dos33Skew maps a physical sector position on the track to the logical
// DOS 3.3 sector number whose data belongs there (spec §4.H/§6).
var dos33Skew = [SectorsPerTrack]byte{0x0, 0x7, 0xE, 0x6, 0xD, 0x5, 0xC, 0x4, 0xB, 0x3, 0xA, 0x2, 0x9, 0x1, 0x8, 0xF}

// prodosSkew is the equivalent mapping for ProDOS-ordered (.po) images.
var prodosSkew = [SectorsPerTrack]byte{0x0, 0x8, 0x1, 0x9, 0x2, 0xA, 0x3, 0xB, 0x4, 0xC, 0x5, 0xD, 0x6, 0xE, 0x7, 0xF}

// syncTenBits is the self-sync pattern written between fields: eight 1
// bits followed by two 0 bits (spec §4.H: "10-bit 0xFF << 2").
const syncTenBits = 0xFF << 2

// ConvertDSK renders a 35x16x256-byte DOS- or ProDOS-ordered disk image
// into 35 BDSK tracks. isProDOS selects the sector skew table; volume is
// the DOS 3.3 volume number written into every address field.
func ConvertDSK(data []byte, volume byte, isProDOS bool) (*[NumTracks]Track, error) {
	if len(data) != DSKSize {
		return nil, curated.Wrap("floppy", "DSK image is %d bytes, want %d", len(data), DSKSize)
	}
	skew := dos33Skew
	if isProDOS {
		skew = prodosSkew
	}

	var tracks [NumTracks]Track
	for trk := 0; trk < NumTracks; trk++ {
		t := &tracks[trk]
		trackData := data[trk*SectorsPerTrack*256 : (trk+1)*SectorsPerTrack*256]
		for phys := 0; phys < SectorsPerTrack; phys++ {
			if phys == 0 {
				writeSync(t, 40)
			} else {
				writeSync(t, 20)
			}

			logical := skew[phys]
			sectorData := trackData[int(logical)*256 : int(logical)*256+256]

			writeAddressField(t, volume, byte(trk), byte(phys))
			writeSync(t, 4)
			writeDataField(t, sectorData)

			t.Map.BitPosition[phys] = t.BitCount
			t.Map.ByteOffset[phys] = uint32(trk*SectorsPerTrack*256 + int(logical)*256)
		}
		t.HasMap = true
	}
	return &tracks, nil
}

func writeSync(t *Track, n int) {
	for i := 0; i < n; i++ {
		t.AppendBits(syncTenBits, 10)
	}
}

func writeAddressField(t *Track, volume, track, sector byte) {
	t.AppendBytes([]byte{0xD5, 0xAA, 0x96})
	checksum := volume ^ track ^ sector
	for _, v := range []byte{volume, track, sector, checksum} {
		o, e := encode44(v)
		t.AppendBytes([]byte{o, e})
	}
	t.AppendBytes([]byte{0xDE, 0xAA, 0xEB})
}

func writeDataField(t *Track, data []byte) {
	t.AppendBytes([]byte{0xD5, 0xAA, 0xAD})
	var nibbles [342]byte
	checksum := encode62(data, &nibbles)
	t.AppendBytes(nibbles[:])
	t.AppendBits(uint32(checksum), 8)
	t.AppendBytes([]byte{0xDE, 0xAA, 0xEB})
}

// DecodeSector reads back one physical sector from a track previously
// produced by ConvertDSK, for round-trip verification (spec §8 invariant
// 4). It uses the track's sector map rather than re-scanning bits.
func DecodeSector(t *Track, physicalSector int) ([256]byte, bool) {
	var out [256]byte
	if !t.HasMap || physicalSector < 0 || physicalSector >= SectorsPerTrack {
		return out, false
	}
	pos := t.Map.BitPosition[physicalSector]

	// the data field immediately follows the four 10-bit sync nibbles written after
	// the address field; walk back to its start by re-deriving from the
	// recorded bit position, which DecodeSector treats as "end of this
	// sector's encoded region" per ConvertDSK's bookkeeping.
	dataFieldBits := 3*8 + 342*8 + 8 + 3*8
	start := pos - uint32(dataFieldBits)

	var nibbles [342]byte
	cursor := start + 3*8 // skip D5 AA AD prologue
	for i := range nibbles {
		nibbles[i] = readByteAt(t, cursor)
		cursor += 8
	}
	checksum := readByteAt(t, cursor)

	if !decode62(&nibbles, checksum, out[:]) {
		return out, false
	}
	return out, true
}

func readByteAt(t *Track, pos uint32) byte {
	var b byte
	for i := 0; i < 8; i++ {
		b <<= 1
		if t.ReadBit(pos + uint32(i)) {
			b |= 1
		}
	}
	return b
}
