package floppy

import "miigo/curated"

// NIBTrackBytes is the raw per-track size of a NIB image: already-decoded
// nibble bytes with no sync bits between fields.
const NIBTrackBytes = 6656

// NIBSize is the exact byte size of a 35-track NIB image.
const NIBSize = NumTracks * NIBTrackBytes

// ConvertNIB renders a 35*6656-byte raw nibble-stream image into BDSK
// tracks by locating the D5 AA 96 / D5 AA AD markers in each track and
// resynthesising proper sync padding around the fields found, exactly as
// mii_nib.c's mii_floppy_nib_render_track does. It returns, alongside the
// tracks, the number of tracks that were missing at least one sector
// (spec §4.H: "report tracks missing any sector as incomplete but
// continue" — SPEC_FULL.md's supplemented NIB incomplete-track count).
func ConvertNIB(data []byte) (*[NumTracks]Track, int, error) {
	if len(data) != NIBSize {
		return nil, 0, curated.Wrap("floppy", "NIB image is %d bytes, want %d", len(data), NIBSize)
	}

	var tracks [NumTracks]Track
	incomplete := 0
	for trk := 0; trk < NumTracks; trk++ {
		src := data[trk*NIBTrackBytes : (trk+1)*NIBTrackBytes]
		if !renderNIBTrack(src, &tracks[trk]) {
			incomplete++
		}
	}
	return &tracks, incomplete, nil
}

// renderNIBTrack scans src for address/data field pairs and re-emits them
// into dst with freshly generated sync padding, tracking which of the 16
// sectors were found via a bitmap (hmap/dmap in the original). It returns
// false if any sector's header or data field was not located.
func renderNIBTrack(src []byte, dst *Track) bool {
	var window uint32
	srci := 0
	seccount := 0
	state := 0 // 0: looking for address field, 1: looking for data field
	var hmap, dmap uint16
	var sector int

	for srci < len(src) {
		window = window<<8 | uint32(src[srci])
		srci++

		switch state {
		case 0:
			if window != 0xffd5aa96 {
				continue
			}
			n := 40
			if seccount != 0 {
				n = 20
			}
			writeSync(dst, n)

			h := src[srci-4:]
			sector = int(decode44(h[8], h[9]))
			hmap |= 1 << uint(sector&0xF)
			dst.AppendBytes(h[:15])
			srci += 11
			state = 1

		case 1:
			if window != 0xffd5aaad {
				continue
			}
			writeSync(dst, 4)

			dmap |= 1 << uint(sector&0xF)
			h := src[srci-4:]
			dst.AppendBytes(h[:4+342+4])
			srci += 4 + 342
			seccount++
			state = 0
		}
	}

	return hmap == 0xffff && dmap == 0xffff
}
