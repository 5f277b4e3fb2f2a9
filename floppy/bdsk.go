package floppy

import (
	"encoding/binary"
	"io"

	"miigo/curated"
)

// NumTracks is the number of physical tracks a BDSK container holds.
const NumTracks = 35

// bdskMagic is the 4-byte file signature.
var bdskMagic = [4]byte{'B', 'D', 'S', 'K'}

const bdskVersion = 1

// trackRecordSize is 4 bytes of little-endian bit_count plus TrackBytes
// of bitstream data.
const trackRecordSize = 4 + TrackBytes

// bdskHeaderSize is the fixed 8-byte header (magic, version, track count).
const bdskHeaderSize = 8

// BDSKOffset returns the byte offset of track t's descriptor within a
// BDSK file, matching the layout in spec §6 and the in-place flush
// addressing used by Drive.FlushCurrentTrack.
func BDSKOffset(track int) int64 {
	return bdskHeaderSize + int64(track)*trackRecordSize
}

// WriteBDSK serialises 35 tracks to w in the BDSK container format.
func WriteBDSK(w io.Writer, tracks *[NumTracks]Track) error {
	var header [bdskHeaderSize]byte
	copy(header[0:4], bdskMagic[:])
	binary.LittleEndian.PutUint16(header[4:6], bdskVersion)
	binary.LittleEndian.PutUint16(header[6:8], NumTracks)
	if _, err := w.Write(header[:]); err != nil {
		return curated.Wrap("floppy", "writing BDSK header: %v", err)
	}

	for i := range tracks {
		if err := writeTrackRecord(w, &tracks[i]); err != nil {
			return curated.Wrap("floppy", "writing BDSK track %d: %v", i, err)
		}
	}
	return nil
}

func writeTrackRecord(w io.Writer, t *Track) error {
	var rec [trackRecordSize]byte
	binary.LittleEndian.PutUint32(rec[0:4], t.BitCount)
	copy(rec[4:], t.Data[:])
	_, err := w.Write(rec[:])
	return err
}

// ReadBDSK deserialises a BDSK container from r into 35 tracks.
func ReadBDSK(r io.Reader) (*[NumTracks]Track, error) {
	var header [bdskHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, curated.Wrap("floppy", "reading BDSK header: %v", err)
	}
	if string(header[0:4]) != string(bdskMagic[:]) {
		return nil, curated.Wrap("floppy", "not a BDSK file")
	}
	tracks := binary.LittleEndian.Uint16(header[6:8])
	if tracks != NumTracks {
		return nil, curated.Wrap("floppy", "unexpected BDSK track count %d", tracks)
	}

	var out [NumTracks]Track
	for i := 0; i < NumTracks; i++ {
		var rec [trackRecordSize]byte
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, curated.Wrap("floppy", "reading BDSK track %d: %v", i, err)
		}
		out[i].BitCount = binary.LittleEndian.Uint32(rec[0:4])
		copy(out[i].Data[:], rec[4:])
	}
	return &out, nil
}

// ReadBDSKTrack reads only track index t's record from r, which must
// support seeking to BDSKOffset(t). Used by Drive to load the track
// currently under the head without reading the whole container.
func ReadBDSKTrack(r io.ReaderAt, track int) (*Track, error) {
	var rec [trackRecordSize]byte
	if _, err := r.ReadAt(rec[:], BDSKOffset(track)); err != nil {
		return nil, curated.Wrap("floppy", "reading BDSK track %d: %v", track, err)
	}
	t := &Track{}
	t.BitCount = binary.LittleEndian.Uint32(rec[0:4])
	copy(t.Data[:], rec[4:])
	return t, nil
}

// WriteBDSKTrack writes track t's record in place to w, which must
// support seeking to BDSKOffset(t). Used for the in-place dirty-track
// flush described in spec §4.H.
func WriteBDSKTrack(w io.WriterAt, track int, t *Track) error {
	var rec [trackRecordSize]byte
	binary.LittleEndian.PutUint32(rec[0:4], t.BitCount)
	copy(rec[4:], t.Data[:])
	_, err := w.WriteAt(rec[:], BDSKOffset(track))
	if err != nil {
		return curated.Wrap("floppy", "flushing BDSK track %d: %v", track, err)
	}
	return nil
}
