package floppy

import (
	"encoding/binary"
	"testing"
)

func buildWOZ2Image(trackBits map[int][]byte) []byte {
	header := make([]byte, wozHeaderSize)
	copy(header, []byte("WOZ2"))

	tmap := make([]byte, 160)
	for i := range tmap {
		tmap[i] = NoiseTrack
	}
	for trk := range trackBits {
		tmap[trk*4] = byte(trk)
	}

	// Build the TRKS directory and bit-array payload together, assigning
	// 512-byte blocks to tracks in index order (blocks 0-2 are reserved
	// for the header/TMAP/TRKS chunks in a real file; arbitrary here).
	trksDir := make([]byte, 160*8)
	var blocks []byte
	nextBlock := 3
	for trk := 0; trk < 40; trk++ {
		bits, ok := trackBits[trk]
		if !ok {
			continue
		}
		entryOff := trk * 8
		binary.LittleEndian.PutUint16(trksDir[entryOff:entryOff+2], uint16(nextBlock))
		blockCount := (len(bits) + 511) / 512
		binary.LittleEndian.PutUint16(trksDir[entryOff+2:entryOff+4], uint16(blockCount))
		binary.LittleEndian.PutUint32(trksDir[entryOff+4:entryOff+8], uint32(len(bits)*8))

		padded := make([]byte, blockCount*512)
		copy(padded, bits)
		blocks = append(blocks, padded...)
		nextBlock += blockCount
	}

	tmapChunk := chunkBytes("TMAP", tmap)
	trksChunk := chunkBytes("TRKS", trksDir)

	preBlocks := make([]byte, 0, len(header)+len(tmapChunk)+len(trksChunk))
	preBlocks = append(preBlocks, header...)
	preBlocks = append(preBlocks, tmapChunk...)
	preBlocks = append(preBlocks, trksChunk...)

	// Pad so the bit-array payload starts at the 512-byte block boundary
	// promised by the directory entries (block 3 = byte offset 1536).
	for len(preBlocks) < 3*512 {
		preBlocks = append(preBlocks, 0)
	}
	return append(preBlocks, blocks...)
}

func chunkBytes(id string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload))
	out = append(out, []byte(id)...)
	sz := make([]byte, 4)
	binary.LittleEndian.PutUint32(sz, uint32(len(payload)))
	out = append(out, sz...)
	out = append(out, payload...)
	return out
}

func TestConvertWOZ2ReadsTrackBitArray(t *testing.T) {
	trackBits := map[int][]byte{
		0: {0xAA, 0x55, 0xF0},
		1: {0x01, 0x02, 0x03, 0x04},
	}
	data := buildWOZ2Image(trackBits)

	tracks, err := ConvertWOZ(data)
	if err != nil {
		t.Fatalf("ConvertWOZ: %v", err)
	}
	if tracks[0].BitCount != 3*8 {
		t.Fatalf("track 0 BitCount = %d, want %d", tracks[0].BitCount, 3*8)
	}
	if tracks[0].Data[0] != 0xAA || tracks[0].Data[1] != 0x55 || tracks[0].Data[2] != 0xF0 {
		t.Fatalf("track 0 data = %v, want [0xAA 0x55 0xF0]", tracks[0].Data[:3])
	}
	if !tracks[2].Virgin {
		t.Fatal("expected an unmapped track to be reported as virgin")
	}
}

func TestConvertWOZRejectsUnknownMagic(t *testing.T) {
	bad := make([]byte, wozHeaderSize+8)
	copy(bad, []byte("WOZ9"))
	if _, err := ConvertWOZ(bad); err == nil {
		t.Fatal("expected an error for an unrecognised magic")
	}
}

func TestConvertWOZTrackMapMapsQuarterTracksToWholeTrackSlot(t *testing.T) {
	trackBits := map[int][]byte{
		0: {0xAA},
		1: {0xBB},
	}
	data := buildWOZ2Image(trackBits)

	chunks := scanWOZChunks(data)
	tmapChunk, ok := findChunk(chunks, "TMAP")
	if !ok {
		t.Fatal("test fixture missing TMAP chunk")
	}
	tmap := data[tmapChunk.start : tmapChunk.start+160]
	// Quarter track 5 records the same TRKS slot as whole track 1 (qt 4):
	// a half-track region the image never captured separately, the way a
	// real WOZ image often leaves copy-protection-adjacent quarter tracks
	// pointing at a neighbouring whole track's data.
	tmap[5] = 1

	trackID, err := ConvertWOZTrackMap(data)
	if err != nil {
		t.Fatalf("ConvertWOZTrackMap: %v", err)
	}
	if trackID[0] != 0 {
		t.Fatalf("quarter track 0 (whole track 0) = %d, want 0", trackID[0])
	}
	if trackID[4] != 1 {
		t.Fatalf("quarter track 4 (whole track 1) = %d, want 1", trackID[4])
	}
	if trackID[5] != 1 {
		t.Fatalf("quarter track 5 (shares track 1's slot) = %d, want 1", trackID[5])
	}
	if trackID[1] != NoiseTrack {
		t.Fatalf("quarter track 1 = %d, want NoiseTrack", trackID[1])
	}
	if trackID[MaxQTrack-1] != NoiseTrack {
		t.Fatalf("quarter track %d = %d, want NoiseTrack", MaxQTrack-1, trackID[MaxQTrack-1])
	}
}
