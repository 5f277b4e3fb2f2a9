package floppy

import (
	"bytes"
	"testing"
)

func TestWriteBDSKReadBDSKRoundTrips(t *testing.T) {
	var tracks [NumTracks]Track
	tracks[0].AppendBits(0xDEADBEEF, 32)
	tracks[5].AppendBytes([]byte{1, 2, 3, 4, 5})

	var buf bytes.Buffer
	if err := WriteBDSK(&buf, &tracks); err != nil {
		t.Fatalf("WriteBDSK: %v", err)
	}

	got, err := ReadBDSK(&buf)
	if err != nil {
		t.Fatalf("ReadBDSK: %v", err)
	}
	if got[0].BitCount != 32 || got[0].Data[0] != 0xDE {
		t.Fatalf("track 0 mismatch: bitcount=%d data0=0x%02X", got[0].BitCount, got[0].Data[0])
	}
	if got[5].BitCount != 40 || got[5].Data[2] != 3 {
		t.Fatalf("track 5 mismatch: bitcount=%d data2=%d", got[5].BitCount, got[5].Data[2])
	}
}

func TestReadBDSKRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, bdskHeaderSize+trackRecordSize*NumTracks))
	if _, err := ReadBDSK(buf); err == nil {
		t.Fatal("expected an error for a file with no BDSK magic")
	}
}

func TestBDSKOffsetMatchesHeaderPlusTrackStride(t *testing.T) {
	if BDSKOffset(0) != bdskHeaderSize {
		t.Fatalf("BDSKOffset(0) = %d, want %d", BDSKOffset(0), bdskHeaderSize)
	}
	if BDSKOffset(1) != bdskHeaderSize+trackRecordSize {
		t.Fatalf("BDSKOffset(1) = %d, want %d", BDSKOffset(1), bdskHeaderSize+trackRecordSize)
	}
}
