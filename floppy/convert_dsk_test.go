package floppy

import "testing"

func buildDSKImage(fill func(track, sector int) byte) []byte {
	data := make([]byte, DSKSize)
	for trk := 0; trk < NumTracks; trk++ {
		for sec := 0; sec < SectorsPerTrack; sec++ {
			off := trk*SectorsPerTrack*256 + sec*256
			for i := 0; i < 256; i++ {
				data[off+i] = fill(trk, sec) + byte(i)
			}
		}
	}
	return data
}

func TestConvertDSKRejectsWrongSize(t *testing.T) {
	if _, err := ConvertDSK(make([]byte, 100), 254, false); err == nil {
		t.Fatal("expected an error for a short image")
	}
}

func TestConvertDSKRoundTripsEverySector(t *testing.T) {
	img := buildDSKImage(func(trk, sec int) byte { return byte(trk*16 + sec) })

	tracks, err := ConvertDSK(img, 254, false)
	if err != nil {
		t.Fatalf("ConvertDSK: %v", err)
	}

	for trk := 0; trk < NumTracks; trk++ {
		for sec := 0; sec < SectorsPerTrack; sec++ {
			got, ok := DecodeSector(&tracks[trk], sec)
			if !ok {
				t.Fatalf("track %d sector %d: decode failed", trk, sec)
			}
			want := fillExpected(trk, int(dos33Skew[sec]))
			if got != want {
				t.Fatalf("track %d sector %d mismatch: got %v, want %v", trk, sec, got[:4], want[:4])
			}
		}
	}
}

func fillExpected(trk, sec int) [256]byte {
	var out [256]byte
	base := byte(trk*16 + sec)
	for i := 0; i < 256; i++ {
		out[i] = base + byte(i)
	}
	return out
}

func TestConvertDSKProDOSUsesDifferentSkew(t *testing.T) {
	img := buildDSKImage(func(trk, sec int) byte { return byte(trk*16 + sec) })

	dosTracks, err := ConvertDSK(img, 254, false)
	if err != nil {
		t.Fatalf("ConvertDSK (dos): %v", err)
	}
	poTracks, err := ConvertDSK(img, 254, true)
	if err != nil {
		t.Fatalf("ConvertDSK (prodos): %v", err)
	}

	dosSector0, _ := DecodeSector(&dosTracks[1], 1)
	poSector0, _ := DecodeSector(&poTracks[1], 1)
	if dosSector0 == poSector0 {
		t.Fatal("expected DOS and ProDOS skew to place different logical sectors at physical slot 1")
	}
}
