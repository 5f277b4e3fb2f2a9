package floppy

import "testing"

func TestNewDriveMapsQuarterTracksToWholeTracks(t *testing.T) {
	d := NewDrive()
	if d.TrackID[0] != 0 || d.TrackID[4] != 1 || d.TrackID[136] != 34 {
		t.Fatalf("unexpected TrackID mapping: [0]=%d [4]=%d [136]=%d", d.TrackID[0], d.TrackID[4], d.TrackID[136])
	}
}

func TestSetPhaseLoadsTrackOnCrossing(t *testing.T) {
	d := NewDrive()
	d.Tracks[0].AppendBits(0xAA, 8)
	d.Tracks[1].AppendBits(0x55, 8)

	d.SetPhase(0)
	d.loadCurrentTrack()
	if d.CurrentTrack() != 0 {
		t.Fatalf("CurrentTrack() = %d, want 0", d.CurrentTrack())
	}

	d.SetPhase(1) // adjacent phase, steps qtrack to 1, still within track 0's span
	if d.CurrentTrack() != 0 {
		t.Fatalf("CurrentTrack() = %d, want 0 (qtrack 1 still maps to track 0)", d.CurrentTrack())
	}

	d.SetPhase(2)
	d.SetPhase(3) // two more steps: qtrack now 3, still track 0
	if d.CurrentTrack() != 0 {
		t.Fatalf("CurrentTrack() = %d, want 0", d.CurrentTrack())
	}
	d.SetPhase(0) // one more step crosses into track 1 (qtrack 4)
	if d.CurrentTrack() != 1 {
		t.Fatalf("CurrentTrack() = %d, want 1 after crossing into the next track", d.CurrentTrack())
	}
}

func TestWriteBitRespectsWriteProtect(t *testing.T) {
	d := NewDrive()
	d.Tracks[0].AppendBits(0, 8)
	d.loadCurrentTrack()
	d.WriteProtected = true
	d.WriteBit(true)
	if d.Tracks[0].Dirty {
		t.Fatal("expected write-protected drive to ignore WriteBit")
	}
}

func TestFlushCurrentTrackClearsDirty(t *testing.T) {
	d := NewDrive()
	d.Tracks[0].AppendBits(0, 8)
	d.loadCurrentTrack()
	d.WriteBit(true)
	if !d.Tracks[0].Dirty {
		t.Fatal("expected WriteBit to mark the track dirty")
	}
	d.FlushCurrentTrack()
	if d.Tracks[0].Dirty {
		t.Fatal("expected FlushCurrentTrack to clear Dirty")
	}
	if !d.SeedSaved {
		t.Fatal("expected SeedSaved to be set after a flush")
	}
}

func TestNoiseTrackProducesDeterministicButNonConstantStream(t *testing.T) {
	d := NewDrive()
	d.TrackID[0] = NoiseTrack
	d.loadCurrentTrack()
	if d.CurrentTrack() != -1 {
		t.Fatalf("CurrentTrack() = %d, want -1 over a noise region", d.CurrentTrack())
	}

	var allSame = true
	first := d.ReadBit()
	for i := 0; i < 64; i++ {
		if d.ReadBit() != first {
			allSame = false
			break
		}
	}
	if allSame {
		t.Fatal("expected the noise generator to produce a varying bit stream")
	}
}
