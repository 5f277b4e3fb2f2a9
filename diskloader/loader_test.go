package diskloader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"miigo/floppy"
	"miigo/timer"
)

// writeMinimalWOZ2Fixture writes a small but structurally valid WOZ2 image
// to dir/name: two whole tracks' worth of bit data, plus a TMAP chunk where
// quarter track 5 is recorded as sharing whole track 1's TRKS slot, the
// same half-track-sharing shape floppy's own WOZ2 test fixture builds.
func writeMinimalWOZ2Fixture(t *testing.T, dir, name string) {
	t.Helper()

	header := make([]byte, 12)
	copy(header, []byte("WOZ2"))

	tmap := make([]byte, 160)
	for i := range tmap {
		tmap[i] = floppy.NoiseTrack
	}
	tmap[0] = 0 // whole track 0 -> TRKS slot 0
	tmap[4] = 1 // whole track 1 -> TRKS slot 1
	tmap[5] = 1 // quarter track 5 shares whole track 1's slot

	track0 := []byte{0xAA, 0x55, 0xF0}
	track1 := []byte{0x01, 0x02, 0x03, 0x04}

	trksDir := make([]byte, 160*8)
	nextBlock := 3
	for slot, bits := range [][]byte{track0, track1} {
		entryOff := slot * 8
		blockCount := (len(bits) + 511) / 512
		binary.LittleEndian.PutUint16(trksDir[entryOff:entryOff+2], uint16(nextBlock))
		binary.LittleEndian.PutUint16(trksDir[entryOff+2:entryOff+4], uint16(blockCount))
		binary.LittleEndian.PutUint32(trksDir[entryOff+4:entryOff+8], uint32(len(bits)*8))
		nextBlock += blockCount
	}

	chunk := func(id string, payload []byte) []byte {
		out := append([]byte(id), make([]byte, 4)...)
		binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
		return append(out, payload...)
	}

	data := append([]byte{}, header...)
	data = append(data, chunk("TMAP", tmap)...)
	data = append(data, chunk("TRKS", trksDir)...)
	for len(data) < 3*512 {
		data = append(data, 0)
	}
	for _, bits := range [][]byte{track0, track1} {
		padded := make([]byte, ((len(bits)+511)/512)*512)
		copy(padded, bits)
		data = append(data, padded...)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

type fakeBoot struct{ enabled bool }

func (f *fakeBoot) SetBootEnabled(enabled bool) { f.enabled = enabled }

type fakeVBL struct {
	calledWheel *timer.Wheel
	calledID    int
	calls       int
}

func (f *fakeVBL) ResetVBLTimer(w *timer.Wheel, id int) {
	f.calledWheel = w
	f.calledID = id
	f.calls++
}

func newLoaderWithFixture(t *testing.T, name string, size int) (*Loader, string) {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, name, size)
	l := &Loader{}
	if err := l.Scan(root); err != nil {
		t.Fatal(err)
	}
	return l, root
}

func TestMountDSKConvertsAndLoadsCurrentTrack(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "game.dsk", floppy.DSKSize)
	d := floppy.NewDrive()

	if err := l.Mount(0, 0, d, Reset); err != nil {
		t.Fatal(err)
	}
	if d.CurrentTrack() != 0 {
		t.Fatalf("CurrentTrack() = %d, want 0 (track under a freshly-reset head)", d.CurrentTrack())
	}
	if !d.Tracks[0].HasMap {
		t.Fatal("expected track 0 to carry a sector map after DSK conversion")
	}
	path, typ, ok := l.Mounted(0)
	if !ok || typ != TypeDSK || filepath.Base(path) != "game.dsk" {
		t.Fatalf("Mounted(0) = (%q, %v, %v), want game.dsk/TypeDSK/true", path, typ, ok)
	}
}

func TestMountCachesBDSKForSubsequentMount(t *testing.T) {
	l, root := newLoaderWithFixture(t, "game.dsk", floppy.DSKSize)
	d := floppy.NewDrive()

	if err := l.Mount(0, 0, d, Reset); err != nil {
		t.Fatal(err)
	}
	cachePath := filepath.Join(root, "game.bdsk")
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected a cached BDSK file at %s: %v", cachePath, err)
	}

	// truncate the source image; if the second mount still succeeds it must
	// have used the cache rather than reconverting game.dsk.
	if err := os.WriteFile(filepath.Join(root, "game.dsk"), []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}
	d2 := floppy.NewDrive()
	if err := l.Mount(0, 0, d2, Reset); err != nil {
		t.Fatalf("mount from BDSK cache failed: %v", err)
	}
	if d2.Tracks[0].BitCount != d.Tracks[0].BitCount {
		t.Fatalf("cached track bit count = %d, want %d", d2.Tracks[0].BitCount, d.Tracks[0].BitCount)
	}
}

func TestMountPreserveKeepsMechanicalState(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "a.dsk", floppy.DSKSize)
	writeFixture(t, l.root, "b.dsk", floppy.DSKSize)
	entries, _, err := ScanDirectory(l.root)
	if err != nil {
		t.Fatal(err)
	}
	l.Entries = entries

	d := floppy.NewDrive()
	if err := l.Mount(0, indexOf(l.Entries, "a.dsk"), d, Reset); err != nil {
		t.Fatal(err)
	}
	d.Motor = true
	d.Stepper = 2
	d.QTrack = 40
	d.BitPosition = 777

	if err := l.Mount(0, indexOf(l.Entries, "b.dsk"), d, Preserve); err != nil {
		t.Fatal(err)
	}
	if !d.Motor || d.Stepper != 2 || d.QTrack != 40 || d.BitPosition != 777 {
		t.Fatalf("preserve mode lost mechanical state: motor=%v stepper=%d qtrack=%d bitpos=%d",
			d.Motor, d.Stepper, d.QTrack, d.BitPosition)
	}
}

func TestMountResetClearsMechanicalState(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "a.dsk", floppy.DSKSize)
	writeFixture(t, l.root, "b.dsk", floppy.DSKSize)
	entries, _, err := ScanDirectory(l.root)
	if err != nil {
		t.Fatal(err)
	}
	l.Entries = entries

	d := floppy.NewDrive()
	if err := l.Mount(0, indexOf(l.Entries, "a.dsk"), d, Reset); err != nil {
		t.Fatal(err)
	}
	d.Motor = true
	d.Stepper = 2
	d.QTrack = 40
	d.BitPosition = 777

	if err := l.Mount(0, indexOf(l.Entries, "b.dsk"), d, Reset); err != nil {
		t.Fatal(err)
	}
	if d.Motor || d.Stepper != 0 || d.QTrack != 0 || d.BitPosition != 0 {
		t.Fatalf("reset mode did not clear mechanical state: motor=%v stepper=%d qtrack=%d bitpos=%d",
			d.Motor, d.Stepper, d.QTrack, d.BitPosition)
	}
}

func TestMountEnablesBootSignatureAndResetsVBL(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "game.dsk", floppy.DSKSize)
	boot := &fakeBoot{}
	vbl := &fakeVBL{}
	wheel := timer.New()
	id := wheel.Register(100, "vbl", func() int64 { return 100 })
	l.Boot = boot
	l.VBL = vbl
	l.Wheel = wheel
	l.VBLTimerID = id

	d := floppy.NewDrive()
	if err := l.Mount(0, 0, d, Reset); err != nil {
		t.Fatal(err)
	}
	if !boot.enabled {
		t.Fatal("expected the boot signature to be enabled after a successful mount")
	}
	if vbl.calls != 1 || vbl.calledWheel != wheel || vbl.calledID != id {
		t.Fatalf("ResetVBLTimer called %d times with (%v, %d), want 1 time with (%v, %d)",
			vbl.calls, vbl.calledWheel, vbl.calledID, wheel, id)
	}
}

func TestMountRejectsDirectoryEntry(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	l := &Loader{}
	if err := l.Scan(root); err != nil {
		t.Fatal(err)
	}
	if err := l.Mount(0, 0, floppy.NewDrive(), Reset); err == nil {
		t.Fatal("expected an error mounting a directory entry")
	}
}

func TestMountInvalidIndexReturnsError(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "game.dsk", floppy.DSKSize)
	if err := l.Mount(0, 5, floppy.NewDrive(), Reset); err == nil {
		t.Fatal("expected an error for an out-of-range catalog index")
	}
	if err := l.Mount(9, 0, floppy.NewDrive(), Reset); err == nil {
		t.Fatal("expected an error for an out-of-range drive index")
	}
}

func TestEjectClearsMountedRecord(t *testing.T) {
	l, _ := newLoaderWithFixture(t, "game.dsk", floppy.DSKSize)
	d := floppy.NewDrive()
	if err := l.Mount(0, 0, d, Reset); err != nil {
		t.Fatal(err)
	}
	if err := l.Eject(0, d); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := l.Mounted(0); ok {
		t.Fatal("expected Mounted to report nothing after Eject")
	}
	if d.CurrentTrack() != -1 {
		t.Fatalf("CurrentTrack() = %d, want -1 after eject", d.CurrentTrack())
	}
}

func TestMountWOZPopulatesTrackIDFromTMAP(t *testing.T) {
	root := t.TempDir()
	writeMinimalWOZ2Fixture(t, root, "game.woz")
	l := &Loader{}
	if err := l.Scan(root); err != nil {
		t.Fatal(err)
	}

	d := floppy.NewDrive()
	if err := l.Mount(0, 0, d, Reset); err != nil {
		t.Fatal(err)
	}

	if d.TrackID[0] != 0 {
		t.Fatalf("TrackID[0] = %d, want 0 (whole track 0)", d.TrackID[0])
	}
	if d.TrackID[4] != 1 {
		t.Fatalf("TrackID[4] = %d, want 1 (whole track 1)", d.TrackID[4])
	}
	if d.TrackID[5] != 1 {
		t.Fatalf("TrackID[5] = %d, want 1 (shares whole track 1's slot)", d.TrackID[5])
	}
	if d.TrackID[1] != floppy.NoiseTrack {
		t.Fatalf("TrackID[1] = %d, want NoiseTrack (identity mapping must not survive a WOZ mount)", d.TrackID[1])
	}
}

func indexOf(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
