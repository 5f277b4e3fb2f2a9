package diskloader

import (
	"os"
	"path/filepath"
	"testing"

	"miigo/floppy"
)

func writeFixture(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDirectoryPrefersAppleSubdirectory(t *testing.T) {
	root := t.TempDir()
	apple := filepath.Join(root, "apple")
	if err := os.Mkdir(apple, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, apple, "game.dsk", floppy.DSKSize)
	writeFixture(t, root, "decoy.dsk", floppy.DSKSize) // should not be seen

	entries, scanRoot, err := ScanDirectory(root)
	if err != nil {
		t.Fatal(err)
	}
	if scanRoot != apple {
		t.Fatalf("scanRoot = %q, want %q", scanRoot, apple)
	}
	if len(entries) != 1 || entries[0].Name != "game.dsk" {
		t.Fatalf("entries = %v, want just game.dsk", entries)
	}
}

func TestScanDirectoryFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "boot.dsk", floppy.DSKSize)

	entries, scanRoot, err := ScanDirectory(root)
	if err != nil {
		t.Fatal(err)
	}
	if scanRoot != root {
		t.Fatalf("scanRoot = %q, want %q", scanRoot, root)
	}
	if len(entries) != 1 || entries[0].Type != TypeDSK {
		t.Fatalf("entries = %v, want one DSK entry", entries)
	}
}

func TestScanDirectorySortsDirsFirstThenAlphaAndSkipsUnknown(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "zebra.woz", 1)
	writeFixture(t, root, "apple.nib", 1)
	writeFixture(t, root, "readme.txt", 1) // unrecognised, skipped
	if err := os.Mkdir(filepath.Join(root, "collection"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, _, err := ScanDirectory(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(entries), entries)
	}
	if entries[0].Type != TypeDir || entries[0].Name != "collection" {
		t.Fatalf("entries[0] = %v, want the directory first", entries[0])
	}
	if entries[1].Name != "apple.nib" || entries[2].Name != "zebra.woz" {
		t.Fatalf("file order = [%s %s], want alphabetical", entries[1].Name, entries[2].Name)
	}
}

func TestClassifyAndProDOSSniff(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
	}{
		{"a.dsk", TypeDSK}, {"a.DO", TypeDSK}, {"a.po", TypeDSK},
		{"a.nib", TypeNIB}, {"a.woz", TypeWOZ}, {"a.bdsk", TypeBDSK},
		{"a.txt", TypeUnknown},
	}
	for _, c := range cases {
		if got := classify(c.name); got != c.typ {
			t.Errorf("classify(%q) = %v, want %v", c.name, got, c.typ)
		}
	}
	if !isProDOS("game.po") || isProDOS("game.do") || isProDOS("game.dsk") {
		t.Fatal("isProDOS extension sniff is wrong")
	}
}
