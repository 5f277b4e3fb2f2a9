package romset

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	Register(ClassMain, "test-main", []byte{0xEA, 0x4C})
	data, ok := Lookup(ClassMain, "test-main")
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(data) != 2 || data[0] != 0xEA {
		t.Fatalf("got %v, want [0xEA 0x4C]", data)
	}
}

func TestLookupMissingKeyMisses(t *testing.T) {
	if _, ok := Lookup(ClassVideo, "nonexistent"); ok {
		t.Fatal("expected a miss for an unregistered key")
	}
}

func TestMustLookupPanicsOnMiss(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a missing ROM")
		}
	}()
	MustLookup(ClassCard, "nonexistent")
}

func TestRegisterOverwritesPreviousValue(t *testing.T) {
	Register(ClassVideo, "test-video", []byte{0x01})
	Register(ClassVideo, "test-video", []byte{0x02, 0x03})
	data, _ := Lookup(ClassVideo, "test-video")
	if len(data) != 2 || data[0] != 0x02 {
		t.Fatalf("got %v, want [0x02 0x03] (second registration should win)", data)
	}
}

func TestNamesListsRegisteredNamesWithinClass(t *testing.T) {
	Register(ClassCard, "disk2", []byte{0x00})
	Register(ClassCard, "smartport", []byte{0x00})
	names := Names(ClassCard)
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["disk2"] || !found["smartport"] {
		t.Fatalf("Names(ClassCard) = %v, want to include disk2 and smartport", names)
	}
}
