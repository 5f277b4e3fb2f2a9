package audio

import (
	"os"
	"testing"
)

func TestWavCaptureWritesFrames(t *testing.T) {
	m := New(22050)
	m.Click(0)
	m.Click(1000)

	f, err := os.CreateTemp("", "miigo-audio-*.wav")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	name := f.Name()
	f.Close()
	defer os.Remove(name)

	c := NewWavCapture(name, 22050)
	c.Drain(m, 32)
	if len(c.buffer) != 32 {
		t.Fatalf("expected 32 buffered frames, got %d", len(c.buffer))
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(name)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty wav file")
	}
}
