package audio

import "testing"

func TestClickTogglesSignOnNonPositiveDelta(t *testing.T) {
	m := New(22050)
	before := m.speaker
	m.Click(0) // delta is 0 at cycle 0 with an empty ring: just toggles
	if m.speaker != -before {
		t.Fatalf("expected sign to flip, got %d from %d", m.speaker, before)
	}
}

func TestClickReconstructionFillsRunsBetweenClicks(t *testing.T) {
	// Successive clicks far enough apart in cycle time each deposit a
	// run of ring entries holding the speaker value in effect since the
	// previous toggle (spec §4.G, §8 invariant 7).
	m := New(22050)
	m.Click(0)    // toggle only, no elapsed sample time yet
	m.Click(1000) // 21 elapsed samples of the post-click(0) value
	m.Click(2000) // 22 more samples of the post-click(1000) value
	m.Click(3000) // 21 more samples of the post-click(2000) value

	out := make([]int16, 2*64)
	m.Drain(out)

	for i := 0; i < 21; i++ {
		if out[i*2] >= 0 {
			t.Fatalf("sample %d = %d, want negative", i, out[i*2])
		}
	}
	for i := 21; i < 43; i++ {
		if out[i*2] <= 0 {
			t.Fatalf("sample %d = %d, want positive", i, out[i*2])
		}
	}
	for i := 43; i < 64; i++ {
		if out[i*2] >= 0 {
			t.Fatalf("sample %d = %d, want negative", i, out[i*2])
		}
	}
}

func TestClickDeltaAboveOffsetReanchors(t *testing.T) {
	m := New(22050)
	m.Click(0)
	// a huge cycle gap forces delta far past SampleBufferOffset.
	m.Click(10_000_000)
	if m.write != m.read+SampleBufferOffset {
		t.Fatalf("expected write = read + offset after re-anchor, got write=%d read=%d", m.write, m.read)
	}
}

func TestSyncEmptiesRingAndReanchors(t *testing.T) {
	m := New(22050)
	m.Click(0)
	m.Click(100)
	m.Sync(5000)
	if m.write != 0 || m.read != 0 {
		t.Fatalf("expected ring emptied after Sync, write=%d read=%d", m.write, m.read)
	}
	for _, v := range m.ring {
		if v != 0 {
			t.Fatal("expected ring contents zeroed after Sync")
		}
	}
}

func TestDrainHoldsLastContributionOnUnderrun(t *testing.T) {
	m := New(22050)
	m.Click(0)
	m.Click(100) // fills a handful of ring entries

	big := make([]int16, 2*(RingSize*4))
	m.Drain(big) // drain far past what the ring actually holds
	last := big[len(big)-2]
	secondLast := big[len(big)-4]
	if last != secondLast {
		t.Fatalf("expected held sample to repeat during underrun, got %d then %d", secondLast, last)
	}
}
