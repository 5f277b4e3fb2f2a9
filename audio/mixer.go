package audio

// RingSize is the number of fixed-point contributions the reconstruction
// ring buffer holds (spec §4.G; size and SampleBufferOffset are this
// package's resolution of an unpinned spec constant, see SPEC_FULL.md's
// Open Question decisions).
const RingSize = 4096

// SampleBufferOffset is the click-delta threshold at or beyond which Click
// treats the gap as a new sound after silence and re-anchors instead of
// replaying the buffer forward.
const SampleBufferOffset = RingSize / 4

// cpuClockHz is the Apple IIe's nominal CPU clock, used to convert cycle
// counts into sample positions (spec §4.G).
const cpuClockHz = 1020484

// StereoSource supplies a secondary mixed-in signal — a square-wave card
// or external synthesizer (spec §4.G).
type StereoSource interface {
	Sample() (left, right int16)
}

// Mixer reconstructs the 1-bit speaker waveform from cycle-stamped click
// events into a ring buffer, and drains it into interleaved stereo PCM.
type Mixer struct {
	Volume    float64
	Secondary StereoSource

	ring []int32

	write, read   uint64
	currentSample int64
	speaker       int32
	sp            int64 // samples per CPU cycle, fixed point 16.16
	lastOut       int32
}

// New creates a mixer that converts cycle counts at the Apple IIe's
// nominal clock into positions in a stream sampled at sampleRate Hz.
func New(sampleRate int) *Mixer {
	return &Mixer{
		Volume:  1.0,
		ring:    make([]int32, RingSize),
		speaker: 256,
		sp:      (int64(sampleRate) << 16) / cpuClockHz,
	}
}

// Click implements bus.SpeakerSink: it records a speaker toggle at the
// given CPU total-cycle count (spec §4.G).
func (m *Mixer) Click(cycle uint64) {
	target := (int64(cycle) * m.sp) >> 16
	delta := target - m.currentSample
	if delta <= 0 {
		m.speaker = -m.speaker
		return
	}
	if delta >= SampleBufferOffset {
		m.write = m.read + SampleBufferOffset
		m.currentSample = target
	} else {
		for i := int64(0); i < delta; i++ {
			m.ring[m.write%RingSize] = m.speaker
			m.write++
			if m.write-m.read > RingSize {
				m.read++
			}
		}
		m.currentSample = target
	}
	m.speaker = -m.speaker
}

// Sync re-anchors the mixer to cycle and empties the ring, preventing a
// long pause (disk load, reset) from being replayed as accumulated
// toggles (spec §4.G).
func (m *Mixer) Sync(cycle uint64) {
	m.currentSample = (int64(cycle) * m.sp) >> 16
	m.write = 0
	m.read = 0
	m.lastOut = 0
	for i := range m.ring {
		m.ring[i] = 0
	}
}

// Drain fills out, an even-length buffer of interleaved stereo int16
// samples, consuming ring contributions (or holding the last one during
// underrun), mixing in the secondary source, scaling by Volume, and
// clamping to the int16 range (spec §4.G).
func (m *Mixer) Drain(out []int16) {
	frames := len(out) / 2
	for i := 0; i < frames; i++ {
		var contribution int32
		if m.write != m.read {
			contribution = m.ring[m.read%RingSize]
			m.read++
			m.lastOut = contribution
		} else {
			contribution = m.lastOut
		}

		left := float64(contribution) * m.Volume
		right := left
		if m.Secondary != nil {
			sl, sr := m.Secondary.Sample()
			left += float64(sl)
			right += float64(sr)
		}
		out[i*2] = clamp16(left)
		out[i*2+1] = clamp16(right)
	}
}

func clamp16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
