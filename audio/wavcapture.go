// This file is part of miigo.
//
// miigo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// miigo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with miigo.  If not, see <https://www.gnu.org/licenses/>.

package audio

import (
	"os"

	"github.com/youpy/go-wav"

	"miigo/curated"
	"miigo/logger"
)

// WavCapture drains a Mixer's PCM output to disk as a stereo WAV file. The
// whole capture is buffered in memory and written out on Close, so it is a
// test-and-diagnostic tool rather than a real-time recorder.
type WavCapture struct {
	filename   string
	sampleRate int
	buffer     []wav.Sample
}

// NewWavCapture prepares a capture of m's output at sampleRate Hz, the same
// rate m was constructed with.
func NewWavCapture(filename string, sampleRate int) *WavCapture {
	return &WavCapture{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0),
	}
}

// Drain pulls n stereo frames out of m and appends them to the capture.
func (c *WavCapture) Drain(m *Mixer, n int) {
	out := make([]int16, n*2)
	m.Drain(out)
	for i := 0; i < n; i++ {
		w := wav.Sample{}
		w.Values[0] = int(out[i*2])
		w.Values[1] = int(out[i*2+1])
		c.buffer = append(c.buffer, w)
	}
}

// Close writes the accumulated samples to filename as a 16-bit stereo WAV
// file.
func (c *WavCapture) Close() (rerr error) {
	f, err := os.Create(c.filename)
	if err != nil {
		return curated.Wrap("wavcapture", "%v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Wrap("wavcapture", "%v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(c.buffer)), 2, uint32(c.sampleRate), 16)
	if enc == nil {
		return curated.Wrap("wavcapture", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "audio", "writing %d frames to %s", len(c.buffer), c.filename)
	enc.WriteSamples(c.buffer)

	return nil
}
