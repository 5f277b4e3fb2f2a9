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

package config

import "miigo/curated"

// BoardVariant selects the GPIO pin layout for the host peripherals.
// Neither value changes emulation behaviour; both are carried through so
// board-specific driver code (outside this module's scope) can branch on
// them.
type BoardVariant int

const (
	BoardM1 BoardVariant = iota
	BoardM2
)

// SampleRate is the audio reconstruction rate, restricted to the two
// rates the mixer's fixed-point arithmetic (§4.G) has been validated at.
type SampleRate int

const (
	SampleRate22050 SampleRate = 22050
	SampleRate44100 SampleRate = 44100
)

// Options is the full set of configuration values described in spec §6.
type Options struct {
	BoardVariant  BoardVariant
	CPUSpeedMHz   float64
	PSRAMEnabled  bool
	SampleRate    SampleRate
	PaletteIndex  int
	VideoROMBank  int
}

// Default returns the option set the emulator boots with if the caller
// supplies none of its own.
func Default() Options {
	return Options{
		BoardVariant: BoardM1,
		CPUSpeedMHz:  150,
		PSRAMEnabled: true,
		SampleRate:   SampleRate44100,
		PaletteIndex: 0,
		VideoROMBank: 0,
	}
}

// Validate checks the option set against the ranges spec §6 defines and
// returns a curated error describing the first violation found.
func (o Options) Validate() error {
	if o.BoardVariant != BoardM1 && o.BoardVariant != BoardM2 {
		return curated.Wrap("config", "unknown board variant %d", o.BoardVariant)
	}
	if o.CPUSpeedMHz <= 0 {
		return curated.Wrap("config", "cpu_speed_mhz must be positive, got %v", o.CPUSpeedMHz)
	}
	if o.SampleRate != SampleRate22050 && o.SampleRate != SampleRate44100 {
		return curated.Wrap("config", "unsupported sample rate %d", o.SampleRate)
	}
	if o.PaletteIndex < 0 {
		return curated.Wrap("config", "palette_index must not be negative, got %d", o.PaletteIndex)
	}
	if o.VideoROMBank != 0 && o.VideoROMBank != 1 {
		return curated.Wrap("config", "video_rom_bank must be 0 or 1, got %d", o.VideoROMBank)
	}
	return nil
}

// NormalizedPalette wraps the palette index around the number of built-in
// palettes (spec §8 boundary behaviour: "Palette index >= 5 wraps to 0").
// The count of built-in palettes lives in package video, but the wrap
// arithmetic is needed here too when an option set is constructed from
// unvalidated external input, so it's duplicated as a small pure function
// rather than introducing an import of video into config.
func NormalizedPalette(index, count int) int {
	if count <= 0 {
		return 0
	}
	if index < 0 || index >= count {
		return 0
	}
	return index
}
