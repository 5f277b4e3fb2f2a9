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

package emuerr

var messages = map[Errno]string{
	ImageFormatError: "disk image format error: %s",
	ImageUnreadable:  "cannot read disk image %s: %v",
	MountFailed:      "mount failed for drive %d: %v",

	IOError:          "I/O error: %s",
	SwapReadFailed:   "swap file read failed for guest page %#02x: %v",
	TrackFlushFailed: "failed to flush track %d of %s: %v",

	MemoryExhausted: "paged RAM pool too small: need %d pages, have %d",

	CPUFault:          "CPU fault at %#04x: %s",
	UndefinedOpcode:   "undefined opcode %#02x at %#04x (treated as NOP)",

	BusError:          "bus error at %#04x: %s",
	UnknownSoftSwitch: "access to unknown soft-switch %#04x",

	BlockDeviceIOError: "block device I/O error on unit %d, block %d: %v",
}
