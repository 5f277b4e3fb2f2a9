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

// Package emuerr defines the closed set of error conditions listed in
// the emulator's error-handling design (spec §7): ImageFormatError,
// IOError, MemoryExhausted, CPUFault and BusError, each with an Errno
// and a formatted message. Unlike package curated, which wraps
// arbitrary propagating errors, emuerr is for the fixed vocabulary of
// conditions the rest of the emulator tests against by Errno.
package emuerr
