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

// Package romset is the process-wide ROM registry of spec §4.K: ROM
// blobs self-register under a (class, name) key at init time, the way a
// package holding a //go:embed'd firmware dump would register it before
// main runs, and the CPU bus and video renderer look the reference up
// by name rather than importing the blob package directly.
package romset
