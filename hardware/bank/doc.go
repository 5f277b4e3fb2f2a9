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

// Package bank implements the uniform read/write/peek/poke storage
// abstraction of spec §4.B: a contiguous guest address range backed
// either by a raw byte slice or by a vram.Pool, with optional per-page
// access hooks that cards install to intercept reads and writes before
// storage is touched.
package bank
