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

// Package blockdevice implements the ProDOS/SmartPort block-device card
// of spec §4.I: a card ROM loaded into a slot's $CsXX page carrying two
// BRK-trap opcodes, serving 512-byte block I/O against up to two mounted
// drives without any native 6502 transfer code.
package blockdevice
