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

// Package cpu implements the 65C02 instruction interpreter of spec §4.C:
// a cycle-counted instruction dispatcher reading and writing through a
// CPUBus, with a 256-entry trap table that lets card firmware invoke
// host-side logic via BRK followed by a trap byte.
package cpu
