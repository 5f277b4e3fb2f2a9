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

// Package bus implements the address decoder and soft-switch bank of
// spec §4.D: it routes CPU accesses to main/auxiliary RAM, the language
// card RAM/ROM split at $D000-$FFFF, the $C000-$C0FF soft-switch page,
// and the card ROM windows at $C100-$CFFF.
package bus
