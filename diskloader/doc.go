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

// Package diskloader implements the removable-storage catalog and
// mount/eject sequence of spec §4.J: it enumerates disk images found on
// the host filesystem, and converts or loads one into a floppy.Drive,
// saving and optionally restoring the drive's mechanical state around
// the swap.
package diskloader
