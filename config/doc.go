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

// Package config holds the boot-time option table described in spec §6.
// These are not a persisted preferences file in the style of a desktop
// build - there is nowhere to write one on the target - but typed
// option fields and range validation (Options.Validate) are carried over
// from that idiom, so a malformed option set is rejected by Validate
// rather than discovered as a subtle runtime misbehaviour.
package config
