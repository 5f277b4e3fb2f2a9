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

import "fmt"

// Errno identifies a specific error condition.
type Errno int

// Values supplies the arguments for the message associated with an Errno.
type Values []interface{}

// Error is the emulator-specific error type used for the closed set of
// conditions described in spec §7.
type Error struct {
	Errno  Errno
	Values Values
}

// New creates an Error from an Errno and its message arguments.
func New(errno Errno, values ...interface{}) Error {
	return Error{Errno: errno, Values: values}
}

func (e Error) Error() string {
	return fmt.Sprintf(messages[e.Errno], e.Values...)
}

// Is reports whether err is an emuerr.Error with the given Errno.
func Is(err error, errno Errno) bool {
	e, ok := err.(Error)
	return ok && e.Errno == errno
}
