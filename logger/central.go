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

// Package logger implements a single, process-wide log used by the
// emulation core to record recoverable anomalies (spec §7: CPU faults on
// undefined opcodes, bus errors, disk/swap I/O failures) without
// aborting emulation.
package logger

import "io"

// Permission implementations indicate whether the environment making a
// log request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow indicates that the logging request should always be allowed.
var Allow Permission = allow{}

// only one central log for the entire application - there's no need for more.
var central *logger

// maxCentral is the maximum number of entries retained by the central logger.
const maxCentral = 512

func init() {
	central = newLogger(maxCentral)
}

// Log adds an entry to the central logger.
func Log(perm Permission, tag, detail string) {
	if perm == Allow || perm.AllowLogging() {
		central.log(tag, detail)
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	if perm == Allow || perm.AllowLogging() {
		central.logf(tag, detail, args...)
	}
}

// Clear removes all entries from the central logger.
func Clear() {
	central.clear()
}

// Write dumps the contents of the central logger to an io.Writer.
func Write(output io.Writer) bool {
	return central.write(output)
}

// Tail writes the last N entries to an io.Writer.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho causes every future log entry to also be written to output, in
// addition to being retained centrally. Passing nil disables echoing.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
