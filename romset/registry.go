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

package romset

import "fmt"

// Class groups ROMs by what consumes them, per spec §4.K's examples
// ("main", "video").
type Class string

const (
	ClassMain  Class = "main"  // CPU bus ROM, $D000-$FFFF
	ClassVideo Class = "video" // character generator, one or two 4KiB banks
	ClassCard  Class = "card"  // slot-card firmware stubs
)

type key struct {
	class Class
	name  string
}

var registry = map[key][]byte{}

// Register adds data under (class, name), overwriting any previous
// registration for the same key. Intended to be called from an init()
// function in a package that holds a //go:embed'd ROM dump, so the ROM
// becomes available to lookup without its holder package being imported
// by name anywhere else.
func Register(class Class, name string, data []byte) {
	registry[key{class, name}] = data
}

// Lookup returns the bytes registered under (class, name).
func Lookup(class Class, name string) ([]byte, bool) {
	data, ok := registry[key{class, name}]
	return data, ok
}

// MustLookup is Lookup but panics if the key was never registered,
// suitable for boot-time wiring where a missing ROM is a configuration
// error rather than a recoverable runtime condition.
func MustLookup(class Class, name string) []byte {
	data, ok := Lookup(class, name)
	if !ok {
		panic(fmt.Sprintf("romset: no ROM registered for (%s, %s)", class, name))
	}
	return data
}

// Names returns the registered names within class, for diagnostic
// listings.
func Names(class Class) []string {
	var names []string
	for k := range registry {
		if k.class == class {
			names = append(names, k.name)
		}
	}
	return names
}
