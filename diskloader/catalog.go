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

package diskloader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"miigo/curated"
)

// Type classifies a catalog entry, ported from disk_loader.h's
// disk_type_t (DISK_TYPE_DSK/NIB/WOZ/BDSK and the header's anticipated,
// if never wired up in the original, DIR_TYPE).
type Type int

const (
	TypeUnknown Type = iota
	TypeDSK          // .dsk, .do, .po
	TypeNIB          // .nib
	TypeWOZ          // .woz
	TypeBDSK         // .bdsk
	TypeDir
)

// classify sniffs a catalog type from a filename's extension, per
// disk_get_type.
func classify(name string) Type {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".dsk", ".do", ".po":
		return TypeDSK
	case ".nib":
		return TypeNIB
	case ".woz":
		return TypeWOZ
	case ".bdsk":
		return TypeBDSK
	default:
		return TypeUnknown
	}
}

// isProDOS reports whether name's extension selects ProDOS sector order
// for a TypeDSK image, per disk_type_to_mii_format's .do/.po sniff.
func isProDOS(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".po")
}

// Entry is one catalog row: a mountable image or a subdirectory.
type Entry struct {
	Name string // base filename, relative to the scanned directory
	Size int64
	Type Type
}

// ScanDirectory enumerates root's well-known image directory, the Go
// equivalent of disk_scan_directory's SD-card walk: root/apple is tried
// first, falling back to root itself if that subdirectory does not
// exist (spec §4.J). Entries are sorted directories-first, then
// alphabetically; files whose extension is not a recognised image
// format are skipped.
func ScanDirectory(root string) ([]Entry, string, error) {
	scanRoot := filepath.Join(root, "apple")
	if fi, err := os.Stat(scanRoot); err != nil || !fi.IsDir() {
		scanRoot = root
	}

	dirents, err := os.ReadDir(scanRoot)
	if err != nil {
		return nil, "", curated.Wrap("diskloader", "%v", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() {
			entries = append(entries, Entry{Name: de.Name(), Type: TypeDir})
			continue
		}
		typ := classify(de.Name())
		if typ == TypeUnknown {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), Size: info.Size(), Type: typ})
	}

	sort.Slice(entries, func(i, j int) bool {
		di, dj := entries[i].Type == TypeDir, entries[j].Type == TypeDir
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, scanRoot, nil
}
