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
	"strings"

	"miigo/curated"
	"miigo/emuerr"
	"miigo/floppy"
	"miigo/logger"
	"miigo/timer"
)

// DriveCount is the number of drives the loader can mount images into,
// matching the Disk II controller's two-drive flat-cable (spec §4.H/§4.J).
const DriveCount = 2

// Mode selects how Mount treats a drive's mechanical state across a
// swap, per spec §4.J step 3.
type Mode int

const (
	// Reset discards the drive's prior head position, the boot-time
	// behaviour: motor, stepper, qtrack and bit position all return to
	// their just-constructed zero state.
	Reset Mode = iota
	// Preserve carries the drive's motor/stepper/qtrack/bit-position
	// state across the swap, for a disk change made while software is
	// mid-access and expects the head not to have jumped.
	Preserve
)

// BootSignaler is satisfied by a Disk II controller (floppy.Controller):
// Mount enables it on a successful mount and Eject clears it, the Go
// equivalent of disk_loader.c's MII_SLOT_D2_SET_BOOT slot command.
type BootSignaler interface {
	SetBootEnabled(enabled bool)
}

// VBLResetter is satisfied by the video renderer: Mount calls it after
// the image is read from disk, so a long synchronous read cannot leave
// the VBL timer with a large backlog of cycles to catch up on.
type VBLResetter interface {
	ResetVBLTimer(w *timer.Wheel, id int)
}

type mounted struct {
	path     string
	typ      Type
	size     int64
	readOnly bool
	loaded   bool
}

// Loader is the removable-storage catalog and mount/eject sequencer of
// spec §4.J. Boot and VBL are optional collaborators; a Loader used only
// for mechanical-state and BDSK-cache testing can leave them nil.
type Loader struct {
	Entries []Entry
	root    string // resolved scan directory, set by Scan

	Boot       BootSignaler
	VBL        VBLResetter
	Wheel      *timer.Wheel
	VBLTimerID int

	images [DriveCount]mounted
}

// Scan repopulates Entries from root's well-known image directory.
func (l *Loader) Scan(root string) error {
	entries, scanRoot, err := ScanDirectory(root)
	if err != nil {
		return err
	}
	l.Entries = entries
	l.root = scanRoot
	return nil
}

// Mount implements spec §4.J's six-step mount sequence: validate the
// image file, save/restore mechanical state per mode, reset and reload
// the drive from a cached BDSK conversion (converting and caching it if
// one does not yet exist), load the track under the head, then enable
// the boot signature and reset the VBL timer.
func (l *Loader) Mount(drive int, index int, target *floppy.Drive, mode Mode) error {
	if drive < 0 || drive >= DriveCount {
		return curated.Wrap("diskloader", "invalid drive index")
	}
	if index < 0 || index >= len(l.Entries) {
		return curated.Wrap("diskloader", "invalid catalog index")
	}
	entry := l.Entries[index]
	if entry.Type == TypeDir {
		return curated.Wrap("diskloader", "cannot mount a directory")
	}

	path := filepath.Join(l.root, entry.Name)
	if _, err := os.Stat(path); err != nil {
		logger.Logf(logger.Allow, "diskloader", emuerr.New(emuerr.ImageUnreadable, path, err).Error())
		return curated.Wrap("diskloader", "%v", err)
	}

	var saved struct {
		motor       bool
		stepper     byte
		qtrack      int
		bitPosition uint32
	}
	if mode == Preserve {
		saved.motor = target.Motor
		saved.stepper = target.Stepper
		saved.qtrack = target.QTrack
		saved.bitPosition = target.BitPosition
	}

	target.Reset()

	if mode == Preserve {
		target.Motor = saved.motor
		target.Stepper = saved.stepper
		target.QTrack = saved.qtrack
	}

	tracks, trackID, readOnly, err := loadTracks(path, entry.Type)
	if err != nil {
		logger.Log(logger.Allow, "diskloader", emuerr.New(emuerr.ImageFormatError, err.Error()).Error())
		return curated.Wrap("diskloader", "%v", err)
	}

	target.Tracks = *tracks
	if trackID != nil {
		target.TrackID = *trackID
	}
	target.WriteProtected = readOnly
	// load the track currently under the head last, so curr_track_data
	// reflects it rather than whatever Reset left resident (spec §4.J
	// step 5, ported from disk_mount_to_emulator's track_id[qtrack] load
	// done after the whole-image conversion). LoadCurrentTrack always
	// zeroes BitPosition the way a real track-to-track step would; a
	// PRESERVE swap is not a step, so the saved position is restored
	// afterwards, same as disk_mount_to_emulator's per-track loader never
	// touching bit_position at all.
	target.LoadCurrentTrack()
	if mode == Preserve {
		target.BitPosition = saved.bitPosition
	}

	l.images[drive] = mounted{path: path, typ: entry.Type, size: entry.Size, readOnly: readOnly, loaded: true}

	if l.Boot != nil {
		l.Boot.SetBootEnabled(true)
	}
	if l.VBL != nil && l.Wheel != nil {
		l.VBL.ResetVBLTimer(l.Wheel, l.VBLTimerID)
	}

	return nil
}

// Eject flushes the drive's current track if dirty, re-initialises it,
// and clears the drive's mounted-image record.
func (l *Loader) Eject(drive int, target *floppy.Drive) error {
	if drive < 0 || drive >= DriveCount {
		return curated.Wrap("diskloader", "invalid drive index")
	}
	target.FlushCurrentTrack()
	target.Reset()
	l.images[drive] = mounted{}
	if l.Boot != nil {
		l.Boot.SetBootEnabled(false)
	}
	return nil
}

// Mounted reports the path and format of the image currently mounted in
// drive, and whether anything is mounted at all.
func (l *Loader) Mounted(drive int) (path string, typ Type, ok bool) {
	if drive < 0 || drive >= DriveCount {
		return "", TypeUnknown, false
	}
	m := l.images[drive]
	return m.path, m.typ, m.loaded
}

// loadTracks converts path's image into BDSK tracks, consulting (and
// populating) a sibling .bdsk cache file so repeated mounts of the same
// image skip reconversion, per spec §4.J step 4. The returned bool
// reports whether the format's write-back path is unsupported (WOZ1 and
// NIB, SPEC_FULL.md Open Question decision 2); Mount then marks the drive
// write-protected, so writes to it are dropped.
//
// The returned track-ID map is non-nil only for TypeWOZ, where it carries
// the image's real quarter-track -> physical-track mapping (spec §3's
// track_id[], §4.H, §6's TMAP chunk); DSK/NIB/BDSK images have no such
// chunk and leave the drive's identity mapping from Reset untouched. A
// WOZ image's TMAP chunk is re-read from the source file even on a BDSK
// cache hit, since the cache holds converted track bitstreams only, never
// the TMAP itself, and re-parsing 160 bytes is negligible next to a full
// conversion.
func loadTracks(path string, typ Type) (*[floppy.NumTracks]floppy.Track, *[floppy.MaxQTrack]byte, bool, error) {
	if typ == TypeBDSK {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, false, err
		}
		defer f.Close()
		tracks, err := floppy.ReadBDSK(f)
		return tracks, nil, false, err
	}

	readOnly := typ == TypeNIB || (typ == TypeWOZ && isWOZ1(path))
	bdskPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".bdsk"

	if typ == TypeWOZ {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, false, err
		}
		trackID, err := floppy.ConvertWOZTrackMap(data)
		if err != nil {
			return nil, nil, false, err
		}

		if f, err := os.Open(bdskPath); err == nil {
			defer f.Close()
			if cached, err := floppy.ReadBDSK(f); err == nil {
				return cached, trackID, readOnly, nil
			}
		}

		tracks, err := floppy.ConvertWOZ(data)
		if err != nil {
			return nil, nil, false, err
		}
		if out, err := os.Create(bdskPath); err == nil {
			if err := floppy.WriteBDSK(out, tracks); err != nil {
				logger.Logf(logger.Allow, "diskloader", "failed to cache %s: %v", bdskPath, err)
			}
			out.Close()
		}
		return tracks, trackID, readOnly, nil
	}

	if f, err := os.Open(bdskPath); err == nil {
		defer f.Close()
		if tracks, err := floppy.ReadBDSK(f); err == nil {
			return tracks, nil, readOnly, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, false, err
	}

	var tracks *[floppy.NumTracks]floppy.Track
	switch typ {
	case TypeDSK:
		tracks, err = floppy.ConvertDSK(data, 254, isProDOS(path))
	case TypeNIB:
		var incomplete int
		tracks, incomplete, err = floppy.ConvertNIB(data)
		if incomplete > 0 {
			logger.Logf(logger.Allow, "diskloader", "%s: %d track(s) had unrecoverable sectors", filepath.Base(path), incomplete)
		}
	default:
		return nil, nil, false, curated.Wrap("diskloader", "unsupported image format")
	}
	if err != nil {
		return nil, nil, false, err
	}

	if out, err := os.Create(bdskPath); err == nil {
		if err := floppy.WriteBDSK(out, tracks); err != nil {
			logger.Logf(logger.Allow, "diskloader", "failed to cache %s: %v", bdskPath, err)
		}
		out.Close()
	}

	return tracks, nil, readOnly, nil
}

// isWOZ1 reports whether path's image begins with the WOZ1 magic,
// distinct from WOZ2, both sharing the .woz extension.
func isWOZ1(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var header [4]byte
	if _, err := f.Read(header[:]); err != nil {
		return false
	}
	return string(header[:]) == "WOZ1"
}
