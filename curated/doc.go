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

// Package curated is a helper package for the plain Go language error type,
// used across this module by the packages whose failures need to propagate
// up through several call frames before anything decides whether to log
// them and continue (spec §7) or return them to the caller — diskloader's
// mount/scan sequence, floppy's BDSK/WOZ conversion, audio's wav-capture
// diagnostic, config's option validation, and hardware's swap-file setup.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function, or with Wrap()
// when the error is being tagged with the component that produced it (the
// convention every caller above follows). Errorf takes a formatting
// pattern and placeholder values, the same as fmt.Errorf.
//
// The Is() function can be used to check whether an error was created by the
// (Errorf() function). The Errorf() pattern is used to differntiate curated
// errors. For example:
//
//	e := curated.Wrap("diskloader", "unsupported image format")
//
//	if curated.Is(e, "diskloader: unsupported image format") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Wrap("floppy", "reading BDSK track %d: %v", 3, io.EOF)
//	f := curated.Wrap("diskloader", "%v", e)
//
//	if curated.Has(f, "floppy: reading BDSK track %d: %v") {
//		fmt.Println("true")
//	}
//
//	if curated.Is(f, "floppy: reading BDSK track %d: %v") {
//		fmt.Println("true")
//	}
//
// Note that in this example, the call to Is() fails will not print 'true'
// because error f does not match that pattern - it is "wrapped" inside the
// pattern "diskloader: %v".
//
// Component() extracts the leading "component" tag a Wrap()-built error
// carries, so a caller deciding whether to log-and-continue or propagate
// can branch on which subsystem raised it without string-matching the
// whole pattern.
//
// The IsAny() function answers whether the error was created by curated.Errorf()
// or curated.Wrap(). Put another way, it returns true if the error is
// 'curated' and false if the error is 'uncurated'. Alternatively, we can
// think of the difference as being 'expected' and 'unexpected' depending on
// how we choose to handle the result of the function call.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. The practical advantage of this is that it
// alleviates the problem of when and how to wrap curated. For example:
//
//	func Mount(path string) error {
//		err := scan(path)
//		if err != nil {
//			return curated.Wrap("diskloader", "%v", err)
//		}
//		return nil
//	}
//
//	func scan(path string) error {
//		err := stat(path)
//		if err != nil {
//			return curated.Wrap("diskloader", "%v", err)
//		}
//		return nil
//	}
//
//	func stat(path string) error {
//		return curated.Wrap("diskloader", "no such image")
//	}
//
// Calling Mount and printing the result gives:
//
//	diskloader: no such image
//
// and not:
//
//	diskloader: diskloader: no such image
//
// For the purposes of this package we think of chains as being composed of
// parts separted by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan). For example:
//
//	part 1: part 2: part 3
//
// There is no special provision for sentinal errors in the curated package but
// they are achievable in practice through the use of the Is() and Has()
// functions. Sentinal pattern should be stored as a const string, suitably
// named and commented. A Sentinal type may be introduced in the future.
package curated
