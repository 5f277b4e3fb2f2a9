// Package audio implements the speaker-click reconstruction mixer of
// spec §4.G: cycle-stamped 1-bit speaker toggles are turned into a
// band-limited PCM stream via a fixed-point ring buffer, optionally
// mixed with a secondary stereo source.
package audio
