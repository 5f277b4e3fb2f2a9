// Package floppy implements the Disk II floppy bitstream subsystem: a
// bit-level circular track representation, the quarter-track stepper, a
// Logic State Sequencer model, and converters between DSK/NIB/WOZ disk
// images and the internal BDSK bitstream container.
package floppy
