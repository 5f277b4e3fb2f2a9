// Package timer implements the cooperative, cycle-denominated timer wheel
// of spec §4.E: a flat table of named timers whose remaining-cycle counts
// are decremented by every executed instruction and whose callbacks, once
// fired, rearm themselves by returning the next remaining count.
package timer
