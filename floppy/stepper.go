package floppy

// NumPhases is the number of stepper magnets on a Disk II head actuator.
const NumPhases = 4

// MaxQTrack is the exclusive upper bound of valid quarter-track positions
// for a 35-track, 4-phase-per-track drive (35*4 = 140).
const MaxQTrack = 140

// phaseDelta[from][to] is the quarter-track movement produced by energising
// phase "to" while phase "from" was the most recently energised one. A
// transition between adjacent phases (mod 4) steps the head one quarter
// track in or out; energising the same or an opposite phase produces no
// movement. This table is taken verbatim from the Beneath Apple DOS /
// WOZ reference phase table (SPEC_FULL.md Open Question decision 3) —
// real controllers vary subtly in exactly which rotation direction is
// "in" vs "out", which is immaterial as long as the mapping is consistent.
var phaseDelta = [NumPhases][NumPhases]int{
	{0, +1, 0, -1},
	{-1, 0, +1, 0},
	{0, -1, 0, +1},
	{+1, 0, -1, 0},
}

// Step energises phase (0..3), moving qtrack according to phaseDelta
// relative to the previously energised phase, clamped to [0, MaxQTrack).
// lastPhase should be the phase last passed to Step, or -1 initially.
func Step(qtrack, lastPhase, phase int) (newQTrack, newLastPhase int) {
	if lastPhase < 0 {
		return qtrack, phase
	}
	delta := phaseDelta[lastPhase%NumPhases][phase%NumPhases]
	qtrack += delta
	if qtrack < 0 {
		qtrack = 0
	}
	if qtrack >= MaxQTrack {
		qtrack = MaxQTrack - 1
	}
	return qtrack, phase
}
