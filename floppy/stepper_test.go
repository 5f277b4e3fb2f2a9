package floppy

import "testing"

func TestStepFirstCallJustRecordsPhase(t *testing.T) {
	qt, phase := Step(70, -1, 2)
	if qt != 70 {
		t.Fatalf("first Step call should not move the head, got qtrack=%d", qt)
	}
	if phase != 2 {
		t.Fatalf("expected lastPhase to become 2, got %d", phase)
	}
}

func TestStepAdjacentPhaseMovesOneQuarterTrack(t *testing.T) {
	qt, phase := Step(70, -1, 0)
	qt, phase = Step(qt, phase, 1)
	if qt != 71 {
		t.Fatalf("qtrack = %d, want 71", qt)
	}
	qt, _ = Step(qt, phase, 0)
	if qt != 70 {
		t.Fatalf("qtrack after reversing = %d, want 70", qt)
	}
}

func TestStepClampsAtBoundaries(t *testing.T) {
	qt, phase := Step(0, -1, 0)
	qt, _ = Step(qt, phase, 3) // would move to -1 without clamping
	if qt != 0 {
		t.Fatalf("qtrack = %d, want clamped to 0", qt)
	}

	qt, phase = Step(MaxQTrack-1, -1, 0)
	qt, _ = Step(qt, phase, 1) // would move past MaxQTrack without clamping
	if qt != MaxQTrack-1 {
		t.Fatalf("qtrack = %d, want clamped to %d", qt, MaxQTrack-1)
	}
}

func TestStepSameOrOppositePhaseDoesNotMove(t *testing.T) {
	qt, phase := Step(70, -1, 0)
	qt, phase = Step(qt, phase, 0) // same phase
	if qt != 70 {
		t.Fatalf("qtrack = %d, want unchanged at 70", qt)
	}
	qt, _ = Step(qt, phase, 2) // opposite phase
	if qt != 70 {
		t.Fatalf("qtrack = %d, want unchanged at 70", qt)
	}
}
