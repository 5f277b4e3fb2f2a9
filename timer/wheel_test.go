package timer

import "testing"

func TestRegisterReturnsSequentialIDs(t *testing.T) {
	w := New()
	a := w.Register(10, "a", func() int64 { return 10 })
	b := w.Register(20, "b", func() int64 { return 20 })
	if a != 0 || b != 1 {
		t.Fatalf("got ids %d, %d, want 0, 1", a, b)
	}
}

func TestAdvanceFiresAtZero(t *testing.T) {
	w := New()
	fired := false
	id := w.Register(5, "t", func() int64 {
		fired = true
		return 0
	})
	w.Advance(5)
	if !fired {
		t.Fatal("expected callback to fire")
	}
	if w.Remaining(id) != 0 {
		t.Fatalf("got remaining %d, want 0", w.Remaining(id))
	}
}

func TestReturnValueRearmsTimer(t *testing.T) {
	w := New()
	calls := 0
	id := w.Register(3, "t", func() int64 {
		calls++
		return 3
	})
	w.Advance(3)
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
	if w.Remaining(id) != 3 {
		t.Fatalf("got remaining %d, want 3 after rearm", w.Remaining(id))
	}
	w.Advance(3)
	if calls != 2 {
		t.Fatalf("got %d calls, want 2", calls)
	}
}

func TestZeroRemainingDisablesUntilSet(t *testing.T) {
	w := New()
	calls := 0
	id := w.Register(2, "t", func() int64 {
		calls++
		return 0
	})
	w.Advance(2)
	w.Advance(1000)
	if calls != 1 {
		t.Fatalf("got %d calls, want 1 (timer should stay disabled)", calls)
	}
	w.Set(id, 5)
	w.Advance(5)
	if calls != 2 {
		t.Fatalf("got %d calls after re-arm, want 2", calls)
	}
}

func TestOverrunWithinOneAdvanceFiresTwice(t *testing.T) {
	w := New()
	calls := 0
	w.Register(2, "t", func() int64 {
		calls++
		return 2
	})
	// a single instruction worth 7 cycles should fire the 2-cycle timer
	// more than once, carrying the leftover into the rearmed count.
	w.Advance(7)
	if calls < 3 {
		t.Fatalf("got %d calls, want at least 3 for a 7-cycle advance on a 2-cycle timer", calls)
	}
}

func TestSameCycleFiringOrderIsRegistrationOrder(t *testing.T) {
	w := New()
	var order []string
	w.Register(1, "first", func() int64 {
		order = append(order, "first")
		return 1
	})
	w.Register(1, "second", func() int64 {
		order = append(order, "second")
		return 1
	})
	w.Advance(1)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("got order %v, want [first second]", order)
	}
}
