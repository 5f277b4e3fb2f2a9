package timer

// Callback is a timer's payload. Its return value becomes the timer's new
// remaining cycle count (spec §4.E); returning 0 disables the timer until
// a later Set call gives it a positive value.
type Callback func() int64

type entry struct {
	name      string
	remaining int64
	cb        Callback
	active    bool
}

// Wheel is the flat table of named, cycle-denominated timers described in
// spec §4.E. Timers are registered once at init and live for the lifetime
// of the emulator; only their remaining count mutates afterwards.
type Wheel struct {
	entries []entry
}

// New returns an empty timer wheel.
func New() *Wheel {
	return &Wheel{}
}

// Register adds a new timer with the given initial remaining cycle count
// and returns its id. Ids are assigned in registration order starting at
// 0, so same-cycle firing order (spec §4.E) falls naturally out of
// iterating entries in id order.
func (w *Wheel) Register(initialRemaining int64, name string, cb Callback) int {
	id := len(w.entries)
	w.entries = append(w.entries, entry{
		name:      name,
		remaining: initialRemaining,
		cb:        cb,
		active:    initialRemaining > 0,
	})
	return id
}

// Remaining reports the current remaining cycle count of the timer with
// the given id.
func (w *Wheel) Remaining(id int) int64 {
	return w.entries[id].remaining
}

// Name reports the timer's registered label, used in diagnostic logging.
func (w *Wheel) Name(id int) string {
	return w.entries[id].name
}

// Set forces the timer's remaining count, arming it if the new value is
// positive or disabling it if zero.
func (w *Wheel) Set(id int, remaining int64) {
	e := &w.entries[id]
	e.remaining = remaining
	e.active = remaining > 0
}

// Advance decrements every active timer's remaining count by cycles
// (already scaled by the caller for `speed`, spec §4.E) and fires any
// callback whose remaining count falls to zero or below, in registration
// order. A callback that consumes only part of the elapsed cycles before
// rearming is advanced again by the leftover within the same call, so a
// multi-cycle instruction cannot skip a timer that should have fired
// twice.
func (w *Wheel) Advance(cycles int64) {
	for i := range w.entries {
		e := &w.entries[i]
		if !e.active {
			continue
		}
		left := cycles
		e.remaining -= left
		for e.remaining <= 0 && e.active {
			overrun := -e.remaining
			e.remaining = e.cb()
			e.active = e.remaining > 0
			if !e.active || overrun == 0 {
				break
			}
			e.remaining -= overrun
		}
	}
}
