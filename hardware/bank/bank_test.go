package bank

import "testing"

func TestRawBankReadWrite(t *testing.T) {
	b := NewRaw(0x0000, 1, false)
	b.Poke(0x0042, 0x99)
	if got := b.Peek(0x0042); got != 0x99 {
		t.Fatalf("got %#02x, want 0x99", got)
	}
}

func TestReadOnlyBankDropsWrites(t *testing.T) {
	b := NewRawFromImage(0xC000, []byte{0xAA, 0xBB, 0xCC})
	b.Poke(0xC000, 0x00)
	if got := b.Peek(0xC000); got != 0xAA {
		t.Fatalf("read-only bank was written, got %#02x", got)
	}
}

type countingHook struct {
	accesses int
	closed   bool
	value    byte
}

func (h *countingHook) Access(addr uint16, value *byte, write bool) bool {
	h.accesses++
	if !write {
		*value = h.value
		return true
	}
	h.value = *value
	return true
}

func (h *countingHook) Close() {
	h.closed = true
}

func TestHookInterceptsBeforeStorage(t *testing.T) {
	b := NewRaw(0xC000, 1, false)
	hook := &countingHook{value: 0x55}
	b.InstallHook(hook, 0, 0)

	if got := b.Peek(0xC010); got != 0x55 {
		t.Fatalf("got %#02x, want 0x55", got)
	}
	b.Poke(0xC011, 0x77)
	if hook.value != 0x77 {
		t.Fatalf("hook did not observe write, got %#02x", hook.value)
	}
	if hook.accesses != 2 {
		t.Fatalf("expected 2 hook accesses, got %d", hook.accesses)
	}
}

func TestCloseCallsEachDistinctHookOnce(t *testing.T) {
	b := NewRaw(0xC000, 2, false)
	hook := &countingHook{}
	b.InstallHook(hook, 0, 1)
	b.Close()
	if !hook.closed {
		t.Fatal("expected hook to be closed")
	}
}

func TestAccessReportsHookCoverage(t *testing.T) {
	b := NewRaw(0x0000, 1, false)
	if b.Access(0x0000, 16, false) {
		t.Fatal("expected no hook coverage before install")
	}
	b.InstallHook(&countingHook{}, 0, 0)
	if !b.Access(0x0000, 16, false) {
		t.Fatal("expected hook coverage after install")
	}
}
