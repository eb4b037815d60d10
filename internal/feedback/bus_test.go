package feedback

import "testing"

func TestDrainReturnsAndClears(t *testing.T) {
	b := New()
	b.Push(SystemOK, "welcome", nil)
	b.Push(CombatStrike, "you hit the goblin for 4", Meta{"damage": 4})

	lines := b.Drain()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1].Meta["damage"] != 4 {
		t.Fatalf("expected meta to survive the drain, got %v", lines[1].Meta)
	}

	if got := b.Drain(); got != nil {
		t.Fatalf("expected empty drain after first drain, got %v", got)
	}
}

func TestPeekDoesNotClear(t *testing.T) {
	b := New()
	b.Pushf(MoveBlocked, "a wall of %s blocks your path.", "ice")

	if len(b.Peek()) != 1 {
		t.Fatalf("expected 1 pending line")
	}
	if len(b.Peek()) != 1 {
		t.Fatalf("peek should not clear the buffer")
	}
	lines := b.Drain()
	if lines[0].Text != "a wall of ice blocks your path." {
		t.Fatalf("unexpected text: %q", lines[0].Text)
	}
}
