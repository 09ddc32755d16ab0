package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionHint)
	if !f.Has(ActionHint) || f.Has(ActionShuffle) {
		t.Errorf("Has() mismatch after Set(ActionHint): %v", f.Actions)
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionHint) {
		t.Error("Clear() should remove actions")
	}
	if !clone.Has(ActionHint) {
		t.Error("Clone() should not share storage")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		dx, dy int
		ok     bool
	}{
		{ActionUp, 0, -1, true},
		{ActionDown, 0, 1, true},
		{ActionLeft, -1, 0, true},
		{ActionRight, 1, 0, true},
		{ActionSelect, 0, 0, false},
	}

	for _, tt := range tests {
		dx, dy, ok := tt.action.Direction()
		if dx != tt.dx || dy != tt.dy || ok != tt.ok {
			t.Errorf("%v.Direction() = (%d, %d, %v), expected (%d, %d, %v)", tt.action, dx, dy, ok, tt.dx, tt.dy, tt.ok)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionShuffle.String() != "Shuffle" {
		t.Errorf("ActionShuffle.String() = %q, expected Shuffle", ActionShuffle.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
