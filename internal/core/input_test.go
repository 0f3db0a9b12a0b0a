package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	var f InputFrame
	f.Set(ActionRotate)
	f.Set(ActionNone)
	f.Set(ActionMoveLeft)
	f.Set(ActionRotate)

	expected := []Action{ActionRotate, ActionMoveLeft, ActionRotate}
	if len(f.Actions) != len(expected) {
		t.Fatalf("Actions = %v, expected %v", f.Actions, expected)
	}
	for i, a := range expected {
		if f.Actions[i] != a {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], a)
		}
	}
	if !f.Has(ActionMoveLeft) || f.Has(ActionHold) {
		t.Error("Has() reported wrong membership")
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	var f InputFrame
	f.Set(ActionHardDrop)
	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Errorf("after Clear, Actions = %v, expected empty", f.Actions)
	}
	if !clone.Has(ActionHardDrop) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionHardDrop.String() != "HardDrop" {
		t.Errorf("ActionHardDrop.String() = %q, expected HardDrop", ActionHardDrop.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
