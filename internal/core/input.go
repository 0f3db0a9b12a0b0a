package core

// Action is a semantic input intent, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left, H
	ActionMoveRight        // Right, L
	ActionSoftDrop         // Down, J
	ActionRotate           // Up, K, X
	ActionHardDrop         // Space
	ActionHold             // C
	ActionPause            // P, Escape
	ActionConfirm          // Enter
	ActionBack             // B
	ActionRestart          // R
	ActionQuit             // Q, Ctrl+C
	ActionMute             // M
	ActionVolumeUp         // +
	ActionVolumeDown       // -
)

var actionNames = [...]string{
	"None", "MoveLeft", "MoveRight", "SoftDrop", "Rotate", "HardDrop", "Hold",
	"Pause", "Confirm", "Back", "Restart", "Quit", "Mute", "VolumeUp", "VolumeDown",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame collects the actions triggered during one frame, in arrival order.
// Order matters for the puzzle: "left, rotate" and "rotate, left" can end in
// different places.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
