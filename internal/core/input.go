package core

// Action represents a semantic game action, abstracted from physical key presses.
// The artillery shell maps held keys to aim adjustments; the game core only ever
// sees these high-level intents.
type Action int

const (
	ActionNone       Action = iota
	ActionAngleLeft         // Left arrow, A - rotate the barrel toward 180
	ActionAngleRight        // Right arrow, D - rotate the barrel toward 0
	ActionPowerUp           // Up arrow, W - increase shot power
	ActionPowerDown         // Down arrow, S - decrease shot power
	ActionFire              // Space - commit the shot
	ActionNextWeapon        // Tab, ] - cycle the weapon selection forward
	ActionPrevWeapon        // [ - cycle the weapon selection backward
	ActionConfirm           // Enter - confirm (start round, buy in the shop)
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - start a new run after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause the shell's tick loop
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAngleLeft:
		return "AngleLeft"
	case ActionAngleRight:
		return "AngleRight"
	case ActionPowerUp:
		return "PowerUp"
	case ActionPowerDown:
		return "PowerDown"
	case ActionFire:
		return "Fire"
	case ActionNextWeapon:
		return "NextWeapon"
	case ActionPrevWeapon:
		return "PrevWeapon"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
