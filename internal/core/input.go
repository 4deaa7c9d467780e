package core

// Action represents a semantic player intent, abstracted from physical key
// presses and mouse clicks.
type Action int

const (
	ActionNone       Action = iota
	ActionFlipLeft          // Left arrow, A
	ActionFlipRight         // Right arrow, D
	ActionStart             // Space - start a game or serve the next ball
	ActionLaunch            // Mouse click - kick the ball in play
	ActionReset             // R - back to the ready state
	ActionQuit              // Q, Ctrl+C
	ActionScreenshot        // Ctrl+S - dump the current frame to a file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlipLeft:
		return "FlipLeft"
	case ActionFlipRight:
		return "FlipRight"
	case ActionStart:
		return "Start"
	case ActionLaunch:
		return "Launch"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
