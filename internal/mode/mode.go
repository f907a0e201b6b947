// Package mode defines the scroll modes the indicator can be in.
package mode

// Mode is one of the closed set of input-remapping configurations.
type Mode int

const (
	// Mouse rebinds the wheel buttons with the configured mouse factor
	Mouse Mode = iota
	// Touchpad rebinds with the touchpad factor (0 stops imwheel)
	Touchpad
	// Error means imwheel was not found when the indicator started
	Error
)

// Icon identifiers shown by the indicator
const (
	IconMouse    = "input-mouse-symbolic"
	IconTouchpad = "input-touchpad-symbolic"
	IconError    = "dialog-error-symbolic"
	IconWarning  = "dialog-warning-symbolic"
)

// ValueSource looks up integer settings by key
type ValueSource interface {
	Int(key string) int
}

// Parse maps a persisted mode name to a Mode.
// Anything other than "touchpad" is treated as mouse; Error is never persisted.
func Parse(name string) Mode {
	if name == Touchpad.Name() {
		return Touchpad
	}
	return Mouse
}

// Name returns the identifier used in settings keys
func (m Mode) Name() string {
	switch m {
	case Mouse:
		return "mouse"
	case Touchpad:
		return "touchpad"
	default:
		return "error"
	}
}

func (m Mode) String() string {
	return m.Name()
}

// ValueKey is the settings key holding the remap factor for this mode
func (m Mode) ValueKey() string {
	return m.Name() + "-value"
}

// Value returns the remap factor for the mode. Error yields 0.
func (m Mode) Value(src ValueSource) int {
	switch m {
	case Mouse, Touchpad:
		return src.Int(m.ValueKey())
	default:
		return 0
	}
}

// IconName returns the icon identifier for the mode
func (m Mode) IconName() string {
	switch m {
	case Mouse:
		return IconMouse
	case Touchpad:
		return IconTouchpad
	default:
		return IconError
	}
}

// Toggle returns the successor mode. Error recovers to Touchpad.
func (m Mode) Toggle() Mode {
	switch m {
	case Mouse:
		return Touchpad
	case Touchpad:
		return Mouse
	default:
		return Touchpad
	}
}
