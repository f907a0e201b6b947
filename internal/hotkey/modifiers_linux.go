//go:build linux

package hotkey

import "golang.design/x/hotkey"

// Alt and Super are Mod1 and Mod4 on X11
var modifierMap = map[string]hotkey.Modifier{
	"CTRL":  hotkey.ModCtrl,
	"SHIFT": hotkey.ModShift,
	"ALT":   hotkey.Mod1,
	"SUPER": hotkey.Mod4,
}
