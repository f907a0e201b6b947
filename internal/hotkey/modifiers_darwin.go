//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var modifierMap = map[string]hotkey.Modifier{
	"CTRL":  hotkey.ModCtrl,
	"SHIFT": hotkey.ModShift,
	"ALT":   hotkey.ModOption,
	"SUPER": hotkey.ModCmd,
	"CMD":   hotkey.ModCmd,
}
