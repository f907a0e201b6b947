//go:build windows

package hotkey

import "golang.design/x/hotkey"

var modifierMap = map[string]hotkey.Modifier{
	"CTRL":  hotkey.ModCtrl,
	"SHIFT": hotkey.ModShift,
	"ALT":   hotkey.ModAlt,
	"SUPER": hotkey.ModWin,
}
