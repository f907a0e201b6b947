// Package osutils provides process and desktop helpers.
package osutils

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ErrAlreadyRunning is returned when another instance holds the lock
var ErrAlreadyRunning = errors.New("another instance is already running")

// Notify shows a desktop notification
func Notify(title, text string, warning bool) error {
	icon := zenity.InfoIcon
	if warning {
		icon = zenity.WarningIcon
	}
	return zenity.Notify(text, zenity.Title(title), icon)
}
