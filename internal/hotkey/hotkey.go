// Package hotkey registers a global keyboard shortcut as an activation source.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.design/x/hotkey"
)

// ErrInvalidBinding is returned for bindings that cannot be parsed
var ErrInvalidBinding = errors.New("invalid hotkey binding")

var keyMap = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"SPACE": hotkey.KeySpace,
}

// ParseBinding converts a string like "Ctrl+Alt+W" into modifiers and a key.
// At least one modifier is required.
func ParseBinding(binding string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToUpper(binding), "+")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("%w: %q (need modifier+key)", ErrInvalidBinding, binding)
	}

	key, ok := keyMap[parts[len(parts)-1]]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown key %q", ErrInvalidBinding, parts[len(parts)-1])
	}

	mods := make([]hotkey.Modifier, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierMap[p]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalidBinding, p)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// Manager handles global hotkey registration
type Manager struct {
	mu      sync.Mutex
	hotkeys []*registeredHotkey
}

type registeredHotkey struct {
	hk       *hotkey.Hotkey
	original string
	done     chan struct{}
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{}
}

// Register grabs the binding globally and runs callback on each key press
func (m *Manager) Register(binding string, callback func()) error {
	if binding == "" {
		return nil
	}

	mods, key, err := ParseBinding(binding)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %s: %w", binding, err)
	}

	reg := &registeredHotkey{hk: hk, original: binding, done: make(chan struct{})}
	m.mu.Lock()
	m.hotkeys = append(m.hotkeys, reg)
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-hk.Keydown():
				log.Debugf("Hotkey triggered: %s", reg.original)
				callback()
			case <-reg.done:
				return
			}
		}
	}()
	return nil
}

// Clear unregisters all hotkeys
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, reg := range m.hotkeys {
		close(reg.done)
		if err := reg.hk.Unregister(); err != nil {
			log.Warnf("Hotkey: failed to unregister %s: %v", reg.original, err)
		}
	}
	m.hotkeys = nil
}
