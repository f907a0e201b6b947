// Package switcher provides the toggle controller for the scroll modes.
package switcher

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"wheeltoggle/internal/mode"
)

// ErrNotInstalled is returned when toggling while imwheel was not found at startup
var ErrNotInstalled = errors.New("imwheel is not installed")

// Settings is the persisted mode and per-mode values
type Settings interface {
	CurrentMode() string
	SetCurrentMode(name string) error
	Int(key string) int
}

// Remapper applies a wheel factor using the external utility
type Remapper interface {
	IsInstalled(ctx context.Context) bool
	Apply(value int) error
}

// Switcher coordinates mode changes
type Switcher struct {
	mu        sync.Mutex
	settings  Settings
	remapper  Remapper
	installed bool
	current   mode.Mode
	icon      string

	// last attempted apply, successful or not
	attempted      bool
	attemptedMode  mode.Mode
	attemptedValue int

	// Callbacks for UI notifications
	onIcon  func(icon string)
	onError func(error)
}

// New creates a Switcher. It probes for imwheel once; the result is never
// re-checked.
func New(ctx context.Context, settings Settings, remapper Remapper) *Switcher {
	s := &Switcher{
		settings: settings,
		remapper: remapper,
	}

	s.installed = remapper.IsInstalled(ctx)
	if s.installed {
		s.current = mode.Parse(settings.CurrentMode())
	} else {
		s.current = mode.Error
		log.Warn("Switcher: imwheel not found, toggling disabled")
	}
	s.icon = s.current.IconName()

	return s
}

// SetOnIconChange sets the callback invoked with each new icon identifier
func (s *Switcher) SetOnIconChange(callback func(icon string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onIcon = callback
}

// SetOnError sets the callback for apply failures
func (s *Switcher) SetOnError(callback func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = callback
}

// Installed reports whether imwheel was found at startup
func (s *Switcher) Installed() bool {
	return s.installed
}

// Mode returns the current mode
func (s *Switcher) Mode() mode.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Icon returns the icon identifier currently displayed
func (s *Switcher) Icon() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.icon
}

// ApplyCurrent applies the current mode. It does nothing in the Error mode.
func (s *Switcher) ApplyCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.installed {
		return nil
	}
	return s.applyLocked(s.current)
}

// Activate advances to the next mode, persists it and applies it
func (s *Switcher) Activate() (mode.Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.installed {
		return s.current, ErrNotInstalled
	}

	next := s.current.Toggle()
	if err := s.settings.SetCurrentMode(next.Name()); err != nil {
		log.Warnf("Switcher: failed to save mode: %v", err)
	}
	s.current = next

	return next, s.applyLocked(next)
}

// Advance persists the successor of the stored mode without applying it.
// A running indicator watching the settings applies the change.
func Advance(settings Settings) (mode.Mode, error) {
	next := mode.Parse(settings.CurrentMode()).Toggle()
	if err := settings.SetCurrentMode(next.Name()); err != nil {
		return next, err
	}
	return next, nil
}

// Reload re-reads the persisted mode and value and applies them if they
// differ from the last apply attempt. A failed apply is not repeated.
func (s *Switcher) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.installed {
		return nil
	}

	m := mode.Parse(s.settings.CurrentMode())
	if s.attempted && m == s.attemptedMode && m.Value(s.settings) == s.attemptedValue {
		return nil
	}
	log.WithField("mode", m).Info("Switcher: settings changed, reapplying")
	s.current = m
	return s.applyLocked(m)
}

func (s *Switcher) applyLocked(m mode.Mode) error {
	value := m.Value(s.settings)
	fields := log.Fields{"mode": m, "value": value}

	s.attempted = true
	s.attemptedMode = m
	s.attemptedValue = value

	err := s.remapper.Apply(value)
	if err != nil {
		log.WithFields(fields).Errorf("Switcher: apply failed: %v", err)
		s.setIconLocked(mode.IconWarning)
		if s.onError != nil {
			s.onError(err)
		}
		return err
	}

	log.WithFields(fields).Info("Switcher: mode applied")
	s.setIconLocked(m.IconName())
	return nil
}

func (s *Switcher) setIconLocked(icon string) {
	s.icon = icon
	if s.onIcon != nil {
		s.onIcon(icon)
	}
}
