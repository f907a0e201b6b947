// Package config provides the settings store for the indicator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"wheeltoggle/internal/imwheel"
)

// Settings keys
const (
	KeyCurrentMode   = "current-mode"
	KeyMouseValue    = "mouse-value"
	KeyTouchpadValue = "touchpad-value"
	KeyRCPath        = "rc-path"
	KeyProbeCommand  = "probe-command"
	KeyRebindCommand = "rebind-command"
	KeyQuitCommand   = "quit-command"
	KeyHotkey        = "hotkey"
	KeyNotifications = "notifications"
	KeyLogLevel      = "log-level"
)

// Manager handles loading and saving settings
type Manager struct {
	mu         sync.Mutex
	configPath string
	v          *viper.Viper
}

// NewManager creates a settings manager backed by path.
// An empty path selects the default location under the user config directory.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Manager{
		configPath: path,
		v:          newViper(path),
	}, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyCurrentMode, "mouse")
	v.SetDefault(KeyMouseValue, 3)
	v.SetDefault(KeyTouchpadValue, 0)
	v.SetDefault(KeyRCPath, imwheel.DefaultConfigPath)
	v.SetDefault(KeyProbeCommand, imwheel.DefaultProbeCommand)
	v.SetDefault(KeyRebindCommand, imwheel.DefaultRebindCommand)
	v.SetDefault(KeyQuitCommand, imwheel.DefaultQuitCommand)
	v.SetDefault(KeyHotkey, "")
	v.SetDefault(KeyNotifications, true)
	v.SetDefault(KeyLogLevel, "info")
}

// defaultConfigPath returns the path to the settings file
func defaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "wheeltoggle", "settings.yaml"), nil
}

// Path returns the settings file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the settings from disk. A missing file leaves the defaults in place.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadLocked()
}

// loadLocked swaps in a freshly read store, so values set before a save never
// shadow later edits of the file.
func (m *Manager) loadLocked() error {
	v := newViper(m.configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			m.v = v
			return nil
		}
		return fmt.Errorf("failed to read settings %s: %w", m.configPath, err)
	}
	m.v = v
	return nil
}

// Save writes the settings to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	data, err := yaml.Marshal(m.v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	// Replace rather than truncate, so the watcher never reads a partial file.
	if err := renameio.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", m.configPath, err)
	}
	return m.loadLocked()
}

// CurrentMode returns the persisted mode name
func (m *Manager) CurrentMode() string {
	return m.String(KeyCurrentMode)
}

// SetCurrentMode persists the mode name
func (m *Manager) SetCurrentMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.Set(KeyCurrentMode, name)
	return m.saveLocked()
}

// Int returns an integer setting
func (m *Manager) Int(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.GetInt(key)
}

// String returns a string setting
func (m *Manager) String(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.GetString(key)
}

// Bool returns a boolean setting
func (m *Manager) Bool(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.GetBool(key)
}

// Commands returns the imwheel command lines
func (m *Manager) Commands() imwheel.Commands {
	return imwheel.Commands{
		Probe:  m.String(KeyProbeCommand),
		Rebind: m.String(KeyRebindCommand),
		Quit:   m.String(KeyQuitCommand),
	}
}
