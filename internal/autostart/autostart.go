// Package autostart provides auto-start functionality.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

const (
	desktopFileName = "wheeltoggle.desktop"
	plistFileName   = "com.wheeltoggle.agent.plist"
)

const linuxDesktopEntry = `[Desktop Entry]
Type=Application
Name=wheeltoggle
Comment=Toggle imwheel between mouse and touchpad scrolling
Exec="{{.ExecutablePath}}"
Icon=input-mouse
Terminal=false
X-GNOME-Autostart-enabled=true
`

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.wheeltoggle.agent</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>`

// Enable enables auto-start on login
func Enable() error {
	path, tmpl, err := entryPath()
	if err != nil {
		return err
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	return writeEntry(path, tmpl, execPath)
}

// Disable disables auto-start on login
func Disable() error {
	path, _, err := entryPath()
	if err != nil {
		return err
	}
	return removeEntry(path)
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	path, _, err := entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// entryPath returns the platform entry location and its template
func entryPath() (string, string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", plistFileName), macLaunchAgentPlist, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", "", err
		}
		return filepath.Join(configDir, "autostart", desktopFileName), linuxDesktopEntry, nil
	default:
		return "", "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func writeEntry(path, text, execPath string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpl, err := template.New("autostart").Parse(text)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, struct{ ExecutablePath string }{execPath})
}

func removeEntry(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
