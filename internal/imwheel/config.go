package imwheel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// DefaultConfigPath is where imwheel reads its rules from
const DefaultConfigPath = "~/.imwheelrc"

const configTemplate = `".*"
None,      Up,   Button4, %[1]d
None,      Down, Button5, %[1]d
Control_L, Up,   Control_L|Button4
Control_L, Down, Control_L|Button5
Shift_L,   Up,   Shift_L|Button4
Shift_L,   Down, Shift_L|Button5`

// Render builds the imwheel rules for the given wheel factor
func Render(value int) []byte {
	return []byte(fmt.Sprintf(configTemplate, value))
}

// Writer replaces the imwheel configuration file
type Writer struct {
	Path string
}

// NewWriter creates a writer for path, expanding a leading "~/"
func NewWriter(path string) (*Writer, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &Writer{Path: expanded}, nil
}

// Write replaces the file contents. Readers see either the old or the new
// rules, never a partial file.
func (w *Writer) Write(value int) error {
	if err := renameio.WriteFile(w.Path, Render(value), 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteConfig, w.Path, err)
	}
	return nil
}

// ExpandHome resolves a leading "~/" against the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
