// Package dotdir resolves the .ssecodec/ directory that holds persistent
// CLI configuration.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the ssecodec directory.
	DirName = ".ssecodec"
)

type Manager struct {
	// home overrides os.UserHomeDir, for tests.
	home string
}

func NewManager() *Manager {
	return &Manager{}
}

// NewManagerWithHome returns a Manager that treats home as the user's home
// directory.
func NewManagerWithHome(home string) *Manager {
	return &Manager{home: home}
}

// Target returns the absolute path of the .ssecodec/ directory to use.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.ssecodec/ dir
//  3. Home ~/.ssecodec/ dir
//
// Target does not create the directory; call Ensure before writing to it.
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, DirName)

	default:
		home, err := m.homeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}

	return filepath.Abs(dir)
}

// Ensure creates dir (and parents) if it does not exist yet.
func (m *Manager) Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ssecodec directory %s: %w", dir, err)
	}
	return nil
}

func (m *Manager) homeDir() (string, error) {
	if m.home != "" {
		return m.home, nil
	}
	return os.UserHomeDir()
}

// localDirExists checks whether a .ssecodec/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, DirName))
	return err == nil && info.IsDir()
}
