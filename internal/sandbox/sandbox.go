// Package sandbox writes untrusted source text to uniquely named files for
// detectors that only read from disk.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File is one piece of source text on disk.
type File struct {
	Path string
	Ext  string
}

// Extensions resolves the file extension of a language id.
type Extensions interface {
	Extension(lang string) (string, error)
}

// Manager creates and removes sandbox files inside a fixed scratch directory.
// Concurrent requests share the directory; file names are random UUIDs, so
// no locking is needed.
type Manager struct {
	dir  string
	exts Extensions
}

// New returns a manager writing into dir. The directory must already exist.
func New(dir string, exts Extensions) *Manager {
	return &Manager{dir: dir, exts: exts}
}

// Dir returns the scratch directory.
func (m *Manager) Dir() string { return m.dir }

// Create writes code verbatim to a new file named after lang's extension.
func (m *Manager) Create(code, lang string) (*File, error) {
	ext, err := m.exts.Extension(lang)
	if err != nil {
		return nil, err
	}
	dir, err := filepath.Abs(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox dir: %w", err)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sandbox file name: %w", err)
	}
	path := filepath.Join(dir, id.String()+ext)

	// O_EXCL: never clobber a file owned by another request
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox file: %w", err)
	}
	if _, err := f.WriteString(code); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write sandbox file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close sandbox file: %w", err)
	}
	return &File{Path: path, Ext: ext}, nil
}

// Release deletes the file. It must be called exactly once per created file.
func (m *Manager) Release(f *File) error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil {
		return fmt.Errorf("failed to remove sandbox file: %w", err)
	}
	return nil
}
