package cmd

import (
	"io/fs"
	"os"
	"sort"
)

// FileSystem is the file access used by commands that read input tables and
// write charts or exports. Tests swap in a MemoryFileSystem.
type FileSystem interface {
	// ReadFile reads a file and returns its contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Exists checks if a path exists.
	Exists(path string) bool
}

// fsys is the filesystem commands read from and write to.
var fsys FileSystem = NewOSFileSystem()

// OSFileSystem implements FileSystem using the real OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MemoryFileSystem implements FileSystem using an in-memory map.
type MemoryFileSystem struct {
	files map[string][]byte
}

// NewMemoryFileSystem creates a new in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

func (m *MemoryFileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileSystem) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

// AddFile adds a file to the memory filesystem.
func (m *MemoryFileSystem) AddFile(path string, content []byte) {
	m.files[path] = content
}

// Paths returns the stored paths in sorted order.
func (m *MemoryFileSystem) Paths() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
