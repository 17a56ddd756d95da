package app

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// mockFS is an in-memory FileSystem. Directories and files are
// declared up front; error maps inject failures per path.
type mockFS struct {
	dirs  map[string]bool
	files map[string]int64

	statErrs      map[string]error
	readDirErrs   map[string]error
	walkErrs      map[string]error
	walkEntryErrs map[string]error
	copyErrs      map[string]error
	mkdirErrs     map[string]error

	copies []copyRecord
	mkdirs []string
}

type copyRecord struct {
	src string
	dst string
}

func newMockFS() *mockFS {
	return &mockFS{
		dirs:          map[string]bool{},
		files:         map[string]int64{},
		statErrs:      map[string]error{},
		readDirErrs:   map[string]error{},
		walkErrs:      map[string]error{},
		walkEntryErrs: map[string]error{},
		copyErrs:      map[string]error{},
		mkdirErrs:     map[string]error{},
	}
}

func (m *mockFS) addDir(path string) {
	for path != "" {
		m.dirs[path] = true
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		path = parent
	}
}

func (m *mockFS) addFile(path string, size int64) {
	m.addDir(filepath.Dir(path))
	m.files[path] = size
}

func (m *mockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if err := m.readDirErrs[path]; err != nil {
		return nil, err
	}
	if !m.dirs[path] {
		return nil, fs.ErrNotExist
	}
	var entries []fs.DirEntry
	for _, child := range m.childrenOf(path) {
		entries = append(entries, mockDirEntry{name: filepath.Base(child), isDir: m.dirs[child]})
	}
	return entries, nil
}

func (m *mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	if err := m.walkErrs[root]; err != nil {
		return err
	}
	if !m.dirs[root] {
		return fs.ErrNotExist
	}
	var skipped string
	for _, path := range m.walkOrder(root) {
		if skipped != "" && strings.HasPrefix(path, skipped) {
			continue
		}
		isDir := m.dirs[path]
		entry := mockDirEntry{name: filepath.Base(path), isDir: isDir}
		err := fn(path, entry, m.walkEntryErrs[path])
		if err == fs.SkipDir {
			if isDir {
				skipped = path + string(filepath.Separator)
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// walkOrder returns root plus everything under it, parents first.
func (m *mockFS) walkOrder(root string) []string {
	var paths []string
	prefix := root + string(filepath.Separator)
	for path := range m.dirs {
		if path == root || strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	for path := range m.files {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (m *mockFS) childrenOf(dir string) []string {
	var children []string
	for path := range m.dirs {
		if filepath.Dir(path) == dir && path != dir {
			children = append(children, path)
		}
	}
	for path := range m.files {
		if filepath.Dir(path) == dir {
			children = append(children, path)
		}
	}
	sort.Strings(children)
	return children
}

func (m *mockFS) Stat(path string) (fs.FileInfo, error) {
	if err := m.statErrs[path]; err != nil {
		return nil, err
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), isDir: true}, nil
	}
	if size, ok := m.files[path]; ok {
		return mockFileInfo{name: filepath.Base(path), size: size}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *mockFS) Exists(path string) (bool, error) {
	if m.dirs[path] {
		return true, nil
	}
	_, ok := m.files[path]
	return ok, nil
}

func (m *mockFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := m.mkdirErrs[path]; err != nil {
		return err
	}
	m.mkdirs = append(m.mkdirs, path)
	m.addDir(path)
	return nil
}

func (m *mockFS) CopyFile(src, dst string) error {
	if err := m.copyErrs[src]; err != nil {
		return err
	}
	m.copies = append(m.copies, copyRecord{src: src, dst: dst})
	m.files[dst] = m.files[src]
	return nil
}

type mockDirEntry struct {
	name  string
	isDir bool
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode          { return 0 }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return m.size }
func (m mockFileInfo) Mode() fs.FileMode  { return 0 }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() interface{}   { return nil }

// mockRevealer records reveal requests.
type mockRevealer struct {
	opened []string
	err    error
}

func (m *mockRevealer) Reveal(path string) error {
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, path)
	return nil
}
