package storage

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Mem implements Provider entirely in memory. It is used by tests and by
// callers that need a throwaway journal without touching disk.
type Mem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
	mtime map[string]time.Time
}

// NewMem creates an empty in-memory provider.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
		mtime: make(map[string]time.Time),
	}
}

func normalize(p string) string {
	return strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "./")
}

// Exists reports whether a file was written at path.
func (m *Mem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[normalize(p)]
	return ok
}

// Read returns a copy of the stored bytes.
func (m *Mem) Read(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[normalize(p)]
	if !ok {
		return nil, fmt.Errorf("storage: read %s: %w", p, os.ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores content at path, implicitly creating parent directories.
func (m *Mem) Write(p string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalize(p)
	data := make([]byte, len(content))
	copy(data, content)
	m.files[key] = data
	m.mtime[key] = time.Now()
	for dir := path.Dir(key); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = struct{}{}
	}
	return nil
}

// EnsureDir records the directory; always succeeds.
func (m *Mem) EnsureDir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[normalize(p)] = struct{}{}
	return nil
}

// List returns metadata for every .md file under dir, sorted by path.
func (m *Mem) List(dir string) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := normalize(dir)
	if prefix == "." {
		prefix = ""
	}
	var out []FileInfo
	for p, data := range m.files {
		if !strings.HasSuffix(p, ".md") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		out = append(out, FileInfo{
			Path:      p,
			Checksum:  Sum(data),
			UpdatedAt: m.mtime[p],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
