package loader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileSystem abstracts where snippets are read from and where compiled
// output goes (local disk, HTTP, memory).
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	ListFiles(dir string) ([]string, error)
	Exists(path string) bool
}

// CompositeFS routes paths to file systems mounted at prefixes.  Protocol
// prefixes such as "https://" are matched too.
type CompositeFS struct {
	mu          sync.RWMutex
	filesystems map[string]FileSystem
	fallback    FileSystem
}

func NewCompositeFS() *CompositeFS {
	return &CompositeFS{
		filesystems: make(map[string]FileSystem),
	}
}

func (c *CompositeFS) SetFallback(fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = fs
}

func (c *CompositeFS) Mount(prefix string, fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filesystems[prefix] = fs
}

// findFS returns the file system with the longest matching prefix.
func (c *CompositeFS) findFS(path string) FileSystem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var bestMatch string
	var bestFS FileSystem
	for prefix, fs := range c.filesystems {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(bestMatch) {
			bestMatch = prefix
			bestFS = fs
		}
	}
	if bestFS != nil {
		return bestFS
	}
	return c.fallback
}

func (c *CompositeFS) ReadFile(path string) ([]byte, error) {
	fs := c.findFS(path)
	if fs == nil {
		return nil, fmt.Errorf("no filesystem mounted for path: %s", path)
	}
	return fs.ReadFile(path)
}

func (c *CompositeFS) WriteFile(path string, data []byte) error {
	fs := c.findFS(path)
	if fs == nil {
		return fmt.Errorf("no filesystem mounted for path: %s", path)
	}
	return fs.WriteFile(path, data)
}

func (c *CompositeFS) ListFiles(dir string) ([]string, error) {
	fs := c.findFS(dir)
	if fs == nil {
		return nil, fmt.Errorf("no filesystem mounted for path: %s", dir)
	}
	return fs.ListFiles(dir)
}

func (c *CompositeFS) Exists(path string) bool {
	fs := c.findFS(path)
	return fs != nil && fs.Exists(path)
}

// LocalFS reads and writes relative to a base directory.
type LocalFS struct {
	basePath string
}

func NewLocalFS(basePath string) *LocalFS {
	return &LocalFS{basePath: basePath}
}

func (l *LocalFS) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.basePath, path)
}

func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(l.resolvePath(path))
}

func (l *LocalFS) WriteFile(path string, data []byte) error {
	fullPath := l.resolvePath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// ListFiles returns the regular files directly under dir, sorted.
func (l *LocalFS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(l.resolvePath(dir))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (l *LocalFS) Exists(path string) bool {
	_, err := os.Stat(l.resolvePath(path))
	return err == nil
}

// MemoryFS keeps files in a map.  Used by tests and the HTTP API.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
	}
}

func (m *MemoryFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.files[path]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// ListFiles returns every file whose path starts with dir, sorted.
func (m *MemoryFS) ListFiles(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var files []string
	for path := range m.files {
		if strings.HasPrefix(path, dir) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemoryFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[path]
	return exists
}

// PreloadFiles adds snippets to the memory filesystem.
func (m *MemoryFS) PreloadFiles(files map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for path, content := range files {
		m.files[path] = []byte(content)
	}
}

// HTTPFileSystem fetches snippets over HTTP, eg from a documentation site.
// Responses are cached for the lifetime of the file system.
type HTTPFileSystem struct {
	baseURL string
	client  *http.Client
	cache   sync.Map // path -> []byte
}

func NewHTTPFileSystem(baseURL string) *HTTPFileSystem {
	return &HTTPFileSystem{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTPFileSystem) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return h.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (h *HTTPFileSystem) ReadFile(path string) ([]byte, error) {
	if cached, ok := h.cache.Load(path); ok {
		return cached.([]byte), nil
	}

	url := h.url(path)
	resp, err := h.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	h.cache.Store(path, data)
	return data, nil
}

func (h *HTTPFileSystem) WriteFile(path string, data []byte) error {
	return fmt.Errorf("HTTP filesystem is read-only")
}

func (h *HTTPFileSystem) ListFiles(dir string) ([]string, error) {
	return nil, fmt.Errorf("directory listing not supported for HTTP filesystem")
}

func (h *HTTPFileSystem) Exists(path string) bool {
	resp, err := h.client.Head(h.url(path))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// DefaultFS reads local paths relative to base and URLs over HTTP.
func DefaultFS(base string) *CompositeFS {
	fs := NewCompositeFS()
	fs.SetFallback(NewLocalFS(base))
	fs.Mount("http://", NewHTTPFileSystem(""))
	fs.Mount("https://", NewHTTPFileSystem(""))
	return fs
}
