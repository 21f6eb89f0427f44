// Package toolcache stores downloaded installers by content hash.
package toolcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Cache keeps downloaded files under objects/<aa>/<sha256> and hands out
// named copies under tools/<sha256>/.
type Cache struct {
	dir string
}

// New creates a Cache at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	objDir := filepath.Join(dir, "objects")
	if err := os.MkdirAll(objDir, 0755); err != nil {
		return nil, fmt.Errorf("tool cache: creating %s: %w", objDir, err)
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir returns the tool cache directory. It prefers the runner's
// RUNNER_TOOL_CACHE, then XDG_CACHE_HOME, then ~/.cache.
func DefaultDir() string {
	if rtc := os.Getenv("RUNNER_TOOL_CACHE"); rtc != "" {
		return filepath.Join(rtc, "toolchain-action")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "toolchain-action")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "toolchain-action-cache")
		}
		return filepath.Join("/tmp", "toolchain-action-cache")
	}
	return filepath.Join(home, ".cache", "toolchain-action")
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Get reads the object stored under hash. An object whose content no
// longer matches its hash is deleted and Get reports a miss.
func (c *Cache) Get(hash string) ([]byte, bool, error) {
	path := c.objectPath(hash)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("tool cache: reading %s: %w", hash, err)
	}
	if ComputeHash(data) == hash {
		return data, true, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("tool cache: dropping corrupt %s: %w", hash, err)
	}
	return nil, false, nil
}

// Has reports whether an object is stored under hash. The content is not
// checked.
func (c *Cache) Has(hash string) bool {
	fi, err := os.Stat(c.objectPath(hash))
	return err == nil && fi.Mode().IsRegular()
}

// Store saves content and returns its hash. Content that is already stored
// is left alone.
func (c *Cache) Store(content []byte) (string, error) {
	hash := ComputeHash(content)
	if c.Has(hash) {
		return hash, nil
	}
	if err := replaceFile(c.objectPath(hash), content, 0644); err != nil {
		return "", fmt.Errorf("tool cache: storing %s: %w", hash, err)
	}
	return hash, nil
}

// Install copies the object stored under hash to tools/<hash>/<name> with
// the given permissions and returns the path. An existing copy is reused.
func (c *Cache) Install(hash, name string, perm os.FileMode) (string, error) {
	dest := filepath.Join(c.dir, "tools", hash, name)
	if fi, err := os.Stat(dest); err == nil && fi.Mode().IsRegular() {
		return dest, nil
	}

	data, found, err := c.Get(hash)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("tool cache: no object %s", hash)
	}
	if err := replaceFile(dest, data, perm); err != nil {
		return "", fmt.Errorf("tool cache: installing %s: %w", name, err)
	}
	return dest, nil
}

func (c *Cache) objectPath(hash string) string {
	if len(hash) < 2 {
		return filepath.Join(c.dir, "objects", hash)
	}
	return filepath.Join(c.dir, "objects", hash[:2], hash)
}

// ComputeHash returns the hex SHA256 of content.
func ComputeHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// replaceFile writes content next to path and renames it into place, so
// readers never see a partial file.
func replaceFile(path string, content []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(content); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), perm); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
