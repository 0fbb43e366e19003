package catalogue

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DefaultCacheTTL is how long a cached catalogue is reused.
const DefaultCacheTTL = 24 * time.Hour

const (
	cacheDirPerm  = 0o700
	cacheFilePerm = 0o600
	cacheFileExt  = ".catalogue"
)

// Digest returns the hex-encoded BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Cache stores downloaded catalogues on disk, one file per source URL.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a cache in dir. Entries older than ttl are ignored.
// The directory is created on the first Put.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl, now: time.Now}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file that caches the given source URL.
func (c *Cache) Path(sourceURL string) string {
	return filepath.Join(c.dir, Digest([]byte(sourceURL))+cacheFileExt)
}

// Get returns the cached document for sourceURL. The second result is false
// on a miss or an expired entry.
func (c *Cache) Get(sourceURL string) ([]byte, bool, error) {
	path := c.Path(sourceURL)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat cache entry: %w", err)
	}
	if c.ttl > 0 && c.now().Sub(info.ModTime()) > c.ttl {
		return nil, false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a digest
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return data, true, nil
}

// Put stores data for sourceURL, replacing any previous entry.
func (c *Cache) Put(sourceURL string, data []byte) error {
	if err := os.MkdirAll(c.dir, cacheDirPerm); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "download-*")
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // removed after rename anyway

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Chmod(cacheFilePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(sourceURL)); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
