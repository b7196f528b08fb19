package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest is the cache key: SHA-256 of an artifact file's raw bytes.
type Digest [sha256.Size]byte

// DigestOf hashes raw artifact bytes into a cache key.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// DiskCache stores decoded artifacts on disk keyed by content digest, so
// unchanged artifacts skip JSON decoding on the next build. The cache is
// never load-bearing: any failure degrades to a miss and a re-decode.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema   uint16
	Analysis Analysis
}

// OpenDiskCache initializes a disk cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	// "artifacts" subdir keeps the cache root readable and easy to sweep.
	return filepath.Join(c.dir, "artifacts", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a decoded artifact into the cache. The write is atomic:
// encode to a temp file, then rename over the final path.
func (c *DiskCache) Put(key Digest, a *Analysis) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{Schema: cacheSchemaVersion, Analysis: *a}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get looks up a decoded artifact by content digest. A missing, corrupt
// or schema-skewed entry is a miss, never an error.
func (c *DiskCache) Get(key Digest) (*Analysis, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &payload.Analysis, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "artifacts"))
}
