package prover

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const cacheFileName = "proof_cache.gob"

type cacheEntry struct {
	Result       Result
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache remembers prover results on disk, keyed by the problem text and a
// fingerprint of the prover configuration. Errors are never cached.
type Cache struct {
	dir         string
	maxAge      time.Duration
	fingerprint string
	prover      Prover
	logger      *zap.Logger

	mutex   sync.Mutex
	entries map[string]cacheEntry
}

// NewCache wraps p. A maxAge of zero keeps entries forever.
func NewCache(dir string, maxAge time.Duration, fingerprint string, p Prover, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:         dir,
		maxAge:      maxAge,
		fingerprint: fingerprint,
		prover:      p,
		logger:      logger,
		entries:     make(map[string]cacheEntry),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

func (c *Cache) key(problem string) string {
	h := sha256.New()
	h.Write([]byte(c.fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(problem))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) get(key string) (Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		delete(c.entries, key)
		return Result{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry
	return entry.Result, true
}

func (c *Cache) set(key string, result Result) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[key] = cacheEntry{Result: result, CreatedAt: now, LastAccessed: now}
	return c.save()
}

// Prove returns a cached result for problem if there is one and otherwise
// runs the wrapped prover.
func (c *Cache) Prove(ctx context.Context, problem string) (Result, error) {
	key := c.key(problem)
	if result, ok := c.get(key); ok {
		c.logger.Debug("proof cache hit", zap.String("key", key[:12]), zap.Stringer("status", result.Outcome))
		return result, nil
	}

	result, err := c.prover.Prove(ctx, problem)
	if err != nil {
		return Result{}, err
	}
	if err := c.set(key, result); err != nil {
		c.logger.Warn("failed to update proof cache", zap.Error(err))
	}
	return result, nil
}

// Invalidate drops all entries.
func (c *Cache) Invalidate() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
	return c.save()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
