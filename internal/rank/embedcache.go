package rank

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

const memCacheSize = 4096

// EmbedCache is the two-tier embedding cache: an in-memory LRU keyed by
// the SHA-256 of the embedded text, backed by a disk directory of
// individual JSON vector files. Disk writes are fire-and-forget — a
// failed write only costs a future cache miss.
type EmbedCache struct {
	mem *lru.Cache[string, []float32]
	dir string
}

// NewEmbedCache creates a cache whose disk tier lives under dir. dir is
// created lazily on first write; an empty dir disables the disk tier.
func NewEmbedCache(dir string) *EmbedCache {
	mem, _ := lru.New[string, []float32](memCacheSize)
	return &EmbedCache{mem: mem, dir: dir}
}

func hashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Get returns the cached vector for text, checking the in-memory tier
// first and falling back to disk.
func (c *EmbedCache) Get(text string) ([]float32, bool) {
	key := hashText(text)
	if v, ok := c.mem.Get(key); ok {
		return v, true
	}
	if c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(c.dir, key+".json"))
	if err != nil {
		return nil, false
	}
	var v []float32
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	c.mem.Add(key, v)
	return v, true
}

// Put stores vec for text in both tiers. The disk write is best-effort
// and never reported to the caller.
func (c *EmbedCache) Put(text string, vec []float32) {
	key := hashText(text)
	c.mem.Add(key, vec)
	if c.dir == "" {
		return
	}
	go func() {
		data, err := json.Marshal(vec)
		if err != nil {
			return
		}
		_ = os.MkdirAll(c.dir, 0o755)
		_ = os.WriteFile(filepath.Join(c.dir, key+".json"), data, 0o644)
	}()
}
