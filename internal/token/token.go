// Package token provides deterministic token counting and budget parsing.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkoukk/tiktoken-go"

	"github.com/Abdulmumin1/lmfetch/internal/lmerr"
)

const cacheSize = 4096

// Counter counts tokens using a cl100k_base-compatible encoding, memoizing
// results in-memory by a content hash.
type Counter struct {
	mu    sync.Mutex
	enc   *tiktoken.Tiktoken
	cache *lru.Cache[string, int]
}

// NewCounter builds a Counter backed by the cl100k_base encoding.
func NewCounter() (*Counter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
	}
	cache, err := lru.New[string, int](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create token cache: %w", err)
	}
	return &Counter{enc: enc, cache: cache}, nil
}

// Count returns the number of tokens in text, memoized by content hash.
func (c *Counter) Count(text string) int {
	key := hashKey(text)

	c.mu.Lock()
	if n, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		return n
	}
	c.mu.Unlock()

	n := len(c.enc.Encode(text, nil, nil))

	c.mu.Lock()
	c.cache.Add(key, n)
	c.mu.Unlock()

	return n
}

// Clear releases the memoization map. Callers must invoke this at the end
// of a run to release memory — the cache is otherwise process-lifetime.
func (c *Counter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

func hashKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

var budgetPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)(k|m)?$`)

// ParseBudget parses a budget string of the form "N", "Nk", or "Nm"
// (case-insensitive) into a token count.
func ParseBudget(s string) (int, error) {
	s = strings.TrimSpace(s)
	m := budgetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("malformed budget %q: %w", s, lmerr.ErrMalformedBudget)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed budget %q: %w", s, lmerr.ErrMalformedBudget)
	}
	switch strings.ToLower(m[2]) {
	case "k":
		value *= 1000
	case "m":
		value *= 1_000_000
	}
	return int(value), nil
}
