package fleettracker

import (
	"strings"
	"sync"
)

// ResponseCache memoizes encoded responses for the current snapshot.
// Entries are dropped as soon as a newer sequence is requested.
type ResponseCache struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string][]byte
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: map[string][]byte{}}
}

func memoKey(args ...string) string {
	return strings.Join(args, "|")
}

// Get returns the cached bytes for key at seq, calling build on a miss.
// Build errors are not cached.
func (c *ResponseCache) Get(seq uint64, key string, build func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if seq != c.seq {
		c.seq = seq
		c.entries = map[string][]byte{}
	}
	if buf, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return buf, nil
	}
	c.mu.Unlock()

	buf, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == c.seq {
		c.entries[key] = buf
	}
	return buf, nil
}

// Len reports the number of cached entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
