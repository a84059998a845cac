// Package cache keeps parsed trees keyed by formula text so hosts that
// re-evaluate the same formulas skip the parser. Trees are immutable, so a
// cached tree can be handed to any number of callers.
package cache

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gnoswap-labs/formula/ast"
)

type Entry struct {
	Text      string
	Node      ast.Node
	CreatedAt time.Time
}

type Cache struct {
	entries *expirable.LRU[string, Entry]
	mutex   sync.RWMutex
	last    string
}

// New returns a cache holding at most maxSize trees, each for at most
// maxAge. Zero disables the respective limit. Once full, the least recently
// used tree is dropped.
func New(maxSize int, maxAge time.Duration) *Cache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache{entries: expirable.NewLRU[string, Entry](maxSize, nil, maxAge)}
}

func key(text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(text)))
}

func (c *Cache) Set(text string, n ast.Node) {
	k := key(text)
	c.entries.Add(k, Entry{Text: text, Node: n, CreatedAt: time.Now()})

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.last = k
}

func (c *Cache) Get(text string) (ast.Node, bool) {
	entry, ok := c.entries.Get(key(text))
	if !ok {
		return nil, false
	}
	return entry.Node, true
}

// Last returns the most recently stored entry that is still cached. It does
// not count as a use.
func (c *Cache) Last() (Entry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.last == "" {
		return Entry{}, false
	}
	return c.entries.Peek(c.last)
}

// Len counts stored trees, including expired ones not yet swept.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries.Purge()
	c.last = ""
}
