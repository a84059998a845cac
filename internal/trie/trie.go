package trie

import (
	"sort"
	"strings"
)

/*
Arena-based rune trie

Nodes live in one contiguous slice and refer to their children by index,
so a keyword table built once at init time costs a single growing
allocation instead of one allocation per node. The tokenizer walks it one
rune at a time and remembers the deepest terminal node it passed, which
gives a greedy longest-prefix match in a single scan.
*/

// NodeIndex represents the index of a trie node.
type NodeIndex int

// Arena is a memory pool that stores all trie nodes.
type Arena[V any] struct {
	nodes []arenaNode[V]
}

type arenaNode[V any] struct {
	children map[rune]NodeIndex
	isEnd    bool
	value    V
}

// NewArena creates a new arena holding only the root node.
func NewArena[V any]() *Arena[V] {
	arena := &Arena[V]{
		nodes: make([]arenaNode[V], 0, 256),
	}
	arena.nodes = append(arena.nodes, arenaNode[V]{children: make(map[rune]NodeIndex)})
	return arena
}

func (a *Arena[V]) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode[V]{children: make(map[rune]NodeIndex)})
	return idx
}

// Insert stores value under key, replacing any previous value.
func (a *Arena[V]) Insert(key string, value V) {
	current := NodeIndex(0)
	for _, r := range key {
		childIdx, exists := a.nodes[current].children[r]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[r] = childIdx
		}
		current = childIdx
	}
	a.nodes[current].isEnd = true
	a.nodes[current].value = value
}

// LongestPrefix returns the value of the longest key that is a prefix of
// input[start:], and the number of runes it spans.
func (a *Arena[V]) LongestPrefix(input []rune, start int) (V, int, bool) {
	var (
		best    V
		bestLen int
		found   bool
	)
	current := NodeIndex(0)
	for i := start; i < len(input); i++ {
		next, ok := a.nodes[current].children[input[i]]
		if !ok {
			break
		}
		current = next
		if a.nodes[current].isEnd {
			best, bestLen, found = a.nodes[current].value, i-start+1, true
		}
	}
	return best, bestLen, found
}

// Lookup returns the value stored under exactly key.
func (a *Arena[V]) Lookup(key string) (V, bool) {
	var zero V
	current := NodeIndex(0)
	for _, r := range key {
		next, ok := a.nodes[current].children[r]
		if !ok {
			return zero, false
		}
		current = next
	}
	if !a.nodes[current].isEnd {
		return zero, false
	}
	return a.nodes[current].value, true
}

// Keys returns every stored key in lexical order.
func (a *Arena[V]) Keys() []string {
	var keys []string
	a.collect(NodeIndex(0), nil, &keys)
	sort.Strings(keys)
	return keys
}

func (a *Arena[V]) collect(idx NodeIndex, prefix []rune, keys *[]string) {
	node := a.nodes[idx]
	if node.isEnd {
		*keys = append(*keys, string(prefix))
	}
	for r, child := range node.children {
		a.collect(child, append(prefix[:len(prefix):len(prefix)], r), keys)
	}
}

// DebugString returns a string representation of the trie for debugging purposes.
func (a *Arena[V]) DebugString() string {
	return a.debugStringNode(NodeIndex(0))
}

func (a *Arena[V]) debugStringNode(idx NodeIndex) string {
	node := a.nodes[idx]
	var sb strings.Builder

	if node.isEnd {
		sb.WriteString("*")
	}

	keys := make([]rune, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		sb.WriteRune(key)
		sb.WriteString("(")
		sb.WriteString(a.debugStringNode(node.children[key]))
		sb.WriteString(")")
	}

	return sb.String()
}

// Trie is the table type used by callers.
type Trie[V any] struct {
	arena *Arena[V]
}

// New returns an empty Trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{arena: NewArena[V]()}
}

// Insert stores value under key.
func (t *Trie[V]) Insert(key string, value V) {
	t.arena.Insert(key, value)
}

// LongestPrefix returns the value of the longest key matching input at start.
func (t *Trie[V]) LongestPrefix(input []rune, start int) (V, int, bool) {
	return t.arena.LongestPrefix(input, start)
}

// Lookup returns the value stored under exactly key.
func (t *Trie[V]) Lookup(key string) (V, bool) {
	return t.arena.Lookup(key)
}

// Keys returns every stored key in lexical order.
func (t *Trie[V]) Keys() []string {
	return t.arena.Keys()
}

// DebugString returns a string representation of the trie for debugging purposes.
func (t *Trie[V]) DebugString() string {
	return t.arena.DebugString()
}
