// Package trie is the core, holding the encoded words in a prefix tree and
// running trie-guided Levenshtein searches over them.
//
// Words enter either as strings, which are folded and encoded once at the
// boundary, or directly as alphabet.Word code sequences. Everything below the
// boundary works in code space.
//
// A Trie is not safe for concurrent mutation. Searches keep their state in a
// per-call context, so concurrent readers are fine as long as no writer runs.
package trie

import (
	"errors"
	"maps"
	"slices"

	"github.com/bastiangx/wordtrie/pkg/alphabet"
)

// ErrStopWalk ends a Walk early without being reported as a failure.
var ErrStopWalk = errors.New("stop walk")

// node is a position in the tree. label is the code of the incoming edge.
type node struct {
	label    alphabet.Code
	children map[alphabet.Code]*node
	terminal bool
}

func (n *node) child(c alphabet.Code) *node {
	if n.children == nil {
		return nil
	}
	return n.children[c]
}

// sortedLabels returns the child labels in ascending order.
func (n *node) sortedLabels() []alphabet.Code {
	if len(n.children) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(n.children))
}

// Trie stores a set of encoded words.
type Trie struct {
	root  *node
	size  int
	nodes int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: &node{label: alphabet.Sentinel}}
}

// Len returns the number of stored words.
func (t *Trie) Len() int {
	return t.size
}

// Nodes returns the number of nodes below the root.
func (t *Trie) Nodes() int {
	return t.nodes
}

// Insert folds and encodes word, then stores it. It reports whether the word
// was new. On an encoding failure nothing changes and the error is returned.
func (t *Trie) Insert(word string) (bool, error) {
	codes, err := alphabet.EncodeWord(word)
	if err != nil {
		return false, err
	}
	return t.insert(codes), nil
}

// InsertCodes stores an encoded word. A leading Sentinel is skipped; any
// other code outside the alphabet fails with alphabet.ErrInvalidNumber
// before the tree is touched.
func (t *Trie) InsertCodes(w alphabet.Word) (bool, error) {
	w = trimSentinel(w)
	for _, c := range w {
		if _, err := alphabet.Decode(c); err != nil {
			return false, err
		}
	}
	return t.insert(w), nil
}

func (t *Trie) insert(w alphabet.Word) bool {
	if len(w) == 0 {
		return false
	}
	current := t.root
	for _, c := range w {
		next := current.child(c)
		if next == nil {
			if current.children == nil {
				current.children = make(map[alphabet.Code]*node, 1)
			}
			next = &node{label: c}
			current.children[c] = next
			t.nodes++
		}
		current = next
	}
	if current.terminal {
		return false
	}
	current.terminal = true
	t.size++
	return true
}

// Delete folds and encodes word, then removes it. It reports whether a
// stored word was removed.
func (t *Trie) Delete(word string) (bool, error) {
	codes, err := alphabet.EncodeWord(word)
	if err != nil {
		return false, err
	}
	return t.delete(codes), nil
}

// DeleteCodes removes an encoded word. A leading Sentinel is skipped.
func (t *Trie) DeleteCodes(w alphabet.Word) bool {
	return t.delete(trimSentinel(w))
}

func (t *Trie) delete(w alphabet.Word) bool {
	if len(w) == 0 {
		return false
	}
	path := make([]*node, 0, len(w)+1)
	current := t.root
	path = append(path, current)
	for _, c := range w {
		current = current.child(c)
		if current == nil {
			return false
		}
		path = append(path, current)
	}
	if !current.terminal {
		return false
	}
	current.terminal = false
	t.size--

	// unlink the tail that no longer leads to a word
	for i := len(path) - 1; i > 0; i-- {
		n := path[i]
		if n.terminal || len(n.children) > 0 {
			break
		}
		parent := path[i-1]
		delete(parent.children, n.label)
		if len(parent.children) == 0 {
			parent.children = nil
		}
		t.nodes--
	}
	return true
}

// Contains reports whether word is stored. Words that cannot be encoded are
// never stored, so they report false.
func (t *Trie) Contains(word string) bool {
	codes, err := alphabet.EncodeWord(word)
	if err != nil {
		return false
	}
	return t.ContainsCodes(codes)
}

// ContainsCodes reports whether an encoded word is stored. A leading
// Sentinel is skipped.
func (t *Trie) ContainsCodes(w alphabet.Word) bool {
	w = trimSentinel(w)
	if len(w) == 0 {
		return false
	}
	current := t.root
	for _, c := range w {
		current = current.child(c)
		if current == nil {
			return false
		}
	}
	return current.terminal
}

// Walk calls fn for every stored word in ascending code order. The word
// passed to fn is only valid during the call. Returning ErrStopWalk ends the
// walk with a nil error; any other error ends it and is returned.
func (t *Trie) Walk(fn func(alphabet.Word) error) error {
	type entry struct {
		node  *node
		depth int
	}

	var prefix alphabet.Word
	stack := make([]entry, 0, 16)
	labels := t.root.sortedLabels()
	for i := len(labels) - 1; i >= 0; i-- {
		stack = append(stack, entry{t.root.children[labels[i]], 0})
	}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prefix = append(prefix[:e.depth], e.node.label)
		if e.node.terminal {
			if err := fn(prefix); err != nil {
				if errors.Is(err, ErrStopWalk) {
					return nil
				}
				return err
			}
		}

		labels := e.node.sortedLabels()
		for i := len(labels) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.node.children[labels[i]], e.depth + 1})
		}
	}
	return nil
}

// Words returns a copy of every stored word in ascending code order.
func (t *Trie) Words() []alphabet.Word {
	words := make([]alphabet.Word, 0, t.size)
	_ = t.Walk(func(w alphabet.Word) error {
		words = append(words, w.Clone())
		return nil
	})
	return words
}

// Clear drops every word.
func (t *Trie) Clear() {
	t.root = &node{label: alphabet.Sentinel}
	t.size = 0
	t.nodes = 0
}

func trimSentinel(w alphabet.Word) alphabet.Word {
	if len(w) > 0 && w[0] == alphabet.Sentinel {
		return w[1:]
	}
	return w
}
