// Package dictionary is the string-facing API over the trie and the alphabet
// codec. It converts at the boundary, logs dropped mutations, caches closest
// word lookups and guards the trie with a read/write lock.
package dictionary

// Lexicon defines the interface the CLI and the IPC server talk to.
type Lexicon interface {
	// Insert stores a word. Unsupported characters leave the dictionary unchanged.
	Insert(word string) error

	// Delete removes a word. Absent words are a no-op.
	Delete(word string) error

	// Contains reports exact membership after case folding.
	Contains(word string) bool

	// Size returns the number of stored words.
	Size() int

	// Closest returns every stored word below the default threshold.
	Closest(word string) ([]string, error)

	// ClosestWithin is Closest with an explicit threshold.
	ClosestWithin(word string, threshold int) ([]string, error)

	// Suggest returns the best match along with the close words.
	Suggest(word string, threshold int) (Suggestion, error)

	// Words lists every stored word.
	Words() ([]string, error)

	// Stats returns counters about the dictionary and its cache.
	Stats() map[string]int
}

var _ Lexicon = (*Dictionary)(nil)
