package dictionary

import (
	"sync"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/alphabet"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// DefaultCacheSize is the number of closest-word answers kept by New.
const DefaultCacheSize = 256

// Suggestion is the answer to a fuzzy lookup.
type Suggestion struct {
	Query    string
	Best     string
	Distance int
	Close    []string
	Found    bool
}

// Dictionary stores words and answers exact and approximate lookups.
// It is safe for concurrent use.
type Dictionary struct {
	trie      *trie.Trie
	threshold int
	cache     *resultCache
	logger    *log.Logger
	mu        sync.RWMutex
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithThreshold sets the default distance threshold used by Closest.
func WithThreshold(threshold int) Option {
	return func(d *Dictionary) {
		d.threshold = threshold
	}
}

// WithCacheSize sets how many closest-word answers are cached. 0 disables the cache.
func WithCacheSize(size int) Option {
	return func(d *Dictionary) {
		d.cache = newResultCache(size)
	}
}

// WithLogger sets where dropped mutations are reported.
func WithLogger(l *log.Logger) Option {
	return func(d *Dictionary) {
		d.logger = l
	}
}

// New creates an empty Dictionary.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		trie:      trie.New(),
		threshold: trie.DefaultThreshold,
		cache:     newResultCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.New("dict")
	}
	return d
}

// NewFromConfig creates an empty Dictionary from the [dict] config section.
// Later options override the config.
func NewFromConfig(cfg config.DictConfig, opts ...Option) *Dictionary {
	base := []Option{WithThreshold(cfg.Threshold), WithCacheSize(cfg.CacheSize)}
	return New(append(base, opts...)...)
}

// Threshold returns the default threshold of Closest.
func (d *Dictionary) Threshold() int {
	return d.threshold
}

// Insert stores word. If word holds a character outside the alphabet the
// dictionary is left unchanged, a warning is logged and the error returned.
func (d *Dictionary) Insert(word string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	added, err := d.trie.Insert(word)
	if err != nil {
		d.logger.Warn("Insert skipped", "word", word, "err", err)
		return err
	}
	if added {
		d.cache.Reset()
	}
	return nil
}

// Delete removes word. Failures are handled like Insert.
func (d *Dictionary) Delete(word string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed, err := d.trie.Delete(word)
	if err != nil {
		d.logger.Warn("Delete skipped", "word", word, "err", err)
		return err
	}
	if removed {
		d.cache.Reset()
	}
	return nil
}

// Contains reports whether word is stored. Unencodable words report false.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trie.Contains(word)
}

// Size returns the number of stored words.
func (d *Dictionary) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trie.Len()
}

// Closest returns the stored words within the default threshold of word,
// the word itself included when stored. Results are in alphabet order and
// hold no duplicates. Errors wrap alphabet.ErrInvalidCharacter for a bad
// query and alphabet.ErrInvalidNumber for an undecodable trie path.
func (d *Dictionary) Closest(word string) ([]string, error) {
	return d.ClosestWithin(word, d.threshold)
}

// ClosestWithin is Closest with an explicit threshold.
func (d *Dictionary) ClosestWithin(word string, threshold int) ([]string, error) {
	key := cacheKey(threshold, alphabet.FoldString(word))

	d.mu.RLock()
	defer d.mu.RUnlock()

	if words, ok := d.cache.Get(key); ok {
		return words, nil
	}

	res, err := d.trie.SearchString(word, threshold)
	if err != nil {
		return nil, err
	}
	words, err := decodeAll(res.Close)
	if err != nil {
		return nil, err
	}
	d.cache.Put(key, words)
	return words, nil
}

// Suggest returns the best match for word together with the close words.
// Found is false when the dictionary is empty.
func (d *Dictionary) Suggest(word string, threshold int) (Suggestion, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := Suggestion{Query: word, Distance: trie.Infinity}
	res, err := d.trie.SearchString(word, threshold)
	if err != nil {
		return s, err
	}
	if s.Close, err = decodeAll(res.Close); err != nil {
		return s, err
	}
	if !res.Found() {
		return s, nil
	}
	if s.Best, err = alphabet.DecodeWord(res.Best); err != nil {
		return s, err
	}
	s.Distance = res.Distance
	s.Found = true
	return s, nil
}

// MinimumDistance returns the smallest edit distance between word and any
// stored word, or trie.Infinity when the dictionary is empty.
func (d *Dictionary) MinimumDistance(word string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	// threshold 0 skips collecting close words
	res, err := d.trie.SearchString(word, 0)
	if err != nil {
		return trie.Infinity, err
	}
	return res.Distance, nil
}

// Words lists every stored word in alphabet order.
func (d *Dictionary) Words() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	words := make([]string, 0, d.trie.Len())
	err := d.trie.Walk(func(w alphabet.Word) error {
		s, err := alphabet.DecodeWord(w)
		if err != nil {
			return err
		}
		words = append(words, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Clear drops every word.
func (d *Dictionary) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trie.Clear()
	d.cache.Reset()
}

// Stats returns counters about the dictionary and its cache.
func (d *Dictionary) Stats() map[string]int {
	d.mu.RLock()
	stats := map[string]int{
		"totalWords": d.trie.Len(),
		"nodes":      d.trie.Nodes(),
		"threshold":  d.threshold,
	}
	d.mu.RUnlock()

	for k, v := range d.cache.Stats() {
		stats[k] = v
	}
	return stats
}

func decodeAll(words []alphabet.Word) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		s, err := alphabet.DecodeWord(w)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
