package trie

import (
	"math"

	"github.com/bastiangx/wordtrie/pkg/alphabet"
)

// DefaultThreshold is the distance below which a stored word counts as close.
const DefaultThreshold = 2

// Infinity is the distance reported when no stored word was reached.
const Infinity = math.MaxInt

// Result holds the outcome of a fuzzy search.
type Result struct {
	// Distance is the smallest edit distance to any stored word, or Infinity.
	Distance int
	// Best is one stored word at Distance. Nil when nothing is stored.
	Best alphabet.Word
	// Close has every stored word whose distance is below the threshold,
	// in ascending code order.
	Close []alphabet.Word
}

// Found reports whether the search reached any stored word.
func (r Result) Found() bool {
	return r.Distance != Infinity
}

// frame is a pending node together with the DP row of its parent.
type frame struct {
	node      *node
	depth     int
	parentRow []int
}

// searchContext is the scratch state of one search. It never outlives the
// call that created it.
type searchContext struct {
	query     alphabet.Word
	threshold int
	prefix    alphabet.Word
	best      int
	bestWord  alphabet.Word
	close     []alphabet.Word
	stack     []frame
}

func newSearchContext(query alphabet.Word, threshold int) *searchContext {
	return &searchContext{
		query:     query,
		threshold: threshold,
		prefix:    make(alphabet.Word, 0, len(query)+4),
		best:      Infinity,
		stack:     make([]frame, 0, 32),
	}
}

// Search finds the stored words closest to query by Levenshtein distance
// with unit costs. Words at a distance strictly below threshold are
// collected in Result.Close. A leading Sentinel in query is skipped.
//
// The tree is walked depth first, keeping one DP row per pending node.
// Subtrees whose whole row is already at or above max(best, threshold) are
// skipped: row minima never decrease going down, so nothing below them
// could improve the best distance or join the close set.
func (t *Trie) Search(query alphabet.Word, threshold int) Result {
	ctx := newSearchContext(trimSentinel(query), threshold)
	ctx.run(t.root)
	return ctx.result()
}

// SearchString folds and encodes query before searching. Encoding failures
// are returned and no search runs.
func (t *Trie) SearchString(query string, threshold int) (Result, error) {
	codes, err := alphabet.EncodeWord(query)
	if err != nil {
		return Result{Distance: Infinity}, err
	}
	return t.Search(codes, threshold), nil
}

func (ctx *searchContext) run(root *node) {
	first := make([]int, len(ctx.query)+1)
	for j := range first {
		first[j] = j
	}
	// the root spells the empty word, which is never stored
	ctx.push(root, 0, first)

	for len(ctx.stack) > 0 {
		f := ctx.stack[len(ctx.stack)-1]
		ctx.stack = ctx.stack[:len(ctx.stack)-1]

		ctx.prefix = append(ctx.prefix[:f.depth], f.node.label)
		row, rowMin := ctx.nextRow(f.parentRow, f.node.label)

		if f.node.terminal {
			ctx.visitWord(row[len(row)-1])
		}
		if rowMin >= max(ctx.best, ctx.threshold) {
			continue
		}
		ctx.push(f.node, f.depth+1, row)
	}
}

// push queues the children of n so they pop in ascending label order.
func (ctx *searchContext) push(n *node, depth int, row []int) {
	labels := n.sortedLabels()
	for i := len(labels) - 1; i >= 0; i-- {
		ctx.stack = append(ctx.stack, frame{
			node:      n.children[labels[i]],
			depth:     depth,
			parentRow: row,
		})
	}
}

// nextRow computes the DP row after appending c to the current prefix and
// returns it with its minimum.
func (ctx *searchContext) nextRow(prev []int, c alphabet.Code) ([]int, int) {
	curr := make([]int, len(prev))
	curr[0] = prev[0] + 1
	rowMin := curr[0]

	for j := 1; j < len(curr); j++ {
		insertCost := curr[j-1] + 1
		deleteCost := prev[j] + 1
		substCost := prev[j-1]
		if ctx.query[j-1] != c {
			substCost++
		}
		curr[j] = min(insertCost, deleteCost, substCost)
		if curr[j] < rowMin {
			rowMin = curr[j]
		}
	}
	return curr, rowMin
}

func (ctx *searchContext) visitWord(distance int) {
	if distance < ctx.best {
		ctx.best = distance
		ctx.bestWord = ctx.prefix.Clone()
	}
	if distance < ctx.threshold {
		ctx.close = append(ctx.close, ctx.prefix.Clone())
	}
}

func (ctx *searchContext) result() Result {
	return Result{
		Distance: ctx.best,
		Best:     ctx.bestWord,
		Close:    ctx.close,
	}
}
