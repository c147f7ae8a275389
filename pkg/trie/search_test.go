package trie

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrie(t testing.TB, words ...string) *Trie {
	t.Helper()
	tr := New()
	for _, w := range words {
		_, err := tr.Insert(w)
		require.NoError(t, err)
	}
	return tr
}

func strs(words []alphabet.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

func TestSearchClosest(t *testing.T) {
	tr := newTrie(t, "cat", "car", "cart", "dog")

	testCases := []struct {
		query    string
		close    []string
		distance int
	}{
		{"cat", []string{"CAR", "CART", "CAT"}, 0},
		{"bat", []string{"CAT"}, 1},
		{"zzzz", nil, 4},
		{"dg", []string{"DOG"}, 1},
		{"carts", []string{"CART"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			res, err := tr.SearchString(tc.query, DefaultThreshold)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.close, strs(res.Close))
			assert.Equal(t, tc.distance, res.Distance)
			require.True(t, res.Found())
			assert.Equal(t, tc.distance, Distance(mustEncode(t, tc.query), res.Best))
		})
	}
}

func TestSearchIncludesStoredQuery(t *testing.T) {
	tr := newTrie(t, "λέξη", "λεξεις")
	res, err := tr.SearchString("ΛΕΞΗ", DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Distance)
	assert.Equal(t, "ΛΕΞΗ", res.Best.String())
	assert.Contains(t, strs(res.Close), "ΛΕΞΗ")
}

func TestSearchEmptyTrie(t *testing.T) {
	tr := New()
	for _, q := range []string{"", "a", "word"} {
		res, err := tr.SearchString(q, DefaultThreshold)
		require.NoError(t, err)
		assert.False(t, res.Found())
		assert.Equal(t, Infinity, res.Distance)
		assert.Nil(t, res.Best)
		assert.Empty(t, res.Close)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	tr := newTrie(t, "A", "BB", "CCC")
	res := tr.Search(nil, DefaultThreshold)
	assert.Equal(t, 1, res.Distance)
	assert.Equal(t, "A", res.Best.String())
	assert.Equal(t, []string{"A"}, strs(res.Close))

	res = tr.Search(alphabet.Word{alphabet.Sentinel}, 3)
	assert.Equal(t, []string{"A", "BB"}, strs(res.Close))
}

func TestSearchInvalidQuery(t *testing.T) {
	tr := newTrie(t, "word")
	res, err := tr.SearchString("w@rd", DefaultThreshold)
	assert.ErrorIs(t, err, alphabet.ErrInvalidCharacter)
	assert.False(t, res.Found())
}

func TestSearchThreshold(t *testing.T) {
	tr := newTrie(t, "kitten", "sitting", "mitten", "bitter")

	res, err := tr.SearchString("kitten", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Close, "threshold 0 collects nothing")
	assert.Equal(t, 0, res.Distance)

	res, err = tr.SearchString("kitten", 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KITTEN", "MITTEN", "BITTER"}, strs(res.Close))

	res, err = tr.SearchString("kitten", 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KITTEN", "MITTEN", "BITTER", "SITTING"}, strs(res.Close))
}

func TestSearchDoesNotMutate(t *testing.T) {
	tr := newTrie(t, "one", "two", "three")
	nodes, size := tr.Nodes(), tr.Len()
	for i := 0; i < 3; i++ {
		_, err := tr.SearchString("tree", DefaultThreshold)
		require.NoError(t, err)
	}
	assert.Equal(t, nodes, tr.Nodes())
	assert.Equal(t, size, tr.Len())
}

// bruteForce scans every stored word with the reference distance.
func bruteForce(tr *Trie, query alphabet.Word, threshold int) (int, []string) {
	best := Infinity
	var closeWords []string
	for _, w := range tr.Words() {
		d := Distance(query, w)
		best = min(best, d)
		if d < threshold {
			closeWords = append(closeWords, w.String())
		}
	}
	return best, closeWords
}

func TestSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	letters := []rune("ABCDΑΒΓ12")
	randomWord := func(maxLen int) string {
		n := rng.IntN(maxLen + 1)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = letters[rng.IntN(len(letters))]
		}
		return string(rs)
	}

	for round := 0; round < 20; round++ {
		tr := New()
		for i := 0; i < 150; i++ {
			_, err := tr.Insert(randomWord(7))
			require.NoError(t, err)
		}

		for q := 0; q < 25; q++ {
			query := mustEncode(t, randomWord(8))
			threshold := 1 + rng.IntN(3)

			res := tr.Search(query, threshold)
			wantDist, wantClose := bruteForce(tr, query, threshold)

			require.Equal(t, wantDist, res.Distance, "query %s", query)
			if res.Found() {
				require.Equal(t, wantDist, Distance(query, res.Best))
			}
			require.ElementsMatch(t, wantClose, strs(res.Close), "query %s threshold %d", query, threshold)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"book", "back", 2},
		{"book", "books", 1},
		{"hello", "hallo", 1},
		{"λέξη", "λεξη", 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			assert.Equal(t, tc.want, Levenshtein([]rune(tc.a), []rune(tc.b)))
			assert.Equal(t, tc.want, Levenshtein([]rune(tc.b), []rune(tc.a)))
		})
	}
}

func BenchmarkSearch(b *testing.B) {
	tr := New()
	for i := 0; i < 20000; i++ {
		if _, err := tr.Insert(fmt.Sprintf("WORD%d", i)); err != nil {
			b.Fatal(err)
		}
	}
	inputs := make([]alphabet.Word, 0, 5)
	for _, s := range []string{"wrd123", "word1", "wordd2", "woord3", "wird4"} {
		inputs = append(inputs, mustEncode(b, s))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Search(inputs[i%len(inputs)], DefaultThreshold)
	}
}

func BenchmarkInsertDelete(b *testing.B) {
	tr := New()
	words := make([]string, 1000)
	for i := range words {
		words[i] = fmt.Sprintf("ΛΕΞΗ%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := words[i%len(words)]
		_, _ = tr.Insert(w)
		_, _ = tr.Delete(w)
	}
}
