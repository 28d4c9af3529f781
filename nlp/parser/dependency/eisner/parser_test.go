package eisner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersjo/beta/alg/graph"
	nlp "github.com/andersjo/beta/nlp/types"
)

// projectiveTrees enumerates every head assignment of n nodes that forms a
// projective tree rooted at node 0.
func projectiveTrees(n int) [][]int {
	var trees [][]int
	heads := make([]int, n)
	var fill func(i int)
	fill = func(i int) {
		if i == n {
			if graph.IsTree(heads) && graph.IsProjective(heads) {
				tree := make([]int, n)
				copy(tree, heads)
				trees = append(trees, tree)
			}
			return
		}
		for h := 0; h < n; h++ {
			if h != i {
				heads[i] = h
				fill(i + 1)
			}
		}
	}
	if n > 0 {
		fill(1)
	}
	return trees
}

func treeScore(s *EdgeScorer, heads []int) float64 {
	var score float64
	for i := 1; i < len(heads); i++ {
		score += s.BestScore(heads[i], i)
	}
	return score
}

func TestProjectiveTrees(t *testing.T) {
	// Catalan-like counts of projective dependency trees rooted at 0
	for n, count := range map[int]int{1: 1, 2: 1, 3: 3, 4: 12, 5: 55} {
		assert.Len(t, projectiveTrees(n), count, "n = %d", n)
	}
}

func TestParseOptimal(t *testing.T) {
	m := extract(t)
	sents := []nlp.Sentence{
		sentence(t, "Dogs/NNS/2/SBJ bark/VBP/0/ROOT"),
		sentence(t, "The/DT/2/NMOD dog/NN/3/SBJ barks/VBZ/0/ROOT"),
		sentence(t, "She/PRP/2/SBJ eats/VBZ/0/ROOT fresh/JJ/4/NMOD fish/NN/2/OBJ"),
		sentence(t, "John/NNP/2/SBJ saw/VBD/0/ROOT the/DT/4/NMOD dog/NN/2/OBJ today/RB/2/ADV"),
	}
	parser := NewParser(m)
	for seed := int64(0); seed < 5; seed++ {
		randomize(m, seed)
		for _, sent := range sents {
			scorer := NewEdgeScorer(m, sent)
			best := math.Inf(-1)
			for _, heads := range projectiveTrees(len(sent)) {
				best = math.Max(best, treeScore(scorer, heads))
			}

			parsed, score := parser.ParseWithScore(sent.Unparsed())
			assert.InDelta(t, best, score, 1e-9, "seed %d sentence %v", seed, sent.Tokens())

			heads := parsed.Heads()
			require.True(t, graph.IsTree(heads), "%v", heads)
			require.True(t, graph.IsProjective(heads), "%v", heads)
			assert.InDelta(t, score, treeScore(scorer, heads), 1e-9)
			for i := 1; i < len(parsed); i++ {
				assert.Equal(t, m.LabelForCode(scorer.BestLabel(heads[i], i)), parsed[i].Label)
			}
		}
	}
}

func TestParseTies(t *testing.T) {
	m := extract(t)
	// with zero weights every tree scores 0 and the first split point wins
	// everywhere, which chains every token to its left neighbour
	parsed, score := NewParser(m).ParseWithScore(corpus(t)[3].Unparsed())
	assert.Equal(t, 0.0, score)
	assert.Equal(t, []int{0, 0, 1, 2, 3}, parsed.Heads())
	for _, label := range parsed.Labels() {
		assert.Equal(t, m.DefaultLabel(), label)
	}
}

func TestParseSingleToken(t *testing.T) {
	m := extract(t)
	randomize(m, 3)
	root := nlp.NewSentence()
	parsed, score := NewParser(m).ParseWithScore(root)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, nlp.NewSentence(), parsed)
}

func TestParseKeepsTokens(t *testing.T) {
	m := extract(t)
	randomize(m, 5)
	gold := corpus(t)[2]
	parsed := Parse(m, gold.Unparsed())
	for i := range gold {
		assert.Equal(t, gold[i].Form, parsed[i].Form)
		assert.Equal(t, gold[i].POS, parsed[i].POS)
		assert.Equal(t, gold[i].ID, parsed[i].ID)
	}
	assert.Equal(t, 0, parsed[0].Head)
}

func TestParseAll(t *testing.T) {
	m := extract(t)
	randomize(m, 9)
	parser := NewParser(m)

	var sequential, concurrent []nlp.Sentence
	for i := 0; i < 6; i++ {
		for _, sent := range corpus(t) {
			sequential = append(sequential, parser.Parse(sent.Unparsed()))
			concurrent = append(concurrent, sent.Unparsed())
		}
	}
	parsed := parser.ParseAll(concurrent, 3)
	assert.Equal(t, sequential, parsed)
}
