package eisner

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	nlp "github.com/andersjo/beta/nlp/types"
)

// sentence builds a sentence from space separated form/tag/head/label
// tokens. The tag doubles as coarse tag and the lowercased form as lemma.
func sentence(t testing.TB, tokens string) nlp.Sentence {
	var parsed []nlp.Token
	for _, token := range strings.Fields(tokens) {
		fields := strings.Split(token, "/")
		require.Len(t, fields, 4, "bad token %q", token)
		head, err := strconv.Atoi(fields[2])
		require.NoError(t, err)
		parsed = append(parsed, nlp.Token{
			Form:  fields[0],
			Lemma: strings.ToLower(fields[0]),
			CPOS:  fields[1][:1],
			POS:   fields[1],
			Head:  head,
			Label: nlp.DepRel(fields[3]),
		})
	}
	return nlp.NewSentence(parsed...)
}

var trainingCorpus = []string{
	"The/DT/2/NMOD dog/NN/3/SBJ barks/VBZ/0/ROOT",
	"Dogs/NNS/2/SBJ bark/VBP/0/ROOT",
	"John/NNP/2/SBJ saw/VBD/0/ROOT Mary/NNP/2/OBJ",
	"She/PRP/2/SBJ eats/VBZ/0/ROOT fresh/JJ/4/NMOD fish/NN/2/OBJ",
}

func corpus(t testing.TB) []nlp.Sentence {
	sents := make([]nlp.Sentence, len(trainingCorpus))
	for i, s := range trainingCorpus {
		sents[i] = sentence(t, s)
	}
	return sents
}

func extract(t testing.TB, opts ...ModelOption) *Model {
	m, err := ExtractModel(corpus(t), opts...)
	require.NoError(t, err)
	return m
}

// randomize gives every feature a weight drawn uniformly from [-1, 1).
func randomize(m *Model, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := range m.Weights {
		m.Weights[i] = 2*r.Float64() - 1
	}
}

// featureScore sums the weights of the features of src -> tgt.
func featureScore(m *Model, f *EdgeFeaturizer, src, tgt, label int) float64 {
	var score float64
	f.Featurize(src, tgt, label, func(key uint64) {
		if code := m.CodeForFeature(key); code >= 0 {
			score += m.Weights[code]
		}
	})
	return score
}
