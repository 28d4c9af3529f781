package eisner

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(emit func(FeatureHandler)) []uint64 {
	var keys []uint64
	emit(func(key uint64) {
		keys = append(keys, key)
	})
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func TestDistanceBucket(t *testing.T) {
	expected := map[int]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 4, 6: 5, 10: 5, 11: 6, 40: 6}
	for d, bucket := range expected {
		assert.Equal(t, bucket, DistanceBucket(d), "distance %d", d)
	}
}

func TestFeaturizeCounts(t *testing.T) {
	m := extract(t)
	sent := corpus(t)[3]
	f := NewEdgeFeaturizer(m, sent)
	require.Equal(t, 5, f.Len())

	// 12 context (no token in between), 13 pair and twice 7 labeled
	// templates, each fired twice
	adjacent := collect(func(h FeatureHandler) { f.Featurize(2, 1, 1, h) })
	assert.Len(t, adjacent, 2*(12+13+14))

	// the between template fires once per token between the endpoints
	far := collect(func(h FeatureHandler) { f.Featurize(0, 4, 1, h) })
	assert.Len(t, far, 2*(12+3+13+14))

	extended := extract(t, WithExtendedFeatures())
	fx := NewEdgeFeaturizer(extended, sent)
	keys := collect(func(h FeatureHandler) { fx.Featurize(2, 1, 1, h) })
	assert.Len(t, keys, 2*(12+13+14+12+3*13))
}

func TestFeaturizeCoreDistinct(t *testing.T) {
	m := extract(t)
	f := NewEdgeFeaturizer(m, corpus(t)[3])
	// a left arc of distance 1 has an all zero suffix
	keys := collect(func(h FeatureHandler) { f.FeaturizeCore(1, 2, false, h) })
	require.Len(t, keys, 2*(12+13))
	for i := 1; i < len(keys); i++ {
		assert.NotEqual(t, keys[i-1], keys[i])
	}
}

func TestFeaturizeDecomposition(t *testing.T) {
	m := extract(t)
	f := NewEdgeFeaturizer(m, corpus(t)[3])
	for _, edge := range [][2]int{{2, 1}, {2, 4}, {0, 2}, {4, 3}} {
		src, tgt := edge[0], edge[1]
		isRightArc := src < tgt
		fst, snd := src, tgt
		if !isRightArc {
			fst, snd = tgt, src
		}
		whole := collect(func(h FeatureHandler) { f.Featurize(src, tgt, 2, h) })
		parts := collect(func(h FeatureHandler) {
			f.FeaturizeCore(fst, snd, isRightArc, h)
			f.FeaturizeLabeled(tgt, 2, isRightArc, true, h)
			f.FeaturizeLabeled(src, 2, isRightArc, false, h)
		})
		assert.Equal(t, whole, parts, "edge %d -> %d", src, tgt)
	}
}

func TestFeaturizeDirection(t *testing.T) {
	m := extract(t)
	f := NewEdgeFeaturizer(m, corpus(t)[0])
	right := collect(func(h FeatureHandler) { f.Featurize(1, 2, 0, h) })
	left := collect(func(h FeatureHandler) { f.Featurize(2, 1, 0, h) })
	assert.NotEqual(t, right, left)
}

func TestFeaturizeInvalidEdge(t *testing.T) {
	m := extract(t)
	f := NewEdgeFeaturizer(m, corpus(t)[0])
	assert.Panics(t, func() { f.Featurize(1, 1, 0, func(uint64) {}) })
	assert.Panics(t, func() { f.Featurize(0, 7, 0, func(uint64) {}) })
	assert.Panics(t, func() { f.FeaturizeCore(2, 1, true, func(uint64) {}) })
}

func TestFeatureVectorOf(t *testing.T) {
	m := extract(t)
	gold := corpus(t)[1]
	fv := FeatureVectorOf(m, gold)
	// every gold feature was seen during extraction: 2 -> 1 is adjacent and
	// 0 -> 2 spans one token
	assert.Equal(t, 2*(12+13+14)+2*(13+13+14), fv.Len())

	unseen := sentence(t, "Cats/NNS/2/SBJ purr/VBP/0/ROOT")
	partial := FeatureVectorOf(m, unseen)
	assert.Greater(t, partial.Len(), 0, "tag only features are shared with the corpus")
	assert.Less(t, partial.Len(), fv.Len(), "unknown forms are skipped")
}
