package eisner

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nlp "github.com/andersjo/beta/nlp/types"
)

func TestExtractModel(t *testing.T) {
	m := extract(t)

	assert.Equal(t, nlp.DepRel(nlp.ROOT_LABEL), m.LabelForCode(0))
	assert.Equal(t, 0, m.CodeForDefaultLabel())
	// ROOT, NMOD, SBJ, OBJ
	assert.Equal(t, 4, m.NumLabels())
	assert.NotEqual(t, -1, m.CodeForForm(nlp.ROOT_TOKEN), "root token is part of the dictionaries")
	assert.Equal(t, -1, m.CodeForForm("cats"))
	assert.Equal(t, "dog", m.FormForCode(m.CodeForForm("dog")))
	assert.Equal(t, "NN", m.FineTagForCode(m.CodeForFineTag("NN")))
	assert.Equal(t, "V", m.CoarseTagForCode(m.CodeForCoarseTag("V")))
	assert.Equal(t, "dogs", m.LemmaForCode(m.CodeForLemma("dogs")))

	require.Greater(t, m.NumFeatures(), 0)
	assert.Len(t, m.WeightVector(), m.NumFeatures())
	assert.True(t, m.Features.Frozen)
	assert.True(t, m.Forms.Frozen)

	// re-adding gold features is a no-op on a frozen model
	n := m.NumFeatures()
	require.NoError(t, m.AddFeatures(corpus(t)[2]))
	assert.Equal(t, n, m.NumFeatures())
}

func TestExtractModelExtended(t *testing.T) {
	base := extract(t)
	extended := extract(t, WithExtendedFeatures())
	assert.True(t, extended.Extended)
	assert.Greater(t, extended.NumFeatures(), base.NumFeatures())
}

func TestExtractModelErrors(t *testing.T) {
	_, err := ExtractModel(nil)
	assert.True(t, errors.Is(err, ErrEmptyCorpus))

	bad := sentence(t, "Dogs/NNS/1/SBJ bark/VBP/0/ROOT")
	_, err = ExtractModel([]nlp.Sentence{bad})
	assert.Error(t, err)
}

func TestWithLabels(t *testing.T) {
	m, err := ExtractModel(corpus(t), WithLabels("OBJ", "ADV"))
	require.NoError(t, err)
	assert.Equal(t, 1, m.CodeForLabel("OBJ"))
	assert.Equal(t, 2, m.CodeForLabel("ADV"))
	assert.Equal(t, 5, m.NumLabels())
}

func TestLayoutOverflow(t *testing.T) {
	m := NewModel()
	layout, err := m.Layout()
	require.NoError(t, err)
	assert.Equal(t, uint(7), layout.Template)

	m.Extended = true
	layout, err = m.Layout()
	require.NoError(t, err)
	assert.Equal(t, uint(8), layout.Template)

	// 14 bit tags: four tags, a distance suffix and the template id do not
	// fit in 64 bits
	m.FineTags.Index = make([]string, 10000)
	_, err = m.Layout()
	assert.True(t, errors.Is(err, ErrFeatureOverflow))
}

func TestSnapshot(t *testing.T) {
	m := extract(t)
	weights := make([]float64, m.NumFeatures())
	weights[0] = 1
	snapshot := m.Snapshot(weights)
	weights[0] = 2

	assert.Equal(t, 1.0, snapshot.Weights[0])
	assert.Equal(t, 0.0, m.Weights[0])
	assert.Same(t, m.Features, snapshot.Features)
	assert.Same(t, m.Forms, snapshot.Forms)
}

func TestSetWeightVector(t *testing.T) {
	m := extract(t)
	assert.Panics(t, func() { m.SetWeightVector(make([]float64, 1)) })
	m.SetWeightVector(make([]float64, m.NumFeatures()))
}
