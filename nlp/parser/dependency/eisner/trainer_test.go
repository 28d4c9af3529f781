package eisner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersjo/beta/alg/featurevector"
	"github.com/andersjo/beta/alg/perceptron"
	nlp "github.com/andersjo/beta/nlp/types"
)

func TestLoss(t *testing.T) {
	gold := sentence(t, "She/PRP/2/SBJ eats/VBZ/0/ROOT fresh/JJ/4/NMOD fish/NN/2/OBJ")
	assert.Equal(t, 0.0, Loss(gold, gold))
	assert.Equal(t, 6.0, Loss(gold, gold.Unparsed()), "three wrong heads and three wrong labels")

	predicted := gold.Copy()
	predicted[3].Label = "OBJ"
	predicted[4].Head = 3
	assert.Equal(t, 2.0, Loss(gold, predicted))
}

// A single perceptron update from zero weights adds the gold features and
// subtracts the predicted ones.
func TestPerceptronUpdate(t *testing.T) {
	gold := sentence(t, "Dogs/NNS/2/SBJ bark/VBP/0/ROOT")
	m, err := ExtractModel([]nlp.Sentence{gold})
	require.NoError(t, err)

	decoder := NewDecoder(m, NewParser(m))
	trainer := &perceptron.LinearPerceptron{Decoder: decoder, Rule: perceptron.Perceptron{}}
	trainer.Init(m.Weights)

	// zero weights predict the left to right chain with default labels
	predicted := decoder.Parser.Parse(gold.Unparsed())
	require.Equal(t, []int{0, 0, 1}, predicted.Heads())

	loss, updated := trainer.Update(gold)
	assert.True(t, updated)
	// wrong head and label of Dogs, wrong head of bark
	assert.Equal(t, 3.0, loss)

	expected := featurevector.Delta(FeatureVectorOf(m, gold), FeatureVectorOf(m, predicted)).Sparse()
	require.NotEmpty(t, expected)
	for code, weight := range m.Weights {
		assert.Equal(t, expected[code], weight, "feature %d", code)
	}
}

func TestPassiveAggressiveZeroDelta(t *testing.T) {
	// zero weights predict the chain with default labels
	gold := sentence(t, "Dogs/NNS/0/ROOT bark/VBP/1/ROOT")
	m, err := ExtractModel([]nlp.Sentence{gold})
	require.NoError(t, err)

	trainer := &perceptron.LinearPerceptron{Decoder: NewDecoder(m, NewParser(m)), Rule: perceptron.PassiveAggressive{C: 0.1}}
	trainer.Init(m.Weights)
	loss, updated := trainer.Update(gold)
	assert.Equal(t, 0.0, loss)
	assert.False(t, updated)
	assert.Equal(t, 1, trainer.Updates())
	for _, weight := range m.Weights {
		assert.Equal(t, 0.0, weight)
	}
}

func TestTrainConverges(t *testing.T) {
	sents := corpus(t)
	m, err := ExtractModel(sents)
	require.NoError(t, err)

	trainer := &perceptron.LinearPerceptron{
		Decoder:    NewDecoder(m, NewParser(m)),
		Rule:       perceptron.Perceptron{},
		Iterations: 20,
		Continue:   perceptron.ConvergedStopCondition,
	}
	trainer.Init(m.Weights)
	instances := make([]interface{}, len(sents))
	for i, sent := range sents {
		instances[i] = sent
	}
	require.NoError(t, trainer.Train(instances))

	last := trainer.Stats[len(trainer.Stats)-1]
	assert.Equal(t, 0.0, last.Loss)
	assert.Equal(t, len(sents), last.Exact)
	assert.Equal(t, len(sents)*len(trainer.Stats), trainer.Updates())
}

func TestTrain(t *testing.T) {
	sents := corpus(t)
	m, err := ExtractModel(sents)
	require.NoError(t, err)

	var snapshots []*Model
	weights, err := Train(m, NewParser(m), sents, 3, perceptron.PassiveAggressive{C: 0.1}, func(i int, snapshot *Model) error {
		assert.Equal(t, len(snapshots), i)
		snapshots = append(snapshots, snapshot)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.Equal(t, m.Weights, weights)
	assert.Equal(t, weights, snapshots[2].Weights, "the last snapshot holds the final averaged weights")
	assert.NotSame(t, &m.Weights[0], &snapshots[2].Weights[0])

	var nonZero int
	for _, w := range weights {
		if w != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 0)
}

// countingParser records how many sentences it parsed.
type countingParser struct {
	*Parser
	parsed int
}

func (c *countingParser) Parse(sent nlp.Sentence) nlp.Sentence {
	c.parsed++
	return c.Parser.Parse(sent)
}

func TestTrainUsesParser(t *testing.T) {
	sents := corpus(t)
	m, err := ExtractModel(sents)
	require.NoError(t, err)

	parser := &countingParser{Parser: NewParser(m)}
	_, err = Train(m, parser, sents, 2, perceptron.Perceptron{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2*len(sents), parser.parsed)
}

func TestTrainForeignParser(t *testing.T) {
	sents := corpus(t)
	m, err := ExtractModel(sents)
	require.NoError(t, err)
	other, err := ExtractModel(sents)
	require.NoError(t, err)

	_, err = Train(m, NewParser(other), sents, 1, perceptron.Perceptron{}, nil)
	assert.Equal(t, ErrForeignParser, err)
}
