package eisner

import (
	"log"

	"github.com/andersjo/beta/alg/featurevector"
	"github.com/andersjo/beta/alg/perceptron"
	"github.com/andersjo/beta/nlp/parser/dependency"
	nlp "github.com/andersjo/beta/nlp/types"
)

// Decoder parses training sentences for the perceptron. Parser must score
// with the weights of Model, which the perceptron updates in place.
type Decoder struct {
	Model  *Model
	Parser dependency.DependencyParser
}

var _ perceptron.Decoder = &Decoder{}

func NewDecoder(m *Model, parser dependency.DependencyParser) *Decoder {
	return &Decoder{Model: m, Parser: parser}
}

// Decode parses a copy of the gold sentence, stripped of its tree, and
// returns the gold and predicted feature vectors and the loss.
func (d *Decoder) Decode(instance interface{}) (*featurevector.Vector, *featurevector.Vector, float64) {
	gold, ok := instance.(nlp.Sentence)
	if !ok {
		panic("Instance should be a sentence")
	}
	goldFeatures := FeatureVectorOf(d.Model, gold)
	predicted := d.Parser.Parse(gold.Unparsed())
	predictedFeatures := FeatureVectorOf(d.Model, predicted)
	return goldFeatures, predictedFeatures, Loss(gold, predicted)
}

// Loss counts one for every wrong head and one for every wrong label of
// the non-root tokens.
func Loss(gold, predicted nlp.Sentence) float64 {
	if len(gold) != len(predicted) {
		panic("Sentences differ in length")
	}
	var loss float64
	for i := 1; i < len(gold); i++ {
		if gold[i].Head != predicted[i].Head {
			loss++
		}
		if gold[i].Label != predicted[i].Label {
			loss++
		}
	}
	return loss
}

// SnapshotFunc receives a model holding the averaged weights after every
// iteration.
type SnapshotFunc func(iteration int, snapshot *Model) error

// Train learns the weights of m from sents, decoding with parser under the
// given update rule, installs the averaged weights in m and returns them.
// An Eisner parser must be built over m itself.
func Train(m *Model, parser dependency.DependencyParser, sents []nlp.Sentence, iterations int, rule perceptron.UpdateRule, snapshot SnapshotFunc) ([]float64, error) {
	if p, ok := parser.(*Parser); ok && p.Model != m {
		return nil, ErrForeignParser
	}
	if m.Weights == nil {
		m.ClearWeightVector()
	}
	trainer := &perceptron.LinearPerceptron{
		Decoder:    NewDecoder(m, parser),
		Rule:       rule,
		Iterations: iterations,
		Log:        AllOut,
	}
	trainer.Init(m.Weights)
	if snapshot != nil {
		trainer.OnIteration = func(i int, p *perceptron.LinearPerceptron) error {
			return snapshot(i, m.Snapshot(p.Averaged()))
		}
	}
	instances := make([]interface{}, len(sents))
	for i, sent := range sents {
		instances[i] = sent
	}
	if AllOut {
		log.Println("Training", len(sents), "sentences for", iterations, "iterations with", trainer.Rule)
	}
	if err := trainer.Train(instances); err != nil {
		return nil, err
	}
	m.SetWeightVector(trainer.Weights)
	return trainer.Weights, nil
}
