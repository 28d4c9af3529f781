package perceptron

import "github.com/andersjo/beta/alg/featurevector"

// Decoder decodes a training instance under the current weights and
// returns the feature vectors of the gold and the predicted structure
// together with the structured loss of the prediction.
type Decoder interface {
	Decode(instance interface{}) (gold, predicted *featurevector.Vector, loss float64)
}

// UpdateRule decides the step size of an update along delta = gold -
// predicted. ok is false when no update should be made.
type UpdateRule interface {
	Step(delta *featurevector.Vector, loss float64, weights []float64) (step float64, ok bool)
	String() string
}

type SupervisedTrainer interface {
	Train(instances []interface{}) error
}
