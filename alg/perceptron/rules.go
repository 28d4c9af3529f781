package perceptron

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/andersjo/beta/alg/featurevector"
)

const DEFAULT_AGGRESSIVENESS = 0.1

// Perceptron always moves the weights by the full difference between gold
// and predicted features.
type Perceptron struct{}

var _ UpdateRule = Perceptron{}

func (Perceptron) Step(delta *featurevector.Vector, loss float64, weights []float64) (float64, bool) {
	return 1, true
}

func (Perceptron) String() string {
	return "perceptron"
}

// PassiveAggressive takes the smallest step that separates gold from
// predicted by a margin equal to the loss, capped at C.
type PassiveAggressive struct {
	C float64
}

var _ UpdateRule = PassiveAggressive{}

func (r PassiveAggressive) Step(delta *featurevector.Vector, loss float64, weights []float64) (float64, bool) {
	sqNorm := delta.SquaredNorm()
	if sqNorm == 0 {
		return 0, false
	}
	violation := math.Max(0, loss-delta.Score(weights))
	return math.Min(r.C, violation/sqNorm), true
}

func (r PassiveAggressive) String() string {
	return fmt.Sprintf("pa(C=%v)", r.C)
}

// RuleByName returns the update rule called name; c is the
// aggressiveness of the passive-aggressive rule.
func RuleByName(name string, c float64) (UpdateRule, error) {
	switch strings.ToLower(name) {
	case "perceptron", "":
		return Perceptron{}, nil
	case "pa", "passive-aggressive":
		if c <= 0 {
			c = DEFAULT_AGGRESSIVENESS
		}
		return PassiveAggressive{C: c}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownRule, "%q", name)
	}
}
