package perceptron

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/andersjo/beta/alg/featurevector"
)

type StopCondition func(iteration, iterations int, last *IterationStats) bool

// IterationStats summarizes one pass over the training instances.
type IterationStats struct {
	Iteration int
	Instances int
	Exact     int
	Updates   int
	Loss      float64
}

func (s IterationStats) String() string {
	var exact float64
	if s.Instances > 0 {
		exact = 100 * float64(s.Exact) / float64(s.Instances)
	}
	return fmt.Sprintf("Instances %d Loss %v Exact %d (%.2f%%) Updates %d", s.Instances, s.Loss, s.Exact, exact, s.Updates)
}

// LinearPerceptron learns a weight vector online, one instance at a time.
type LinearPerceptron struct {
	Decoder    Decoder
	Rule       UpdateRule
	Updater    UpdateStrategy
	Iterations int
	Log        bool

	Continue StopCondition
	// OnIteration is called after every pass over the instances
	OnIteration func(iteration int, m *LinearPerceptron) error

	Weights []float64
	Stats   []IterationStats

	updates int
}

var _ SupervisedTrainer = &LinearPerceptron{}

var PercepAllOut bool = false

// Init sets the initial weights. Rule defaults to Perceptron and Updater to
// AveragedStrategy.
func (m *LinearPerceptron) Init(weights []float64) {
	if m.Rule == nil {
		m.Rule = Perceptron{}
	}
	if m.Updater == nil {
		m.Updater = &AveragedStrategy{}
	}
	m.Weights = weights
	m.Stats = nil
	m.updates = 0
	m.Updater.Init(m.Weights)
}

func DefaultStopCondition(iteration, iterations int, last *IterationStats) bool {
	return iteration < iterations
}

// ConvergedStopCondition also stops after an iteration without loss.
func ConvergedStopCondition(iteration, iterations int, last *IterationStats) bool {
	return iteration < iterations && (last == nil || last.Loss > 0)
}

// Train runs the configured number of iterations over instances and leaves
// the finalized (by default averaged) weights in m.Weights.
func (m *LinearPerceptron) Train(instances []interface{}) error {
	if m.Weights == nil {
		panic("Weights not initialized")
	}
	if m.Continue == nil {
		m.Continue = DefaultStopCondition
	}
	prevPrefix := log.Prefix()
	defer log.SetPrefix(prevPrefix)

	var last *IterationStats
	for i := 0; m.Continue(i, m.Iterations, last); i++ {
		log.SetPrefix("IT #" + fmt.Sprintf("%v ", i) + prevPrefix)
		stats := IterationStats{Iteration: i}
		for j, instance := range instances {
			loss, updated := m.Update(instance)
			stats.Instances++
			stats.Loss += loss
			if loss == 0 {
				stats.Exact++
			}
			if updated {
				stats.Updates++
			}
			if m.Log && PercepAllOut {
				log.Println("At instance", j, "loss", loss)
			}
		}
		m.Stats = append(m.Stats, stats)
		last = &m.Stats[len(m.Stats)-1]
		if m.Log {
			log.Println(stats)
		}
		if m.OnIteration != nil {
			if err := m.OnIteration(i, m); err != nil {
				return errors.Wrapf(err, "iteration %d", i)
			}
		}
	}
	m.Average()
	return nil
}

// Update decodes a single instance and moves the weights according to the
// rule. It returns the loss of the prediction and whether the weights were
// changed.
func (m *LinearPerceptron) Update(instance interface{}) (float64, bool) {
	gold, predicted, loss := m.Decoder.Decode(instance)
	delta := featurevector.Delta(gold, predicted)
	m.updates++
	step, ok := m.Rule.Step(delta, loss, m.Weights)
	if !ok {
		step = 0
	}
	if step != 0 {
		delta.Update(step, m.Weights)
	}
	m.Updater.Update(delta, step)
	return loss, ok && step != 0
}

// Updates is the number of instances seen so far.
func (m *LinearPerceptron) Updates() int {
	return m.updates
}

// Averaged returns a finalized copy of the weights; training may continue.
func (m *LinearPerceptron) Averaged() []float64 {
	return m.Updater.Finalize(m.Weights)
}

// Average replaces the weights with their finalized values.
func (m *LinearPerceptron) Average() {
	copy(m.Weights, m.Updater.Finalize(m.Weights))
}

// UpdateStrategy turns the sequence of updates into final weights.
type UpdateStrategy interface {
	Init(weights []float64)
	Update(delta *featurevector.Vector, step float64)
	Finalize(weights []float64) []float64
}

type TrivialStrategy struct{}

func (u *TrivialStrategy) Init(weights []float64) {
}

func (u *TrivialStrategy) Update(delta *featurevector.Vector, step float64) {
}

func (u *TrivialStrategy) Finalize(weights []float64) []float64 {
	final := make([]float64, len(weights))
	copy(final, weights)
	return final
}

// AveragedStrategy averages the weights over all instances seen without
// storing every intermediate weight vector: each update is also added to an
// accumulator scaled by the number of instances seen so far, and the
// average is weights - accum/(N+1).
type AveragedStrategy struct {
	N     int
	accum []float64
}

func (u *AveragedStrategy) Init(weights []float64) {
	u.N = 0
	u.accum = make([]float64, len(weights))
}

func (u *AveragedStrategy) Update(delta *featurevector.Vector, step float64) {
	u.N++
	if step != 0 {
		delta.Update(float64(u.N)*step, u.accum)
	}
}

func (u *AveragedStrategy) Finalize(weights []float64) []float64 {
	final := make([]float64, len(weights))
	copy(final, weights)
	floats.AddScaled(final, -1/float64(u.N+1), u.accum)
	return final
}
