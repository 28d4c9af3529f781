package eval

import (
	"fmt"

	"github.com/pkg/errors"

	nlp "github.com/andersjo/beta/nlp/types"
)

// AttachmentError is a token whose predicted arc differs from the gold one.
type AttachmentError struct {
	Gold, Test nlp.LabeledDepArc
}

func (e *AttachmentError) Class() string {
	if e.Gold.Unlabeled() != e.Test.Unlabeled() {
		return "head"
	}
	return "label"
}

func (e *AttachmentError) String() string {
	return fmt.Sprintf("%d: %v expected %v", e.Gold.GetModifier(), e.Test, e.Gold)
}

// LabelConfusions counts the "gold -> test" label pairs of errors whose
// head is correct.
func LabelConfusions(errs Errors) map[string]int {
	retval := make(map[string]int)
	for _, e := range errs {
		if attachment, ok := e.(*AttachmentError); ok && attachment.Gold.GetHead() == attachment.Test.GetHead() {
			retval[fmt.Sprintf("%v -> %v", attachment.Gold.GetRelation(), attachment.Test.GetRelation())]++
		}
	}
	return retval
}

// Dependency compares the arcs of test to those of gold, token by token.
// The returned result counts labeled attachments; its Other field holds
// the unlabeled result.
func Dependency(test, gold nlp.Sentence) (*Result, error) {
	if len(test) != len(gold) {
		return nil, errors.Errorf("sentence lengths differ: %d test, %d gold", len(test), len(gold))
	}
	unlabeled := &Result{}
	retval := &Result{Other: unlabeled}
	testArcs, goldArcs := test.Arcs(), gold.Arcs()
	for i, goldArc := range goldArcs {
		testArc := testArcs[i]
		if testArc.Unlabeled() == goldArc.Unlabeled() {
			unlabeled.TP++
		} else {
			unlabeled.FP++
			unlabeled.FN++
		}
		if testArc == goldArc {
			retval.TP++
		} else {
			retval.FP++
			retval.FN++
			retval.Errors = append(retval.Errors, &AttachmentError{Gold: goldArc, Test: testArc})
		}
	}
	return retval, nil
}

// AttachmentScore accumulates labeled and unlabeled results over a corpus.
type AttachmentScore struct {
	Labeled, Unlabeled Total
}

func NewAttachmentScore() *AttachmentScore {
	return &AttachmentScore{
		Labeled:   Total{Results: make([]*Result, 0)},
		Unlabeled: Total{Results: make([]*Result, 0)},
	}
}

func (s *AttachmentScore) Add(test, gold nlp.Sentence) error {
	result, err := Dependency(test, gold)
	if err != nil {
		return err
	}
	s.Labeled.Add(result)
	s.Unlabeled.Add(result.Other.(*Result))
	return nil
}

func (s *AttachmentScore) UAS() float64 { return s.Unlabeled.Precision() }
func (s *AttachmentScore) LAS() float64 { return s.Labeled.Precision() }

// UEM and LEM are the unlabeled and labeled exact match rates.
func (s *AttachmentScore) UEM() float64 { return s.Unlabeled.ExactMatch() }
func (s *AttachmentScore) LEM() float64 { return s.Labeled.ExactMatch() }

func (s *AttachmentScore) String() string {
	return fmt.Sprintf("UAS %.4f LAS %.4f UEM %.4f LEM %.4f (%d tokens, %d sentences)",
		s.UAS(), s.LAS(), s.UEM(), s.LEM(), s.Labeled.TestPositives(), s.Labeled.Population)
}

// Evaluate scores a parsed corpus against the gold corpus.
func Evaluate(test, gold []nlp.Sentence) (*AttachmentScore, error) {
	if len(test) != len(gold) {
		return nil, errors.Errorf("evaluation set sizes differ: %d test, %d gold", len(test), len(gold))
	}
	score := NewAttachmentScore()
	for i := range gold {
		if err := score.Add(test[i], gold[i]); err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
	}
	return score, nil
}
