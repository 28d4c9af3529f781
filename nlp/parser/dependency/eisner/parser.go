// Package eisner implements a first order graph based dependency parser:
// Eisner's O(n³) dynamic program over an edge factored scorer whose weights
// are learned online from gold trees.
package eisner

import (
	"github.com/andersjo/beta/nlp/parser/dependency"
	nlp "github.com/andersjo/beta/nlp/types"
)

var _ dependency.ScoringParser = &Parser{}

// Parser finds the highest scoring projective tree of a sentence under a
// model. The model is only read, so a Parser may be shared between
// goroutines.
type Parser struct {
	Model *Model
}

func NewParser(m *Model) *Parser {
	return &Parser{Model: m}
}

// Parse overwrites the head and label of every non-root token of sent with
// the best projective tree and returns sent.
func (p *Parser) Parse(sent nlp.Sentence) nlp.Sentence {
	parsed, _ := p.ParseWithScore(sent)
	return parsed
}

// ParseWithScore is Parse that also returns the score of the tree found.
func (p *Parser) ParseWithScore(sent nlp.Sentence) (nlp.Sentence, float64) {
	n := len(sent)
	if n <= 1 {
		return sent, 0
	}
	scorer := NewEdgeScorer(p.Model, sent)
	c := newChart(n)
	c.fill(scorer)
	c.edges(c.item(completeRight, 0, n-1), func(src, tgt, label int) {
		sent[tgt].Head = src
		sent[tgt].Label = p.Model.LabelForCode(label)
	})
	return sent, c.score(completeRight, 0, n-1)
}

// ParseAll parses sents in place with up to workers goroutines; workers <= 0
// uses one per CPU.
func (p *Parser) ParseAll(sents []nlp.Sentence, workers int) []nlp.Sentence {
	return dependency.ParseAll(p, sents, workers)
}

// Parse parses sent with m.
func Parse(m *Model, sent nlp.Sentence) nlp.Sentence {
	return NewParser(m).Parse(sent)
}
