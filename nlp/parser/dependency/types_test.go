package dependency

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	nlp "github.com/andersjo/beta/nlp/types"
)

// chainParser attaches every token to its predecessor.
type chainParser struct {
	calls int32
}

func (c *chainParser) Parse(sent nlp.Sentence) nlp.Sentence {
	atomic.AddInt32(&c.calls, 1)
	for i := 1; i < len(sent); i++ {
		sent[i].Head = i - 1
		sent[i].Label = "dep"
	}
	return sent
}

func TestParseAll(t *testing.T) {
	sents := make([]nlp.Sentence, 25)
	for i := range sents {
		tokens := make([]nlp.Token, i%5)
		for j := range tokens {
			tokens[j] = nlp.Token{Form: "w", POS: "X", Head: -1}
		}
		sents[i] = nlp.NewSentence(tokens...)
	}
	for _, workers := range []int{0, 1, 3} {
		parser := &chainParser{}
		parsed := ParseAll(parser, sents, workers)
		assert.Len(t, parsed, len(sents))
		assert.EqualValues(t, len(sents), parser.calls)
		for _, sent := range parsed {
			for i := 1; i < len(sent); i++ {
				assert.Equal(t, i-1, sent[i].Head)
			}
		}
	}
}

func TestParseAllEmpty(t *testing.T) {
	assert.Empty(t, ParseAll(&chainParser{}, nil, 2))
}
