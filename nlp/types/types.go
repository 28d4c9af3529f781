package types

import "reflect"

const (
	ROOT_TOKEN = "<ROOT>"
	ROOT_LABEL = "ROOT"
)

// A Token is one node of a sentence. Head is the index of the token's
// head within the sentence and Label the relation to it.
type Token struct {
	ID    int
	Form  string
	Lemma string
	CPOS  string
	POS   string
	Feats string
	Head  int
	Label DepRel
}

// RootToken is the artificial node 0 of every sentence.
func RootToken() Token {
	return Token{
		ID:    0,
		Form:  ROOT_TOKEN,
		Lemma: ROOT_TOKEN,
		CPOS:  ROOT_TOKEN,
		POS:   ROOT_TOKEN,
		Head:  0,
		Label: ROOT_LABEL,
	}
}

// A Sentence is an ordered sequence of tokens whose first element is the
// artificial root.
type Sentence []Token

// NewSentence prepends the root token to tokens and numbers them.
func NewSentence(tokens ...Token) Sentence {
	sent := make(Sentence, 0, len(tokens)+1)
	sent = append(sent, RootToken())
	for i, token := range tokens {
		token.ID = i + 1
		sent = append(sent, token)
	}
	return sent
}

func (s Sentence) Len() int {
	return len(s)
}

func (s Sentence) Copy() Sentence {
	copied := make(Sentence, len(s))
	copy(copied, s)
	return copied
}

// Unparsed returns a copy of s in which every token is attached to the root
// with the default label.
func (s Sentence) Unparsed() Sentence {
	copied := s.Copy()
	for i := range copied {
		copied[i].Head = 0
		copied[i].Label = ROOT_LABEL
	}
	return copied
}

func (s Sentence) Heads() []int {
	heads := make([]int, len(s))
	for i, token := range s {
		heads[i] = token.Head
	}
	return heads
}

func (s Sentence) Labels() []DepRel {
	labels := make([]DepRel, len(s))
	for i, token := range s {
		labels[i] = token.Label
	}
	return labels
}

func (s Sentence) Tokens() []string {
	tokens := make([]string, len(s))
	for i, token := range s {
		tokens[i] = token.Form
	}
	return tokens
}

// Arcs returns the labeled arcs of every non-root token.
func (s Sentence) Arcs() []LabeledDepArc {
	if len(s) < 2 {
		return nil
	}
	arcs := make([]LabeledDepArc, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		arcs = append(arcs, LabeledDepArc{Head: s[i].Head, Modifier: i, Relation: s[i].Label})
	}
	return arcs
}

func (s Sentence) Equal(other Sentence) bool {
	return reflect.DeepEqual(s, other)
}
