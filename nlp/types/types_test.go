package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSentence(t *testing.T) {
	cases := []struct {
		forms []string
		ids   []int
	}{
		{nil, []int{0}},
		{[]string{"Dogs"}, []int{0, 1}},
		{[]string{"Dogs", "bark", "loudly"}, []int{0, 1, 2, 3}},
	}
	for _, c := range cases {
		tokens := make([]Token, len(c.forms))
		for i, form := range c.forms {
			tokens[i] = Token{ID: 42, Form: form}
		}
		sent := NewSentence(tokens...)
		assert.Equal(t, len(c.ids), sent.Len())
		assert.Equal(t, RootToken(), sent[0])
		for i, token := range sent {
			assert.Equal(t, c.ids[i], token.ID)
		}
		assert.Equal(t, append([]string{ROOT_TOKEN}, c.forms...), sent.Tokens())
	}
}

func TestUnparsed(t *testing.T) {
	cases := []struct {
		heads  []int
		labels []DepRel
	}{
		{[]int{0}, []DepRel{"ROOT"}},
		{[]int{2, 0}, []DepRel{"SBJ", "ROOT"}},
		{[]int{2, 0, 2}, []DepRel{"SBJ", "ROOT", "OBJ"}},
	}
	for _, c := range cases {
		tokens := make([]Token, len(c.heads))
		for i := range c.heads {
			tokens[i] = Token{Form: "w", POS: "T", Head: c.heads[i], Label: c.labels[i]}
		}
		sent := NewSentence(tokens...)
		original := sent.Copy()

		unparsed := sent.Unparsed()
		for i := range unparsed {
			assert.Equal(t, 0, unparsed[i].Head)
			assert.Equal(t, DepRel(ROOT_LABEL), unparsed[i].Label)
			assert.Equal(t, sent[i].Form, unparsed[i].Form)
		}
		assert.True(t, sent.Equal(original), "Unparsed must not modify its receiver")
		assert.Equal(t, append([]int{0}, c.heads...), sent.Heads())
		assert.Equal(t, append([]DepRel{ROOT_LABEL}, c.labels...), sent.Labels())
	}
}

func TestArcs(t *testing.T) {
	sent := NewSentence(
		Token{Form: "Dogs", Head: 2, Label: "SBJ"},
		Token{Form: "bark", Head: 0, Label: "ROOT"},
	)
	arcs := sent.Arcs()
	assert.Equal(t, []LabeledDepArc{{Head: 2, Modifier: 1, Relation: "SBJ"}, {Head: 0, Modifier: 2, Relation: "ROOT"}}, arcs)
	assert.Equal(t, LabeledDepArc{Head: 2, Modifier: 1}, arcs[0].Unlabeled())
	assert.Equal(t, "(2,SBJ,1)", arcs[0].String())
	assert.Nil(t, NewSentence().Arcs())
}
