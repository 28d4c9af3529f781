package types

import "fmt"

type DepRel string

func (d DepRel) String() string {
	return string(d)
}

// A LabeledDepArc connects a head to its modifier with a relation.
type LabeledDepArc struct {
	Head, Modifier int
	Relation       DepRel
}

func (a LabeledDepArc) GetHead() int {
	return a.Head
}

func (a LabeledDepArc) GetModifier() int {
	return a.Modifier
}

func (a LabeledDepArc) GetRelation() DepRel {
	return a.Relation
}

// Unlabeled drops the relation so arcs can be compared by attachment only.
func (a LabeledDepArc) Unlabeled() LabeledDepArc {
	return LabeledDepArc{Head: a.Head, Modifier: a.Modifier}
}

func (a LabeledDepArc) String() string {
	return fmt.Sprintf("(%d,%s,%d)", a.Head, a.Relation, a.Modifier)
}
