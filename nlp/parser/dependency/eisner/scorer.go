package eisner

import (
	"fmt"
	"math"

	nlp "github.com/andersjo/beta/nlp/types"
)

const (
	rightArc = 0
	leftArc  = 1

	source = 0
	target = 1
)

// EdgeScorer precomputes the score of every labeled edge of a sentence.
// An edge score decomposes into a label independent part for the ordered
// pair and a labeled part for each endpoint, so scoring costs
// O(N² + N·L) feature evaluations instead of O(N²·L).
type EdgeScorer struct {
	n, numLabels int
	defaultLabel int

	// core[src*n+tgt]
	core []float64
	// labeled[((node*numLabels+label)*2+dir)*2+role]
	labeled []float64

	best      []float64
	bestLabel []int
}

func NewEdgeScorer(m *Model, sent nlp.Sentence) *EdgeScorer {
	n := len(sent)
	s := &EdgeScorer{
		n:            n,
		numLabels:    m.NumLabels(),
		defaultLabel: m.CodeForDefaultLabel(),
		core:         make([]float64, n*n),
		labeled:      make([]float64, n*m.NumLabels()*4),
		best:         make([]float64, n*n),
		bestLabel:    make([]int, n*n),
	}
	f := NewEdgeFeaturizer(m, sent)
	weights := m.Weights

	var acc float64
	handler := func(key uint64) {
		if code := m.CodeForFeature(key); code >= 0 && code < len(weights) {
			acc += weights[code]
		}
	}

	for fst := 0; fst < n; fst++ {
		for snd := fst + 1; snd < n; snd++ {
			acc = 0
			f.FeaturizeCore(fst, snd, true, handler)
			s.core[fst*n+snd] = acc
			acc = 0
			f.FeaturizeCore(fst, snd, false, handler)
			s.core[snd*n+fst] = acc
		}
	}

	for node := 0; node < n; node++ {
		for label := 0; label < s.numLabels; label++ {
			for _, dir := range []int{rightArc, leftArc} {
				for _, role := range []int{source, target} {
					acc = 0
					f.FeaturizeLabeled(node, label, dir == rightArc, role == target, handler)
					s.labeled[s.labeledIndex(node, label, dir, role)] = acc
				}
			}
		}
	}

	for src := 0; src < n; src++ {
		for tgt := 0; tgt < n; tgt++ {
			if src == tgt {
				continue
			}
			best, bestLabel := math.Inf(-1), s.defaultLabel
			for label := 0; label < s.numLabels; label++ {
				if score := s.Score(src, tgt, label); score > best {
					best, bestLabel = score, label
				}
			}
			if s.numLabels == 0 {
				best = s.core[src*n+tgt]
			}
			s.best[src*n+tgt] = best
			s.bestLabel[src*n+tgt] = bestLabel
		}
	}
	return s
}

func (s *EdgeScorer) labeledIndex(node, label, dir, role int) int {
	return ((node*s.numLabels+label)*2+dir)*2 + role
}

func (s *EdgeScorer) check(src, tgt int) {
	if src == tgt || src < 0 || tgt < 0 || src >= s.n || tgt >= s.n {
		panic(fmt.Sprintf("Invalid edge %d -> %d in sentence of length %d", src, tgt, s.n))
	}
}

// Score is the score of the edge src -> tgt with the given label code.
func (s *EdgeScorer) Score(src, tgt, label int) float64 {
	s.check(src, tgt)
	dir := rightArc
	if src > tgt {
		dir = leftArc
	}
	return s.core[src*s.n+tgt] +
		s.labeled[s.labeledIndex(tgt, label, dir, target)] +
		s.labeled[s.labeledIndex(src, label, dir, source)]
}

// BestLabel is the highest scoring label of src -> tgt; ties go to the
// lowest label code.
func (s *EdgeScorer) BestLabel(src, tgt int) int {
	s.check(src, tgt)
	return s.bestLabel[src*s.n+tgt]
}

func (s *EdgeScorer) BestScore(src, tgt int) float64 {
	s.check(src, tgt)
	return s.best[src*s.n+tgt]
}

func (s *EdgeScorer) Len() int {
	return s.n
}
