package featurevector

import (
	"fmt"
	"sort"
	"strings"
)

// Sparse is a collapsed view of a Vector: each code mapped to its net
// multiplicity.
type Sparse map[int]float64

func (v Sparse) Copy() Sparse {
	copied := make(Sparse, len(v))
	for k, val := range v {
		copied[k] = val
	}
	return copied
}

func (v Sparse) Dot(other Sparse) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var dot float64
	for key, val := range v {
		if otherVal, exists := other[key]; exists {
			dot += val * otherVal
		}
	}
	return dot
}

func (v Sparse) SquaredNorm() float64 {
	var norm float64
	for _, val := range v {
		norm += val * val
	}
	return norm
}

func (v Sparse) String() string {
	keys := make([]int, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	strs := make([]string, len(keys))
	for i, k := range keys {
		strs[i] = fmt.Sprintf("%v:%v", k, v[k])
	}
	return "[" + strings.Join(strs, " ") + "]"
}
