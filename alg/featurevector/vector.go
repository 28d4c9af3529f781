package featurevector

// Vector is an append-only multiset of feature codes. Codes in Pos count
// positively and codes in Neg count negatively; duplicates are meaningful.
type Vector struct {
	Pos, Neg []int
}

func NewVector(capacity int) *Vector {
	return &Vector{Pos: make([]int, 0, capacity)}
}

// Increment appends code. Negative codes (features unknown to a frozen
// index) are dropped.
func (v *Vector) Increment(code int) {
	if code < 0 {
		return
	}
	v.Pos = append(v.Pos, code)
}

func (v *Vector) Len() int {
	return len(v.Pos) + len(v.Neg)
}

// Score is the dot product of v with params.
func (v *Vector) Score(params []float64) float64 {
	var score float64
	for _, code := range v.Pos {
		score += params[code]
	}
	for _, code := range v.Neg {
		score -= params[code]
	}
	return score
}

// Update adds alpha times v to params in place.
func (v *Vector) Update(alpha float64, params []float64) {
	for _, code := range v.Pos {
		params[code] += alpha
	}
	for _, code := range v.Neg {
		params[code] -= alpha
	}
}

// Sparse collapses v into net multiplicities, dropping codes that cancel.
func (v *Vector) Sparse() Sparse {
	s := make(Sparse, v.Len())
	for _, code := range v.Pos {
		s[code] += 1
	}
	for _, code := range v.Neg {
		s[code] -= 1
	}
	for code, val := range s {
		if val == 0 {
			delete(s, code)
		}
	}
	return s
}

func (v *Vector) SquaredNorm() float64 {
	return v.Sparse().SquaredNorm()
}

func (v *Vector) Dot(other *Vector) float64 {
	return v.Sparse().Dot(other.Sparse())
}

// IsZero reports whether all codes of v cancel out.
func (v *Vector) IsZero() bool {
	return len(v.Sparse()) == 0
}

// Delta returns a - b.
func Delta(a, b *Vector) *Vector {
	delta := &Vector{
		Pos: make([]int, 0, len(a.Pos)+len(b.Neg)),
		Neg: make([]int, 0, len(a.Neg)+len(b.Pos)),
	}
	delta.Pos = append(delta.Pos, a.Pos...)
	delta.Pos = append(delta.Pos, b.Neg...)
	delta.Neg = append(delta.Neg, a.Neg...)
	delta.Neg = append(delta.Neg, b.Pos...)
	return delta
}
