package eisner

import "math"

const none int32 = -1

// Chart tables, indexed by span.
const (
	completeRight = iota
	completeLeft
	incompleteRight
	incompleteLeft
	numTables
)

// choice is a backpointer. An Incomplete item records the edge it adds;
// both kinds record the split point and the two sub-items it combines as
// indices into the chart's arena.
type choice struct {
	src, tgt, label int32
	split           int32
	left, right     int32
}

func (c *choice) hasEdge() bool {
	return c.src != none
}

type chart struct {
	n      int
	scores [numTables][]float64
	best   [numTables][]int32
	arena  []choice
}

func newChart(n int) *chart {
	c := &chart{
		n:     n,
		arena: make([]choice, 0, 4*n*n),
	}
	for t := 0; t < numTables; t++ {
		c.scores[t] = make([]float64, n*n)
		c.best[t] = make([]int32, n*n)
		for i := range c.scores[t] {
			c.scores[t][i] = math.Inf(-1)
			c.best[t][i] = none
		}
	}
	// single node spans are complete with score 0 and nothing to rebuild
	for i := 0; i < n; i++ {
		c.scores[completeRight][i*n+i] = 0
		c.scores[completeLeft][i*n+i] = 0
	}
	return c
}

func (c *chart) score(table, min, max int) float64 {
	return c.scores[table][min*c.n+max]
}

func (c *chart) item(table, min, max int) int32 {
	return c.best[table][min*c.n+max]
}

func (c *chart) set(table, min, max int, score float64, ch choice) {
	c.arena = append(c.arena, ch)
	c.scores[table][min*c.n+max] = score
	c.best[table][min*c.n+max] = int32(len(c.arena) - 1)
}

// fill runs the dynamic program over every span by increasing right end
// and decreasing left end. Split points are tried in ascending order and
// only a strictly better score replaces the current best.
func (c *chart) fill(s *EdgeScorer) {
	n := c.n
	for max := 1; max < n; max++ {
		for min := max - 1; min >= 0; min-- {
			// both attachments join the same pair of complete halves
			bestSplit, bestJoin := -1, math.Inf(-1)
			for k := min; k < max; k++ {
				if join := c.score(completeRight, min, k) + c.score(completeLeft, k+1, max); join > bestJoin {
					bestSplit, bestJoin = k, join
				}
			}
			if bestSplit >= 0 {
				left, right := c.item(completeRight, min, bestSplit), c.item(completeLeft, bestSplit+1, max)
				c.set(incompleteRight, min, max, bestJoin+s.BestScore(min, max), choice{
					src: int32(min), tgt: int32(max), label: int32(s.BestLabel(min, max)),
					split: int32(bestSplit), left: left, right: right,
				})
				c.set(incompleteLeft, min, max, bestJoin+s.BestScore(max, min), choice{
					src: int32(max), tgt: int32(min), label: int32(s.BestLabel(max, min)),
					split: int32(bestSplit), left: left, right: right,
				})
			}

			bestSplit, best := -1, math.Inf(-1)
			for mid := min + 1; mid <= max; mid++ {
				if score := c.score(incompleteRight, min, mid) + c.score(completeRight, mid, max); score > best {
					bestSplit, best = mid, score
				}
			}
			if bestSplit >= 0 {
				c.set(completeRight, min, max, best, choice{
					src: none, tgt: none, label: none, split: int32(bestSplit),
					left: c.item(incompleteRight, min, bestSplit), right: c.item(completeRight, bestSplit, max),
				})
			}

			bestSplit, best = -1, math.Inf(-1)
			for mid := min; mid < max; mid++ {
				if score := c.score(completeLeft, min, mid) + c.score(incompleteLeft, mid, max); score > best {
					bestSplit, best = mid, score
				}
			}
			if bestSplit >= 0 {
				c.set(completeLeft, min, max, best, choice{
					src: none, tgt: none, label: none, split: int32(bestSplit),
					left: c.item(completeLeft, min, bestSplit), right: c.item(incompleteLeft, bestSplit, max),
				})
			}
		}
	}
}

// edges walks the backpointers below root and calls visit for every edge.
func (c *chart) edges(root int32, visit func(src, tgt, label int)) {
	stack := []int32{root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i == none {
			continue
		}
		ch := &c.arena[i]
		if ch.hasEdge() {
			visit(int(ch.src), int(ch.tgt), int(ch.label))
		}
		stack = append(stack, ch.left, ch.right)
	}
}
