package dependency

import (
	"runtime"
	"sync"

	nlp "github.com/andersjo/beta/nlp/types"
)

// A DependencyParser assigns a head and label to every non-root token of a
// sentence, in place, and returns it.
type DependencyParser interface {
	Parse(nlp.Sentence) nlp.Sentence
}

// A ScoringParser also reports the model score of the tree it found.
type ScoringParser interface {
	DependencyParser
	ParseWithScore(nlp.Sentence) (nlp.Sentence, float64)
}

// ParseAll parses sents in place with up to workers goroutines; workers <= 0
// uses one per CPU. parser must be safe for concurrent use.
func ParseAll(parser DependencyParser, sents []nlp.Sentence, workers int) []nlp.Sentence {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				parser.Parse(sents[i])
			}
		}()
	}
	for i := range sents {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return sents
}
