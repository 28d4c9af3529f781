package eisner

import "github.com/pkg/errors"

var (
	// ErrFeatureOverflow is returned when the dictionaries are too large for
	// the widest feature template to fit in a 64 bit key.
	ErrFeatureOverflow = errors.New("eisner: feature key exceeds 64 bits")

	// ErrEmptyCorpus is returned when a model is extracted from no sentences.
	ErrEmptyCorpus = errors.New("eisner: no training sentences")

	// ErrForeignParser is returned when training decodes with a parser built
	// over another model.
	ErrForeignParser = errors.New("eisner: parser does not use the trained model")
)
