package eisner

import (
	"log"

	"github.com/pkg/errors"

	nlp "github.com/andersjo/beta/nlp/types"
)

var AllOut bool = false

// ExtractModel builds a model from gold sentences. The first pass fills the
// dictionaries, which are then frozen so that every feature key is packed
// with the same field widths. The second pass registers the features of
// every gold edge. The returned model is frozen with a zero weight vector.
func ExtractModel(sents []nlp.Sentence, opts ...ModelOption) (*Model, error) {
	if len(sents) == 0 {
		return nil, ErrEmptyCorpus
	}
	m := NewModel(opts...)
	for _, sent := range sents {
		m.AddDictionaries(sent)
	}
	m.freezeDictionaries()
	if _, err := m.Layout(); err != nil {
		return nil, errors.Wrap(err, "extracting model")
	}
	if AllOut {
		log.Println("Dictionaries", m)
	}
	for i, sent := range sents {
		if err := m.AddFeatures(sent); err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
	}
	m.Freeze()
	m.ClearWeightVector()
	if AllOut {
		log.Println("Extracted", m.NumFeatures(), "features from", len(sents), "sentences")
	}
	return m, nil
}

// AddDictionaries adds the forms, lemmas and tags of every token of sent and
// the labels of every non-root token.
func (m *Model) AddDictionaries(sent nlp.Sentence) {
	for i, token := range sent {
		m.AddForm(token.Form)
		m.AddLemma(token.Lemma)
		m.AddCoarseTag(token.CPOS)
		m.AddFineTag(token.POS)
		if i > 0 {
			m.AddLabel(token.Label)
		}
	}
}

// AddFeatures registers the features of every gold edge of sent.
func (m *Model) AddFeatures(sent nlp.Sentence) error {
	for i := 1; i < len(sent); i++ {
		if head := sent[i].Head; head < 0 || head >= len(sent) || head == i {
			return errors.Errorf("token %d has invalid head %d", i, head)
		}
	}
	f := NewEdgeFeaturizer(m, sent)
	handler := func(key uint64) {
		m.AddFeature(key)
	}
	for i := 1; i < len(sent); i++ {
		f.Featurize(sent[i].Head, i, m.CodeForLabel(sent[i].Label), handler)
	}
	return nil
}
