package eisner

import (
	"fmt"

	"github.com/andersjo/beta/alg/featurevector"
	nlp "github.com/andersjo/beta/nlp/types"
	"github.com/andersjo/beta/util"
)

const (
	APPROX_FORMS, APPROX_TAGS, APPROX_LABELS = 1000, 64, 64
	APPROX_FEATURES                          = 100000
)

// Model holds the dictionaries, the feature index and the weight vector of
// a parser. The label table always starts with the default label.
type Model struct {
	Forms      *util.StringTable
	Lemmas     *util.StringTable
	CoarseTags *util.StringTable
	FineTags   *util.StringTable
	Labels     *util.StringTable

	Features *featurevector.Index
	Weights  []float64

	// Extended enables the coarse tag and lemma template families
	Extended bool
}

type ModelOption func(*Model)

// WithExtendedFeatures turns on the coarse tag and lemma template families.
func WithExtendedFeatures() ModelOption {
	return func(m *Model) {
		m.Extended = true
	}
}

// WithLabels adds labels in order after the default label, so that their
// codes do not depend on the training data.
func WithLabels(labels ...string) ModelOption {
	return func(m *Model) {
		for _, label := range labels {
			m.Labels.Add(label)
		}
	}
}

func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		Forms:      util.NewStringTable(APPROX_FORMS),
		Lemmas:     util.NewStringTable(APPROX_FORMS),
		CoarseTags: util.NewStringTable(APPROX_TAGS),
		FineTags:   util.NewStringTable(APPROX_TAGS),
		Labels:     util.NewStringTable(APPROX_LABELS),
		Features:   featurevector.NewIndex(APPROX_FEATURES),
	}
	m.Labels.Add(nlp.ROOT_LABEL)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) AddForm(form string) int           { return m.Forms.Add(form) }
func (m *Model) AddLemma(lemma string) int         { return m.Lemmas.Add(lemma) }
func (m *Model) AddCoarseTag(tag string) int       { return m.CoarseTags.Add(tag) }
func (m *Model) AddFineTag(tag string) int         { return m.FineTags.Add(tag) }
func (m *Model) AddLabel(label nlp.DepRel) int     { return m.Labels.Add(string(label)) }
func (m *Model) AddFeature(key uint64) int         { return m.Features.Add(key) }
func (m *Model) CodeForForm(form string) int       { return m.Forms.IndexOf(form) }
func (m *Model) CodeForLemma(lemma string) int     { return m.Lemmas.IndexOf(lemma) }
func (m *Model) CodeForCoarseTag(tag string) int   { return m.CoarseTags.IndexOf(tag) }
func (m *Model) CodeForFineTag(tag string) int     { return m.FineTags.IndexOf(tag) }
func (m *Model) CodeForLabel(label nlp.DepRel) int { return m.Labels.IndexOf(string(label)) }
func (m *Model) CodeForFeature(key uint64) int     { return m.Features.Get(key) }
func (m *Model) FormForCode(code int) string       { return m.Forms.ValueOf(code) }
func (m *Model) LemmaForCode(code int) string      { return m.Lemmas.ValueOf(code) }
func (m *Model) CoarseTagForCode(code int) string  { return m.CoarseTags.ValueOf(code) }
func (m *Model) FineTagForCode(code int) string    { return m.FineTags.ValueOf(code) }
func (m *Model) LabelForCode(code int) nlp.DepRel  { return nlp.DepRel(m.Labels.ValueOf(code)) }
func (m *Model) NumForms() int                     { return m.Forms.Len() }
func (m *Model) NumLemmas() int                    { return m.Lemmas.Len() }
func (m *Model) NumCoarseTags() int                { return m.CoarseTags.Len() }
func (m *Model) NumFineTags() int                  { return m.FineTags.Len() }
func (m *Model) NumLabels() int                    { return m.Labels.Len() }
func (m *Model) NumFeatures() int                  { return m.Features.Len() }

func (m *Model) DefaultLabel() nlp.DepRel {
	return nlp.ROOT_LABEL
}

func (m *Model) CodeForDefaultLabel() int {
	return m.CodeForLabel(m.DefaultLabel())
}

func (m *Model) WeightVector() []float64 {
	return m.Weights
}

func (m *Model) SetWeightVector(weights []float64) {
	if len(weights) != m.NumFeatures() {
		panic(fmt.Sprintf("Weight vector length %d does not match %d features", len(weights), m.NumFeatures()))
	}
	m.Weights = weights
}

// ClearWeightVector resets the weights to zero, one per known feature.
func (m *Model) ClearWeightVector() {
	m.Weights = make([]float64, m.NumFeatures())
}

// Freeze stops every dictionary and the feature index from growing.
func (m *Model) Freeze() {
	m.freezeDictionaries()
	m.Features.Freeze()
}

func (m *Model) freezeDictionaries() {
	m.Forms.Freeze()
	m.Lemmas.Freeze()
	m.CoarseTags.Freeze()
	m.FineTags.Freeze()
	m.Labels.Freeze()
}

// Snapshot returns a model sharing the dictionaries and feature index of m
// with its own copy of weights.
func (m *Model) Snapshot(weights []float64) *Model {
	snapshot := *m
	snapshot.Weights = make([]float64, len(weights))
	copy(snapshot.Weights, weights)
	return &snapshot
}

// Layout computes the bit widths of the feature key fields for the current
// dictionary sizes.
func (m *Model) Layout() (*Layout, error) {
	return NewLayout(m)
}

func (m *Model) String() string {
	return fmt.Sprintf("Forms: %d Lemmas: %d CTags: %d Tags: %d Labels: %d Features: %d Extended: %v",
		m.NumForms(), m.NumLemmas(), m.NumCoarseTags(), m.NumFineTags(), m.NumLabels(), m.NumFeatures(), m.Extended)
}
