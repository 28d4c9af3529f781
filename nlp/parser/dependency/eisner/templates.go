package eisner

import (
	"github.com/pkg/errors"

	"github.com/andersjo/beta/util"
)

// Template ids. Each family occupies a contiguous block of ids.
const (
	TagContextFamily    = 0  // 13 templates over fine tags and their neighbours
	FormTagFamily       = 13 // 13 templates over source/target form and fine tag
	LabeledFamily       = 26 // 7 templates over a single node and the label
	CoarseContextFamily = 33 // 13 templates over coarse tags and their neighbours
	FormCoarseFamily    = 46
	LemmaTagFamily      = 59
	LemmaCoarseFamily   = 72

	ContextFamilySize = 13
	PairFamilySize    = 13
	LabeledFamilySize = 7

	NumBaseTemplates     = 33
	NumExtendedTemplates = 85
)

const (
	// distance bucket (3 bits) and direction
	DistanceSuffixBits = 4
	// isTarget and direction
	LabeledSuffixBits = 2
)

// Distance breakpoints; bucket i holds distances d with
// DistanceLimits[i] <= d < DistanceLimits[i+1].
var DistanceLimits = [...]int{1, 2, 3, 4, 5, 6, 11}

// Layout is the bit width of every feature key field, derived from the
// frozen dictionary sizes. Each dictionary gets one extra slot for unknown
// values; tag dictionaries get three more for the BEG, END and MID
// sentinels.
type Layout struct {
	Template, Form, Lemma, Tag, CoarseTag, Label uint

	NumTemplates int

	UnknownForm, UnknownLemma, UnknownLabel int
	UnknownTag, BegTag, EndTag, MidTag      int
	UnknownCTag, BegCTag, EndCTag, MidCTag  int
}

func NewLayout(m *Model) (*Layout, error) {
	l := &Layout{
		NumTemplates: NumBaseTemplates,

		UnknownForm:  m.NumForms(),
		UnknownLemma: m.NumLemmas(),
		UnknownLabel: m.NumLabels(),

		UnknownTag: m.NumFineTags(),
		BegTag:     m.NumFineTags() + 1,
		EndTag:     m.NumFineTags() + 2,
		MidTag:     m.NumFineTags() + 3,

		UnknownCTag: m.NumCoarseTags(),
		BegCTag:     m.NumCoarseTags() + 1,
		EndCTag:     m.NumCoarseTags() + 2,
		MidCTag:     m.NumCoarseTags() + 3,
	}
	if m.Extended {
		l.NumTemplates = NumExtendedTemplates
	}
	// backed-off and suffixed variant of every template
	l.Template = util.BitsFor(2 * l.NumTemplates)
	l.Form = util.BitsFor(m.NumForms() + 1)
	l.Lemma = util.BitsFor(m.NumLemmas() + 1)
	l.Tag = util.BitsFor(m.NumFineTags() + 4)
	l.CoarseTag = util.BitsFor(m.NumCoarseTags() + 4)
	l.Label = util.BitsFor(m.NumLabels() + 1)

	if width := l.Template + l.Widest(m.Extended); width > 64 {
		return nil, errors.Wrapf(ErrFeatureOverflow,
			"%d bits needed (template %d, form %d, lemma %d, tag %d, ctag %d, label %d)",
			width, l.Template, l.Form, l.Lemma, l.Tag, l.CoarseTag, l.Label)
	}
	return l, nil
}

// Widest is the width in bits of the largest template, excluding the
// template id.
func (l *Layout) Widest(extended bool) uint {
	widths := []uint{
		// pred_fst, fst, pred_snd, snd + distance
		4*l.Tag + DistanceSuffixBits,
		// src form, src tag, tgt tag, tgt form + distance
		2*l.Form + 2*l.Tag + DistanceSuffixBits,
		// pred, tag, succ, label + suffix
		3*l.Tag + l.Label + LabeledSuffixBits,
		// form, tag, label + suffix
		l.Form + l.Tag + l.Label + LabeledSuffixBits,
	}
	if extended {
		widths = append(widths,
			4*l.CoarseTag+DistanceSuffixBits,
			2*l.Form+2*l.CoarseTag+DistanceSuffixBits,
			2*l.Lemma+2*l.Tag+DistanceSuffixBits,
			2*l.Lemma+2*l.CoarseTag+DistanceSuffixBits,
		)
	}
	var widest uint
	for _, w := range widths {
		if w > widest {
			widest = w
		}
	}
	return widest
}

// DistanceBucket quantizes the distance between two nodes.
func DistanceBucket(d int) int {
	for i := len(DistanceLimits) - 1; i > 0; i-- {
		if d >= DistanceLimits[i] {
			return i
		}
	}
	return 0
}
