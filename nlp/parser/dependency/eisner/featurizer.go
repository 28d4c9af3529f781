package eisner

import (
	"fmt"

	"github.com/andersjo/beta/alg/featurevector"
	nlp "github.com/andersjo/beta/nlp/types"
)

// FeatureHandler receives every packed feature key of an edge.
type FeatureHandler func(key uint64)

type part = featurevector.Part

// EdgeFeaturizer produces the feature keys of candidate edges of a single
// sentence. Dictionary codes of every token and its neighbours are computed
// once at construction.
type EdgeFeaturizer struct {
	layout   *Layout
	extended bool

	form, tag, predTag, succTag     []uint64
	lemma, ctag, predCTag, succCTag []uint64
}

func NewEdgeFeaturizer(m *Model, sent nlp.Sentence) *EdgeFeaturizer {
	layout, err := m.Layout()
	if err != nil {
		panic(err.Error())
	}
	n := len(sent)
	f := &EdgeFeaturizer{
		layout:   layout,
		extended: m.Extended,
		form:     make([]uint64, n),
		tag:      make([]uint64, n),
	}
	for i, token := range sent {
		f.form[i] = code(m.CodeForForm(token.Form), layout.UnknownForm)
		f.tag[i] = code(m.CodeForFineTag(token.POS), layout.UnknownTag)
	}
	f.predTag, f.succTag = neighbours(f.tag, layout.BegTag, layout.EndTag)
	if f.extended {
		f.lemma = make([]uint64, n)
		f.ctag = make([]uint64, n)
		for i, token := range sent {
			f.lemma[i] = code(m.CodeForLemma(token.Lemma), layout.UnknownLemma)
			f.ctag[i] = code(m.CodeForCoarseTag(token.CPOS), layout.UnknownCTag)
		}
		f.predCTag, f.succCTag = neighbours(f.ctag, layout.BegCTag, layout.EndCTag)
	}
	return f
}

func code(c, unknown int) uint64 {
	if c < 0 {
		return uint64(unknown)
	}
	return uint64(c)
}

func neighbours(values []uint64, beg, end int) (pred, succ []uint64) {
	n := len(values)
	pred, succ = make([]uint64, n), make([]uint64, n)
	for i := range values {
		if i == 0 {
			pred[i] = uint64(beg)
		} else {
			pred[i] = values[i-1]
		}
		if i == n-1 {
			succ[i] = uint64(end)
		} else {
			succ[i] = values[i+1]
		}
	}
	return
}

// Len is the number of nodes of the featurized sentence.
func (f *EdgeFeaturizer) Len() int {
	return len(f.form)
}

func (f *EdgeFeaturizer) checkEdge(src, tgt int) {
	if src == tgt || src < 0 || tgt < 0 || src >= len(f.form) || tgt >= len(f.form) {
		panic(fmt.Sprintf("Invalid edge %d -> %d in sentence of length %d", src, tgt, len(f.form)))
	}
}

func (f *EdgeFeaturizer) templateID(id int) part {
	return part{Value: uint64(id), Bits: f.layout.Template}
}

// emit passes the backed-off key and the key with suffix appended. parts
// starts with the template id; the lowest bit of the packed id tells the two
// variants apart, so a zero suffix never collides with the backed-off key.
func emit(h FeatureHandler, suffix part, parts ...part) {
	parts[0].Value <<= 1
	h(featurevector.Pack(parts...))
	parts[0].Value |= 1
	h(featurevector.Pack(append(parts, suffix)...))
}

// Featurize emits every feature of the edge src -> tgt with the given label
// code: the core features of the pair and the labeled features of both
// endpoints.
func (f *EdgeFeaturizer) Featurize(src, tgt, label int, h FeatureHandler) {
	f.checkEdge(src, tgt)
	isRightArc := src < tgt
	if isRightArc {
		f.FeaturizeCore(src, tgt, true, h)
	} else {
		f.FeaturizeCore(tgt, src, false, h)
	}
	f.FeaturizeLabeled(tgt, label, isRightArc, true, h)
	f.FeaturizeLabeled(src, label, isRightArc, false, h)
}

// FeaturizeCore emits the label independent features of the pair fst < snd.
// isRightArc tells whether fst is the source.
func (f *EdgeFeaturizer) FeaturizeCore(fst, snd int, isRightArc bool, h FeatureHandler) {
	f.checkEdge(fst, snd)
	if fst > snd {
		panic(fmt.Sprintf("Core features expect fst < snd, got %d, %d", fst, snd))
	}
	dist := part{Value: uint64(DistanceBucket(snd-fst))<<1 | b2i(isRightArc), Bits: DistanceSuffixBits}
	src, tgt := fst, snd
	if !isRightArc {
		src, tgt = snd, fst
	}
	l := f.layout
	f.contextFamily(TagContextFamily, f.tag, f.predTag, f.succTag, l.Tag, uint64(l.MidTag), fst, snd, dist, h)
	f.pairFamily(FormTagFamily, f.form, l.Form, f.tag, l.Tag, src, tgt, dist, h)
	if f.extended {
		f.contextFamily(CoarseContextFamily, f.ctag, f.predCTag, f.succCTag, l.CoarseTag, uint64(l.MidCTag), fst, snd, dist, h)
		f.pairFamily(FormCoarseFamily, f.form, l.Form, f.ctag, l.CoarseTag, src, tgt, dist, h)
		f.pairFamily(LemmaTagFamily, f.lemma, l.Lemma, f.tag, l.Tag, src, tgt, dist, h)
		f.pairFamily(LemmaCoarseFamily, f.lemma, l.Lemma, f.ctag, l.CoarseTag, src, tgt, dist, h)
	}
}

// contextFamily emits templates over the tags of fst, snd, their
// neighbours and the tokens between them.
func (f *EdgeFeaturizer) contextFamily(offset int, x, pred, succ []uint64, bits uint, mid uint64, fst, snd int, dist part, h FeatureHandler) {
	fstT, sndT := part{x[fst], bits}, part{x[snd], bits}
	fstPred, sndSucc := part{pred[fst], bits}, part{succ[snd], bits}
	fstSucc, sndPred := part{mid, bits}, part{mid, bits}
	if fst < snd-1 {
		fstSucc = part{succ[fst], bits}
		sndPred = part{pred[snd], bits}
	}

	for k := fst + 1; k < snd; k++ {
		emit(h, dist, f.templateID(offset), fstT, sndT, part{x[k], bits})
	}
	emit(h, dist, f.templateID(offset+1), fstPred, fstT, sndT)
	emit(h, dist, f.templateID(offset+2), fstPred, fstT, sndT, sndSucc)
	emit(h, dist, f.templateID(offset+3), fstPred, sndT, sndSucc)
	emit(h, dist, f.templateID(offset+4), fstPred, fstT, sndSucc)
	emit(h, dist, f.templateID(offset+5), fstT, sndT, sndSucc)
	emit(h, dist, f.templateID(offset+6), fstT, fstSucc, sndPred)
	emit(h, dist, f.templateID(offset+7), fstT, fstSucc, sndPred, sndT)
	emit(h, dist, f.templateID(offset+8), fstT, fstSucc, sndT)
	emit(h, dist, f.templateID(offset+9), fstT, sndPred, sndT)
	emit(h, dist, f.templateID(offset+10), fstSucc, sndPred, sndT)
	emit(h, dist, f.templateID(offset+11), fstPred, fstT, sndPred, sndT)
	emit(h, dist, f.templateID(offset+12), fstT, fstSucc, sndT, sndSucc)
}

// pairFamily emits templates combining two attributes a and b of the
// source and target.
func (f *EdgeFeaturizer) pairFamily(offset int, a []uint64, aBits uint, b []uint64, bBits uint, src, tgt int, dist part, h FeatureHandler) {
	srcA, srcB := part{a[src], aBits}, part{b[src], bBits}
	tgtA, tgtB := part{a[tgt], aBits}, part{b[tgt], bBits}

	emit(h, dist, f.templateID(offset), srcA)
	emit(h, dist, f.templateID(offset+1), srcA, srcB)
	emit(h, dist, f.templateID(offset+2), srcA, srcB, tgtB)
	emit(h, dist, f.templateID(offset+3), srcA, srcB, tgtB, tgtA)
	emit(h, dist, f.templateID(offset+4), srcA, tgtA)
	emit(h, dist, f.templateID(offset+5), srcA, tgtB)
	emit(h, dist, f.templateID(offset+6), srcB, tgtA)
	emit(h, dist, f.templateID(offset+7), srcB, tgtA, tgtB)
	emit(h, dist, f.templateID(offset+8), srcB, tgtB)
	emit(h, dist, f.templateID(offset+9), tgtA, tgtB)
	emit(h, dist, f.templateID(offset+10), srcB)
	emit(h, dist, f.templateID(offset+11), tgtA)
	emit(h, dist, f.templateID(offset+12), tgtB)
}

// FeaturizeLabeled emits the features of node as one endpoint of an edge
// with the given label code. Negative codes stand for an unknown label.
func (f *EdgeFeaturizer) FeaturizeLabeled(node, label int, isRightArc, isTarget bool, h FeatureHandler) {
	if node < 0 || node >= len(f.form) {
		panic(fmt.Sprintf("Node %d out of range in sentence of length %d", node, len(f.form)))
	}
	l := f.layout
	suffix := part{Value: uint64(b2i(isTarget)<<1 | b2i(isRightArc)), Bits: LabeledSuffixBits}
	lab := part{code(label, l.UnknownLabel), l.Label}
	w := part{f.form[node], l.Form}
	t := part{f.tag[node], l.Tag}
	pred := part{f.predTag[node], l.Tag}
	succ := part{f.succTag[node], l.Tag}

	emit(h, suffix, f.templateID(LabeledFamily), lab)
	emit(h, suffix, f.templateID(LabeledFamily+1), w, t, lab)
	emit(h, suffix, f.templateID(LabeledFamily+2), t, lab)
	emit(h, suffix, f.templateID(LabeledFamily+3), pred, t, lab)
	emit(h, suffix, f.templateID(LabeledFamily+4), t, succ, lab)
	emit(h, suffix, f.templateID(LabeledFamily+5), pred, t, succ, lab)
	emit(h, suffix, f.templateID(LabeledFamily+6), w, lab)
}

func b2i(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// FeatureVectorOf collects the feature codes of every edge of sent as
// currently annotated. Keys unknown to the model are skipped.
func FeatureVectorOf(m *Model, sent nlp.Sentence) *featurevector.Vector {
	f := NewEdgeFeaturizer(m, sent)
	fv := featurevector.NewVector(len(sent) * 64)
	handler := func(key uint64) {
		fv.Increment(m.CodeForFeature(key))
	}
	for i := 1; i < len(sent); i++ {
		f.Featurize(sent[i].Head, i, m.CodeForLabel(sent[i].Label), handler)
	}
	return fv
}
