// Package conll reads and writes CoNLL-X format files.
// For a description see http://ilk.uvt.nl/conll/#dataformat
package conll

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/andersjo/beta/alg/graph"
	nlp "github.com/andersjo/beta/nlp/types"
)

const (
	FIELD_SEPARATOR      = '\t'
	NUM_FIELDS           = 10
	FEATURES_SEPARATOR   = "|"
	FEATURE_SEPARATOR    = "="
	FEATURE_CONCAT_DELIM = ","

	MAX_LINE_LENGTH = 1 << 20
)

// ErrMalformedTree is returned for sentences whose heads do not point at a
// token of the sentence.
var ErrMalformedTree = errors.New("conll: malformed dependency tree")

var ReadOut bool = false

type Features map[string]string

func (f Features) String() string {
	return FormatFeatures(f)
}

func FormatFeatures(feat map[string]string) string {
	if len(feat) == 0 {
		return "_"
	}
	strs := make([]string, 0, len(feat))
	for k, v := range feat {
		strs = append(strs, fmt.Sprintf("%v%v%v", k, FEATURE_SEPARATOR, v))
	}
	sort.Strings(strs)
	return strings.Join(strs, FEATURES_SEPARATOR)
}

// A Row is a single parsed row of a conll data set
// PHEAD and PDEPREL are not in use
type Row struct {
	ID      int
	Form    string
	Lemma   string
	CPosTag string
	PosTag  string
	Feats   Features
	FeatStr string
	Head    int
	DepRel  string
}

func formatString(value string) string {
	if value == "" {
		return "_"
	}
	return value
}

func (r Row) String() string {
	feats := r.FeatStr
	if feats == "" {
		feats = FormatFeatures(r.Feats)
	}
	fields := []string{
		fmt.Sprintf("%d", r.ID),
		r.Form,
		formatString(r.Lemma),
		formatString(r.CPosTag),
		formatString(r.PosTag),
		feats,
		fmt.Sprintf("%d", r.Head),
		formatString(r.DepRel),
		"_",
		"_"}
	return strings.Join(fields, "\t")
}

// A Sentence is a map of Rows using their ids
type Sentence map[int]Row

type Sentences []Sentence

func ParseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	i, err := strconv.ParseInt(value, 10, 0)
	return int(i), err
}

func ParseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

func ParseFeatures(featuresStr string) (Features, error) {
	var featureMap Features
	if featuresStr == "_" {
		return featureMap, nil
	}

	featureList := strings.Split(featuresStr, FEATURES_SEPARATOR)
	featureMap = make(Features, len(featureList))
	for _, featureStr := range featureList {
		featureKV := strings.Split(featureStr, FEATURE_SEPARATOR)
		if len(featureKV) != 2 {
			return nil, errors.Errorf("wrong number of fields for split of feature %q", featureStr)
		}
		featName := featureKV[0]
		featValue := featureKV[1]
		existingFeatValue, featExist := featureMap[featName]
		if featExist {
			featureMap[featName] = existingFeatValue + FEATURE_CONCAT_DELIM + featValue
		} else {
			featureMap[featName] = featValue
		}
	}
	return featureMap, nil
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) < 8 {
		return row, errors.Errorf("expected %d fields, got %d", NUM_FIELDS, len(record))
	}
	id, err := ParseInt(record[0])
	if err != nil {
		return row, errors.Wrapf(err, "parsing ID field (%s)", record[0])
	}
	row.ID = id

	form := ParseString(record[1])
	if form == "" {
		return row, errors.New("empty FORM field")
	}
	row.Form = form

	row.Lemma = ParseString(record[2])

	cpostag := ParseString(record[3])
	if cpostag == "" {
		return row, errors.New("empty CPOSTAG field")
	}
	row.CPosTag = cpostag

	postag := ParseString(record[4])
	if postag == "" {
		return row, errors.New("empty POSTAG field")
	}
	row.PosTag = postag

	features, err := ParseFeatures(record[5])
	if err != nil {
		return row, errors.Wrapf(err, "parsing FEATS field (%s)", record[5])
	}
	row.Feats = features
	row.FeatStr = ParseString(record[5])

	head, err := ParseInt(record[6])
	if err != nil {
		return row, errors.Wrapf(err, "parsing HEAD field (%s)", record[6])
	}
	row.Head = head

	row.DepRel = ParseString(record[7])
	return row, nil
}

// Read reads at most limit sentences (all when limit <= 0). Sentences are
// separated by blank lines; lines starting with '#' are skipped.
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences Sentences
		line      int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 16384), MAX_LINE_LENGTH)

	currentSent := make(Sentence)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if len(text) == 0 {
			if len(currentSent) > 0 {
				sentences = append(sentences, currentSent)
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
				currentSent = make(Sentence)
			}
			continue
		}
		if text[0] == '#' {
			continue
		}
		record := strings.Split(text, string(FIELD_SEPARATOR))
		row, err := ParseRow(record)
		if err != nil {
			return nil, errors.Wrapf(err, "record at line %d of sentence %d", line, len(sentences))
		}
		if _, exists := currentSent[row.ID]; exists {
			return nil, errors.Errorf("duplicate ID %d at line %d", row.ID, line)
		}
		currentSent[row.ID] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failure reading conll")
	}
	if len(currentSent) > 0 {
		sentences = append(sentences, currentSent)
	}
	if ReadOut {
		log.Println("Read", len(sentences), "sentences")
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening conll file")
	}
	defer file.Close()

	sents, err := Read(file, limit)
	return sents, errors.Wrap(err, filename)
}

func Write(writer io.Writer, sents []Sentence) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for i := 1; i <= len(sent); i++ {
			row := sent[i]
			if _, err := bufWriter.WriteString(row.String() + "\n"); err != nil {
				return errors.Wrap(err, "writing conll")
			}
		}
		if err := bufWriter.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "writing conll")
		}
	}
	return errors.Wrap(bufWriter.Flush(), "writing conll")
}

func WriteFile(filename string, sents []Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating conll file")
	}
	defer file.Close()
	return Write(file, sents)
}

// Conll2Sentence converts rows 1..n of sent into a sentence preceded by the
// artificial root.
func Conll2Sentence(sent Sentence) (nlp.Sentence, error) {
	tokens := make([]nlp.Token, len(sent))
	for i := 1; i <= len(sent); i++ {
		row, exists := sent[i]
		if !exists {
			return nil, errors.Wrapf(ErrMalformedTree, "missing token %d of %d", i, len(sent))
		}
		tokens[i-1] = nlp.Token{
			Form:  row.Form,
			Lemma: row.Lemma,
			CPOS:  row.CPosTag,
			POS:   row.PosTag,
			Feats: row.FeatStr,
			Head:  row.Head,
			Label: nlp.DepRel(row.DepRel),
		}
	}
	converted := nlp.NewSentence(tokens...)
	if !graph.InRange(converted.Heads()) {
		return nil, errors.Wrapf(ErrMalformedTree, "heads %v", converted.Heads()[1:])
	}
	return converted, nil
}

func Conll2SentenceCorpus(corpus []Sentence) ([]nlp.Sentence, error) {
	sents := make([]nlp.Sentence, len(corpus))
	for i, sent := range corpus {
		converted, err := Conll2Sentence(sent)
		if err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
		sents[i] = converted
	}
	return sents, nil
}

// Sentence2Conll converts every token but the root into a row.
func Sentence2Conll(sent nlp.Sentence) Sentence {
	rows := make(Sentence, len(sent))
	for i := 1; i < len(sent); i++ {
		token := sent[i]
		rows[i] = Row{
			ID:      i,
			Form:    token.Form,
			Lemma:   token.Lemma,
			CPosTag: token.CPOS,
			PosTag:  token.POS,
			FeatStr: token.Feats,
			Head:    token.Head,
			DepRel:  string(token.Label),
		}
	}
	return rows
}

func Sentence2ConllCorpus(corpus []nlp.Sentence) []Sentence {
	sents := make([]Sentence, len(corpus))
	for i, sent := range corpus {
		sents[i] = Sentence2Conll(sent)
	}
	return sents
}

// NonProjective returns the indices of the sentences whose tree is not
// projective. Such trees can be trained on but never predicted.
func NonProjective(corpus []nlp.Sentence) []int {
	var indices []int
	for i, sent := range corpus {
		if !graph.IsProjective(sent.Heads()) {
			indices = append(indices, i)
		}
	}
	return indices
}
