// Package conllu reads and writes CoNLL-U format files.
// Multiword token rows and empty nodes are kept aside; only syntactic words
// take part in the tree. For a description see
// https://universaldependencies.org/format.html
package conllu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/andersjo/beta/alg/graph"
	"github.com/andersjo/beta/nlp/format/conll"
	nlp "github.com/andersjo/beta/nlp/types"
)

const (
	FIELD_SEPARATOR = '\t'
	NUM_FIELDS      = 10
	MAX_LINE_LENGTH = 1 << 20
)

// A Row is a single parsed row of a conllu data set
type Row struct {
	ID      int
	Form    string
	Lemma   string
	UPosTag string
	XPosTag string
	Feats   conll.Features
	FeatStr string
	Head    int
	DepRel  string
	Deps    string
	Misc    string
}

func (r Row) String() string {
	fields := []string{
		fmt.Sprintf("%d", r.ID),
		r.Form,
		r.Lemma,
		r.UPosTag,
		r.XPosTag,
		r.FeatStr,
		fmt.Sprintf("%d", r.Head),
		r.DepRel,
		r.Deps,
		r.Misc,
	}
	for i, field := range fields {
		if len(field) == 0 {
			fields[i] = "_"
		}
	}
	return strings.Join(fields, "\t")
}

// A Sentence is a map of syntactic word Rows using their ids, plus the
// surface token rows and comments.
type Sentence struct {
	Deps     map[int]Row
	Tokens   []string
	Comments []string
}

func NewSentence() *Sentence {
	return &Sentence{
		Deps:     make(map[int]Row),
		Comments: make([]string, 0, 2),
	}
}

type Sentences []*Sentence

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != NUM_FIELDS {
		return row, errors.Errorf("expected %d fields, got %d", NUM_FIELDS, len(record))
	}
	id, err := conll.ParseInt(record[0])
	if err != nil {
		return row, errors.Wrapf(err, "parsing ID field (%s)", record[0])
	}
	row.ID = id

	row.UPosTag = conll.ParseString(record[3])
	row.XPosTag = conll.ParseString(record[4])
	if row.UPosTag == "" && row.XPosTag == "" {
		return row, errors.New("empty UPOS and XPOS fields")
	}
	if row.UPosTag != "SYM" && row.UPosTag != "PUNCT" {
		row.Form = conll.ParseString(record[1])
	} else {
		// symbols are taken as is, "_" included
		row.Form = record[1]
	}
	if row.Form == "" {
		return row, errors.New("empty FORM field")
	}
	row.Lemma = conll.ParseString(record[2])

	features, err := conll.ParseFeatures(record[5])
	if err != nil {
		return row, errors.Wrapf(err, "parsing FEATS field (%s)", record[5])
	}
	row.Feats = features
	row.FeatStr = conll.ParseString(record[5])

	head, err := conll.ParseInt(record[6])
	if err != nil {
		return row, errors.Wrapf(err, "parsing HEAD field (%s)", record[6])
	}
	row.Head = head
	row.DepRel = conll.ParseString(record[7])
	row.Deps = conll.ParseString(record[8])
	row.Misc = conll.ParseString(record[9])
	return row, nil
}

// ParseTokenRow parses a multiword token row, returning the surface token
// and the number of syntactic words it spans.
func ParseTokenRow(record []string) (string, int, error) {
	token := conll.ParseString(record[1])
	if token == "" {
		return token, 0, errors.New("empty TOKEN field for token row")
	}
	ids := strings.Split(record[0], "-")
	if len(ids) != 2 {
		return token, 0, errors.Errorf("ID span (%s) should be <num>-<num>", record[0])
	}
	id1, err := conll.ParseInt(ids[0])
	if err != nil {
		return token, 0, errors.Wrapf(err, "parsing ID span (%s)", record[0])
	}
	id2, err := conll.ParseInt(ids[1])
	if err != nil {
		return token, 0, errors.Wrapf(err, "parsing ID span (%s)", record[0])
	}
	if !(id2-id1 > 0) {
		return token, 0, errors.Errorf("ID span (%s) is empty", record[0])
	}
	return token, id2 - id1 + 1, nil
}

// Read reads at most limit sentences (all when limit <= 0).
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences Sentences
		line      int
		numForms  int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 16384), MAX_LINE_LENGTH)

	currentSent := NewSentence()
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if len(text) == 0 {
			if len(currentSent.Deps) > 0 {
				sentences = append(sentences, currentSent)
				if limit > 0 && len(sentences) >= limit {
					return sentences, nil
				}
			}
			currentSent = NewSentence()
			numForms = 0
			continue
		}
		// '#' is a start of comment for CONLL-U
		if text[0] == '#' {
			currentSent.Comments = append(currentSent.Comments, text)
			continue
		}
		record := strings.Split(text, string(FIELD_SEPARATOR))
		if len(record) != NUM_FIELDS {
			return nil, errors.Errorf("expected %d fields, got %d at line %d", NUM_FIELDS, len(record), line)
		}
		switch {
		case strings.Contains(record[0], "."):
			// empty node of the enhanced graph
			continue
		case strings.Contains(record[0], "-"):
			token, forms, err := ParseTokenRow(record)
			if err != nil {
				return nil, errors.Wrapf(err, "token row at line %d", line)
			}
			currentSent.Tokens = append(currentSent.Tokens, token)
			numForms = forms
		default:
			row, err := ParseRow(record)
			if err != nil {
				return nil, errors.Wrapf(err, "record at line %d", line)
			}
			if _, exists := currentSent.Deps[row.ID]; exists {
				return nil, errors.Errorf("duplicate ID %d at line %d", row.ID, line)
			}
			if numForms > 0 {
				numForms--
			} else {
				currentSent.Tokens = append(currentSent.Tokens, row.Form)
			}
			currentSent.Deps[row.ID] = row
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failure reading conllu")
	}
	if len(currentSent.Deps) > 0 {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening conllu file")
	}
	defer file.Close()

	sents, err := Read(file, limit)
	return sents, errors.Wrap(err, filename)
}

// ConllU2Sentence converts the syntactic words of sent into a sentence
// preceded by the artificial root. The universal tag becomes the coarse
// tag; the language specific tag, when present, the fine tag.
func ConllU2Sentence(sent *Sentence) (nlp.Sentence, error) {
	tokens := make([]nlp.Token, len(sent.Deps))
	for i := 1; i <= len(sent.Deps); i++ {
		row, exists := sent.Deps[i]
		if !exists {
			return nil, errors.Wrapf(conll.ErrMalformedTree, "missing word %d of %d", i, len(sent.Deps))
		}
		pos := row.XPosTag
		if pos == "" {
			pos = row.UPosTag
		}
		cpos := row.UPosTag
		if cpos == "" {
			cpos = pos
		}
		tokens[i-1] = nlp.Token{
			Form:  row.Form,
			Lemma: row.Lemma,
			CPOS:  cpos,
			POS:   pos,
			Feats: row.FeatStr,
			Head:  row.Head,
			Label: nlp.DepRel(row.DepRel),
		}
	}
	converted := nlp.NewSentence(tokens...)
	if !graph.InRange(converted.Heads()) {
		return nil, errors.Wrapf(conll.ErrMalformedTree, "heads %v", converted.Heads()[1:])
	}
	return converted, nil
}

func ConllU2SentenceCorpus(corpus Sentences) ([]nlp.Sentence, error) {
	sents := make([]nlp.Sentence, len(corpus))
	for i, sent := range corpus {
		converted, err := ConllU2Sentence(sent)
		if err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
		sents[i] = converted
	}
	return sents, nil
}

// Write writes the syntactic words of sents.
func Write(writer io.Writer, sents []nlp.Sentence) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for i := 1; i < len(sent); i++ {
			token := sent[i]
			row := Row{
				ID:      i,
				Form:    token.Form,
				Lemma:   token.Lemma,
				UPosTag: token.CPOS,
				XPosTag: token.POS,
				FeatStr: token.Feats,
				Head:    token.Head,
				DepRel:  string(token.Label),
			}
			if _, err := bufWriter.WriteString(row.String() + "\n"); err != nil {
				return errors.Wrap(err, "writing conllu")
			}
		}
		if err := bufWriter.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "writing conllu")
		}
	}
	return errors.Wrap(bufWriter.Flush(), "writing conllu")
}

func WriteFile(filename string, sents []nlp.Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating conllu file")
	}
	defer file.Close()
	return Write(file, sents)
}
