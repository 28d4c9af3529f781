package app

import (
	"compress/gzip"
	"encoding/gob"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andersjo/beta/nlp/format/conll"
	"github.com/andersjo/beta/nlp/format/conllu"
	"github.com/andersjo/beta/nlp/parser/dependency/eisner"
	nlp "github.com/andersjo/beta/nlp/types"
	"github.com/andersjo/beta/util"
	"github.com/andersjo/beta/util/conf"
)

func init() {
	gob.Register(&Serialization{})
}

var (
	allOut    bool = true
	useConllU bool

	// file names
	input      string
	inputGold  string
	outConll   string
	modelFile  string
	confFile   string
	labelsFile string

	printer = message.NewPrinter(language.English)
)

// Serialization is the on disk form of a trained model.
type Serialization struct {
	Model    *eisner.Model
	Training *conf.Training
}

// WriteModel writes data gob encoded and gzip compressed to file.
func WriteModel(file string, data *Serialization) error {
	fObj, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "creating model file %s", file)
	}
	defer fObj.Close()
	compressed := gzip.NewWriter(fObj)
	if err := gob.NewEncoder(compressed).Encode(data); err != nil {
		return errors.Wrapf(err, "encoding model to %s", file)
	}
	if err := compressed.Close(); err != nil {
		return errors.Wrapf(err, "compressing model to %s", file)
	}
	if err := fObj.Close(); err != nil {
		return errors.Wrapf(err, "closing model file %s", file)
	}
	if allOut {
		if sum, err := util.MD5File(file); err == nil {
			log.Println("Wrote model", file, "md5", sum)
		}
	}
	return nil
}

func ReadModel(file string) (*Serialization, error) {
	fObj, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model file %s", file)
	}
	defer fObj.Close()
	compressed, err := gzip.NewReader(fObj)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model from %s", file)
	}
	defer compressed.Close()
	data := &Serialization{}
	if err := gob.NewDecoder(compressed).Decode(data); err != nil {
		return nil, errors.Wrapf(err, "decoding model from %s", file)
	}
	if data.Model == nil {
		return nil, errors.Errorf("no model in %s", file)
	}
	if len(data.Model.Weights) != data.Model.NumFeatures() {
		return nil, errors.Errorf("model in %s has %d weights for %d features", file, len(data.Model.Weights), data.Model.NumFeatures())
	}
	return data, nil
}

// VerifyFlags checks that every required flag is set.
func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return errors.Errorf("required flag %s not set", flag)
		}
	}
	return nil
}

// ReadCorpus reads up to limit sentences of a CoNLL, or with -conllu a
// CoNLL-U, file.
func ReadCorpus(filename string, limit int) ([]nlp.Sentence, error) {
	var (
		sents []nlp.Sentence
		err   error
	)
	if useConllU {
		var rows conllu.Sentences
		if rows, err = conllu.ReadFile(filename, limit); err != nil {
			return nil, err
		}
		sents, err = conllu.ConllU2SentenceCorpus(rows)
	} else {
		var rows conll.Sentences
		if rows, err = conll.ReadFile(filename, limit); err != nil {
			return nil, err
		}
		sents, err = conll.Conll2SentenceCorpus(rows)
	}
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	if allOut {
		log.Println(printer.Sprintf("Read %d sentences from %s", len(sents), filename))
	}
	return sents, nil
}

// WriteCorpus writes sents in the format ReadCorpus reads.
func WriteCorpus(filename string, sents []nlp.Sentence) error {
	if useConllU {
		return conllu.WriteFile(filename, sents)
	}
	return conll.WriteFile(filename, conll.Sentence2ConllCorpus(sents))
}
