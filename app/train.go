package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"

	"github.com/andersjo/beta/alg/perceptron"
	"github.com/andersjo/beta/eval"
	"github.com/andersjo/beta/nlp/format/conll"
	"github.com/andersjo/beta/nlp/parser/dependency/eisner"
	nlp "github.com/andersjo/beta/nlp/types"
	"github.com/andersjo/beta/util/conf"
)

var training = conf.DefaultTraining()

func TrainConfigOut(settings *conf.Training) {
	log.Println("Configuration")
	log.Printf("Iterations:\t\t%d", settings.Iterations)
	log.Printf("Update rule:\t\t%s", settings.Rule)
	log.Printf("Aggressiveness:\t%v", settings.Aggressiveness)
	log.Printf("Extended features:\t%v", settings.Extended)
	log.Printf("Intermediate models:\t%v", settings.Intermediate)
	log.Printf("Limit:\t\t\t%d", settings.Limit)
	log.Printf("Model file:\t\t%s", modelFile)
	log.Println()
	log.Println("Data")
	log.Printf("Train file (conll):\t%s", input)
	if len(inputGold) > 0 {
		log.Printf("Dev file (conll):\t%s", inputGold)
	}
	if len(labelsFile) > 0 {
		log.Printf("Labels File:\t\t%s", labelsFile)
	}
}

// trainingSettings merges the configuration file, if any, with the flags
// explicitly set on the command line.
func trainingSettings(cmd *commander.Command) (*conf.Training, error) {
	settings := conf.DefaultTraining()
	if len(confFile) > 0 {
		var err error
		if settings, err = conf.ReadTrainingFile(confFile); err != nil {
			return nil, err
		}
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "it":
			settings.Iterations = training.Iterations
		case "rule":
			settings.Rule = training.Rule
		case "C":
			settings.Aggressiveness = training.Aggressiveness
		case "extended":
			settings.Extended = training.Extended
		case "intermediate":
			settings.Intermediate = training.Intermediate
		case "limit":
			settings.Limit = training.Limit
		case "workers":
			settings.Workers = training.Workers
		}
	})
	return settings, nil
}

func TrainModel(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "m"}); err != nil {
		return err
	}
	settings, err := trainingSettings(cmd)
	if err != nil {
		return err
	}
	rule, err := perceptron.RuleByName(settings.Rule, settings.Aggressiveness)
	if err != nil {
		return err
	}
	if allOut {
		TrainConfigOut(settings)
		log.Println()
	}

	sents, err := ReadCorpus(input, settings.Limit)
	if err != nil {
		return err
	}
	if nonProj := conll.NonProjective(sents); len(nonProj) > 0 {
		log.Println(printer.Sprintf("Warning: %d of %d training trees are not projective", len(nonProj), len(sents)))
	}
	var dev []nlp.Sentence
	if len(inputGold) > 0 {
		if dev, err = ReadCorpus(inputGold, 0); err != nil {
			return err
		}
	}

	var opts []eisner.ModelOption
	if settings.Extended {
		opts = append(opts, eisner.WithExtendedFeatures())
	}
	if len(labelsFile) > 0 {
		labels, err := conf.ReadFile(labelsFile)
		if err != nil {
			return errors.Wrap(err, "reading dependency labels")
		}
		opts = append(opts, eisner.WithLabels(labels.Values...))
	}

	startTime := time.Now()
	model, err := eisner.ExtractModel(sents, opts...)
	if err != nil {
		return err
	}
	if allOut {
		log.Println(printer.Sprintf("Extracted %d features in %v", model.NumFeatures(), time.Since(startTime)))
		log.Println(model)
		log.Println("Training", settings.Iterations, "iteration(s) with", rule)
	}

	snapshot := func(i int, averaged *eisner.Model) error {
		if len(dev) > 0 {
			score, err := evaluate(averaged, dev, settings.Workers)
			if err != nil {
				return err
			}
			log.Println("Dev", score)
		}
		if settings.Intermediate {
			return WriteModel(fmt.Sprintf("%s.%02d", modelFile, i+1), &Serialization{Model: averaged, Training: settings})
		}
		return nil
	}
	startTime = time.Now()
	if _, err := eisner.Train(model, eisner.NewParser(model), sents, settings.Iterations, rule, snapshot); err != nil {
		return err
	}
	if allOut {
		log.Println("TRAIN Total Time:", time.Since(startTime))
	}
	return WriteModel(modelFile, &Serialization{Model: model, Training: settings})
}

// evaluate parses unparsed copies of gold with m.
func evaluate(m *eisner.Model, gold []nlp.Sentence, workers int) (*eval.AttachmentScore, error) {
	parsed := make([]nlp.Sentence, len(gold))
	for i, sent := range gold {
		parsed[i] = sent.Unparsed()
	}
	eisner.NewParser(m).ParseAll(parsed, workers)
	return eval.Evaluate(parsed, gold)
}

func TrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       TrainModel,
		UsageLine: "train <file options> [arguments]",
		Short:     "train a dependency parsing model",
		Long: `
train a dependency parsing model from gold trees

	$ ./beta train -in <conll> -m <model> [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Training Conll File")
	cmd.Flag.StringVar(&inputGold, "dev", "", "Dev Conll File evaluated after every iteration")
	cmd.Flag.StringVar(&modelFile, "m", "", "Output Model File")
	cmd.Flag.StringVar(&confFile, "conf", "", "Training Configuration File (yaml)")
	cmd.Flag.StringVar(&labelsFile, "l", "", "Dependency Labels Configuration File")
	cmd.Flag.IntVar(&training.Iterations, "it", training.Iterations, "Number of Perceptron Iterations")
	cmd.Flag.StringVar(&training.Rule, "rule", training.Rule, "Update rule: perceptron or pa")
	cmd.Flag.Float64Var(&training.Aggressiveness, "C", training.Aggressiveness, "Passive-aggressive aggressiveness")
	cmd.Flag.BoolVar(&training.Extended, "extended", false, "Use the extended (coarse tag and lemma) feature set")
	cmd.Flag.BoolVar(&training.Intermediate, "intermediate", false, "Write a model after every iteration")
	cmd.Flag.IntVar(&training.Limit, "limit", 0, "Limit training set")
	cmd.Flag.IntVar(&training.Workers, "workers", 0, "Parsing goroutines for dev evaluation; 0 = one per CPU")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose output")
	cmd.Flag.BoolVar(&eisner.AllOut, "vv", false, "Log extraction and per iteration statistics")
	return cmd
}
