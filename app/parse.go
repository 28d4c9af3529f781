package app

import (
	"log"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/andersjo/beta/nlp/parser/dependency"
	"github.com/andersjo/beta/nlp/parser/dependency/eisner"
	"github.com/andersjo/beta/util"
)

var (
	parseLimit   int
	parseWorkers int
)

func ParseConfigOut() {
	log.Println("Configuration")
	log.Printf("Model file:\t\t%s", modelFile)
	log.Printf("Workers:\t\t%d", parseWorkers)
	log.Println()
	log.Println("Data")
	log.Printf("Input file (conll):\t%s", input)
	log.Printf("Out (conll) file:\t%s", outConll)
}

func ParseSentences(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "m", "oc"}); err != nil {
		return err
	}
	if allOut {
		ParseConfigOut()
		log.Println()
	}
	data, err := ReadModel(modelFile)
	if err != nil {
		return err
	}
	model := data.Model
	model.Freeze()
	if allOut {
		log.Println("Loaded", model)
		util.LogMemory()
	}

	sents, err := ReadCorpus(input, parseLimit)
	if err != nil {
		return err
	}
	var parser dependency.DependencyParser = eisner.NewParser(model)
	startTime := time.Now()
	dependency.ParseAll(parser, sents, parseWorkers)
	if allOut {
		log.Println(printer.Sprintf("Parsed %d sentences in %v", len(sents), time.Since(startTime)))
	}
	return WriteCorpus(outConll, sents)
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ParseSentences,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parse sentences with a trained model",
		Long: `
parse POS tagged sentences with a trained model

	$ ./beta parse -in <conll> -m <model> -oc <conll> [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Input Conll File (head and label columns are ignored)")
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&outConll, "oc", "", "Output Conll File")
	cmd.Flag.IntVar(&parseLimit, "limit", 0, "Limit input set")
	cmd.Flag.IntVar(&parseWorkers, "workers", 0, "Parsing goroutines; 0 = one per CPU")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose output")
	return cmd
}
