package app

import (
	"fmt"
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/andersjo/beta/eval"
	"github.com/andersjo/beta/util"
)

const TOP_CONFUSIONS = 10

var showErrors bool

func EvalConfigOut() {
	log.Println("Data")
	log.Printf("Parsed result file:\t%s", input)
	log.Printf("Gold file:\t\t%s", inputGold)
}

func EvalParsed(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"p", "g"}); err != nil {
		return err
	}
	if allOut {
		EvalConfigOut()
	}
	parsed, err := ReadCorpus(input, 0)
	if err != nil {
		return err
	}
	gold, err := ReadCorpus(inputGold, 0)
	if err != nil {
		return err
	}
	score, err := eval.Evaluate(parsed, gold)
	if err != nil {
		return err
	}
	if showErrors {
		errs := score.Labeled.Errors()
		for _, byType := range util.GetTopNStrInt(errs.ByType(), 2) {
			log.Println(printer.Sprintf("%s errors: %d", byType.S, byType.N))
		}
		log.Println("Most frequent label confusions")
		for _, confusion := range util.GetTopNStrInt(eval.LabelConfusions(errs), TOP_CONFUSIONS) {
			log.Println(printer.Sprintf("\t%s\t%d", confusion.S, confusion.N))
		}
	}
	fmt.Println(score)
	return nil
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       EvalParsed,
		UsageLine: "eval <file options> [arguments]",
		Short:     "runs dependency eval",
		Long: `
compare parsed trees to gold trees (UAS, LAS and exact match)

	$ ./beta eval -p <conll> -g <conll> [options]

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "p", "", "Parse Result Conll File")
	cmd.Flag.StringVar(&inputGold, "g", "", "Gold Conll File")
	cmd.Flag.BoolVar(&showErrors, "errors", false, "Count errors by type")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose output")
	return cmd
}
