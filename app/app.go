package app

import (
	"log"
	"os"
	"runtime"

	"github.com/gonuts/commander"
	"github.com/pkg/profile"
)

const (
	NUM_CPUS_FLAG = "cpus"
	PROFILE_FLAG  = "profile"
	CONLLU_FLAG   = "conllu"
)

var (
	CPUs       int
	profileArg string
)

var AppCommands []*commander.Command = []*commander.Command{
	TrainCmd(),
	ParseCmd(),
	EvalCmd(),
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine:   os.Args[0],
		Short:       "graph based dependency parser",
		Subcommands: AppCommands,
	}
	for _, app := range cmd.Subcommands {
		app.Run = NewAppWrapCommand(app.Run)
		app.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
		app.Flag.StringVar(&profileArg, PROFILE_FLAG, "", "Write a cpu or mem profile to the working directory")
		app.Flag.BoolVar(&useConllU, CONLLU_FLAG, false, "Read and write CoNLL-U instead of CoNLL-X")
	}
	return cmd
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs == 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

// startProfile starts the profiler named by the -profile flag. The returned
// stopper is never nil.
func startProfile() interface{ Stop() } {
	switch profileArg {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."))
	case "":
	default:
		log.Println("Unknown profile", profileArg, "ignored")
	}
	return noProfile{}
}

type noProfile struct{}

func (noProfile) Stop() {}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		defer startProfile().Stop()
		return f(cmd, args)
	}
	return wrapped
}
