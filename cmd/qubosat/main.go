// Command qubosat reduces a k-SAT DIMACS CNF instance to QUBO, minimizes it
// with a chosen solver, and prints the SAT/UNSAT/UNKNOWN verdict — the CLI
// surface named in SPEC_FULL.md §6.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qubo-toolkit/qubosat"
	"github.com/qubo-toolkit/qubosat/internal/csvlog"
	"github.com/qubo-toolkit/qubosat/orchestrate"
	"github.com/qubo-toolkit/qubosat/reductions"
	"github.com/qubo-toolkit/qubosat/sat"
	"github.com/qubo-toolkit/qubosat/solvers"
)

// verboseCounter is a flag.Value counting how many times -v/--verbose was
// given; stdlib flag has no native repeat-count primitive, so this is a
// custom Value the way a teacher CLI would add one for a flag shape flag.Int
// can't express.
type verboseCounter int

func (v *verboseCounter) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verboseCounter) Set(string) error {
	*v++
	return nil
}
func (v *verboseCounter) IsBoolFlag() bool { return true }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("qubosat", flag.ContinueOnError)

	var quiet bool
	fs.BoolVar(&quiet, "q", false, "disable logging")
	fs.BoolVar(&quiet, "quiet", false, "disable logging")

	var verbose verboseCounter
	fs.Var(&verbose, "v", "repeatable; raises log level error->info->debug->trace")
	fs.Var(&verbose, "verbose", "repeatable; raises log level error->info->debug->trace")

	var logPath string
	fs.StringVar(&logPath, "l", "", "write per-iteration EnergyRecord rows to a CSV at PATH (must not exist)")
	fs.StringVar(&logPath, "log", "", "write per-iteration EnergyRecord rows to a CSV at PATH (must not exist)")

	var reducerName string
	fs.StringVar(&reducerName, "reducer", "chancellor", "chancellor|choi|nusslein|nusslein23")

	var solverName string
	fs.StringVar(&solverName, "solver", "parallel-exhaustive-search", "simulated-annealing|exhaustive-search|parallel-exhaustive-search|momentum-annealing|mopso (named but unimplemented, see --help)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	qubosat.SetVerbosity(quiet, int(verbose))

	in, err := openInput(fs.Args())
	if err != nil {
		qubosat.Logger.Error().Err(err).Msg("reading input")
		return 1
	}
	defer in.Close()

	problem, err := sat.ParseDIMACS(in)
	if err != nil {
		qubosat.Logger.Error().Err(qubosat.Wrap(qubosat.InputParse, err)).Msg("parsing DIMACS")
		return 1
	}

	reducer, err := selectReducer(reducerName)
	if err != nil {
		qubosat.Logger.Error().Err(err).Msg("selecting reducer")
		return 1
	}

	var csvWriter *csvlog.Writer
	if logPath != "" {
		csvWriter, err = csvlog.Create(logPath)
		if err != nil {
			qubosat.Logger.Error().Err(qubosat.Wrap(qubosat.InputIo, err)).Msg("opening CSV log")
			return 1
		}
		defer csvWriter.Close()
	}

	solver, err := selectSolver(solverName)
	if err != nil {
		qubosat.Logger.Error().Err(err).Msg("selecting solver")
		return 1
	}

	orch := orchestrate.New(reducer, solver, orchestrate.WithCSVWriter(csvWriter))
	solution, err := orch.Run(problem)
	if err != nil {
		qubosat.Logger.Error().Err(err).Msg("running pipeline")
		return 1
	}

	fmt.Println(solution.String())
	return 0
}

func openInput(positional []string) (*os.File, error) {
	if len(positional) == 0 {
		return os.Stdin, nil
	}
	f, err := os.Open(positional[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", positional[0], err)
	}
	return f, nil
}

func selectReducer(name string) (reductions.Reducer, error) {
	switch name {
	case "chancellor":
		return reductions.NewChancellor(), nil
	case "choi":
		return reductions.NewChoi(), nil
	case "nusslein":
		return reductions.NewNusslein(), nil
	case "nusslein23":
		return reductions.NewNusslein23(), nil
	default:
		return nil, fmt.Errorf("qubosat: unknown reducer %q", name)
	}
}

func selectSolver(name string) (orchestrate.Solver, error) {
	switch name {
	case "exhaustive-search":
		return solvers.NewExhaustive(), nil
	case "parallel-exhaustive-search":
		return solvers.NewParallelExhaustive(), nil
	case "simulated-annealing":
		return solvers.NewSimulatedAnnealer(), nil
	case "momentum-annealing":
		return solvers.NewMomentumAnnealer(), nil
	case "mopso":
		return nil, fmt.Errorf("qubosat: solver %q is named by the CLI contract but has no implementation yet (the reference multi-objective PSO solver never left stub status); pick one of simulated-annealing|exhaustive-search|parallel-exhaustive-search|momentum-annealing", name)
	default:
		return nil, fmt.Errorf("qubosat: unknown solver %q", name)
	}
}
