package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/cnfuzz/gen"
)

var (
	errMultipleSeeds       = errors.New("multiple seeds")
	errMultipleOptionFiles = errors.New("multiple option files")
	errNegativeSeed        = errors.New("negative seed")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if err := newRootCmd(log).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "*** cnfuzz: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var (
		qbf     bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "cnfuzz [-q] [<seed>] [<option-file>]",
		Short: "Generate a random CNF or QDIMACS formula",
		Long: `Generate a random CNF formula, or a quantified one in QDIMACS format with -q.

If <seed> is omitted it is derived from the process id and the time.
Each line "<opt> <value> <min> <max> [ignored...]" of <option-file> is fuzzed
and emitted as a "c --<opt>=<value>" comment.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseArgs(args)
			if err != nil {
				return err
			}
			cfg := gen.Config{Seed: inv.seed, QBF: qbf, Log: log}
			if !inv.hasSeed {
				cfg.Seed = defaultSeed()
			}
			if inv.optionFile != "" {
				// Read before writing anything, so that a bad file produces no formula.
				if cfg.Options, err = gen.ReadOptionFile(inv.optionFile); err != nil {
					return err
				}
			}
			f, err := gen.Generate(cfg)
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			if _, err := f.WriteTo(out); err != nil {
				return err
			}
			return out.Flush()
		},
	}
	cmd.Flags().BoolVarP(&qbf, "qbf", "q", false, "generate quantified CNF in QDIMACS format")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "sets verbose mode on")
	cmd.SetFlagErrorFunc(flagError)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newBatchCmd(log), newCheckCmd())
	return cmd
}

type invocation struct {
	seed       int64
	hasSeed    bool
	optionFile string
}

var digits = regexp.MustCompile(`^[0-9]+$`)

// parseArgs sorts positional arguments into a seed (only digits) and an option file (anything else).
func parseArgs(args []string) (invocation, error) {
	var inv invocation
	for _, arg := range args {
		switch {
		case digits.MatchString(arg):
			if inv.hasSeed {
				return inv, errMultipleSeeds
			}
			seed, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return inv, errors.Wrapf(gen.ErrSeedOverflow, "invalid seed %s", arg)
			}
			inv.seed, inv.hasSeed = seed, true
		case negativeInt.MatchString(arg):
			return inv, errors.Wrap(errNegativeSeed, arg)
		case inv.optionFile != "":
			return inv, errMultipleOptionFiles
		default:
			inv.optionFile = arg
		}
	}
	return inv, nil
}

var (
	negativeInt   = regexp.MustCompile(`^-[1-9][0-9]*$`)
	negativeShort = regexp.MustCompile(`in (-[1-9][0-9]*)$`)
)

// flagError reports "-5" as a negative seed rather than as an unknown flag.
func flagError(cmd *cobra.Command, err error) error {
	if m := negativeShort.FindStringSubmatch(err.Error()); m != nil {
		return errors.Wrap(errNegativeSeed, m[1])
	}
	return err
}

func defaultSeed() int64 {
	seed := (time.Now().Unix() * int64(os.Getpid())) >> 1
	if seed < 0 {
		seed = -seed
	}
	return seed
}
