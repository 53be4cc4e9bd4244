package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/crillab/cnfuzz/dimacs"
	"github.com/crillab/cnfuzz/gen"
	"github.com/crillab/cnfuzz/replay"
)

func newCheckCmd() *cobra.Command {
	var (
		doReplay    bool
		optionsPath string
	)
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check generated files are well-formed",
		Long: `Check that each file is a well-formed DIMACS or QDIMACS formula: the header
matches the clauses, literals are in range, no clause mentions a variable twice
and quantifier blocks do not overlap.

With --replay, each file is also regenerated from its seed and compared to the
stored text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); !ok || !isTerminal(f) {
				color.NoColor = true
			}
			var opts *gen.OptionFile
			if optionsPath != "" {
				var err error
				if opts, err = gen.ReadOptionFile(optionsPath); err != nil {
					return err
				}
			}
			nbFailed := 0
			for _, path := range args {
				if err := checkFile(out, path, doReplay, opts); err != nil {
					nbFailed++
					fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), path, err)
				} else {
					fmt.Fprintf(out, "%s %s\n", color.GreenString("OK"), path)
				}
			}
			if nbFailed > 0 {
				return errors.Errorf("%d of %d files failed", nbFailed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doReplay, "replay", false, "regenerate each file from its seed and compare")
	cmd.Flags().StringVar(&optionsPath, "options", "", "option file used to generate the files (with --replay)")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func checkFile(out io.Writer, path string, doReplay bool, opts *gen.OptionFile) error {
	pb, err := dimacs.ParseFile(path)
	if err != nil {
		return err
	}
	if err := pb.Validate(); err != nil {
		return err
	}
	if !doReplay {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	res, err := replay.Check(f, opts)
	if err != nil {
		return err
	}
	if !res.Equal {
		for _, line := range res.Lines() {
			if line[0] == '-' {
				fmt.Fprintln(out, color.RedString(line))
			} else {
				fmt.Fprintln(out, color.GreenString(line))
			}
		}
		return errors.Errorf("differs from the formula generated with seed %d", res.Seed)
	}
	return nil
}
