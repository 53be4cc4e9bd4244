// Package replay checks that a generated formula can be reproduced from its seed.
package replay

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/crillab/cnfuzz/dimacs"
	"github.com/crillab/cnfuzz/gen"
)

// ErrNoSeed is returned when a file carries no "c seed" comment.
var ErrNoSeed = errors.New("no seed comment")

// ErrMissingOptions is returned when a file was generated with an option file
// that was not provided for the replay.
var ErrMissingOptions = errors.New("formula was generated with an option file")

// A Result is the outcome of a replay.
type Result struct {
	Seed  int64
	QBF   bool
	Equal bool
	Diffs []diffmatchpatch.Diff // Line diff from the stored text to the regenerated one
}

// Lines returns the differing lines, prefixed by "-" when only in the stored
// text and by "+" when only in the regenerated one.
func (res *Result) Lines() []string {
	var lines []string
	for _, d := range res.Diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				lines = append(lines, prefix+strings.TrimSuffix(line, "\n"))
			}
		}
	}
	return lines
}

// Check regenerates the formula read from r and compares both texts.
// opts must be the option file used for the original run, or nil if there was none.
func Check(r io.Reader, opts *gen.OptionFile) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read formula")
	}
	stored := string(raw)
	pb, err := dimacs.Parse(strings.NewReader(stored))
	if err != nil {
		return nil, err
	}
	res, err := settings(pb)
	if err != nil {
		return nil, err
	}
	if opts == nil && usedOptions(pb) {
		return nil, ErrMissingOptions
	}
	f, err := gen.Generate(gen.Config{Seed: res.Seed, QBF: res.QBF, Options: opts})
	if err != nil {
		return nil, err
	}
	regenerated := f.CNF()
	res.Equal = stored == regenerated
	if !res.Equal {
		res.Diffs = lineDiff(stored, regenerated)
	}
	return res, nil
}

func settings(pb *dimacs.Problem) (*Result, error) {
	val, ok := pb.Comment("seed")
	if !ok {
		return nil, ErrNoSeed
	}
	seed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(gen.ErrSeedOverflow, "%q", val)
	}
	_, qbf := pb.Comment("qbf")
	return &Result{Seed: seed, QBF: qbf}, nil
}

func usedOptions(pb *dimacs.Problem) bool {
	for _, c := range pb.Comments {
		if strings.HasSuffix(c, " ospread") {
			return true
		}
	}
	return false
}

func lineDiff(from, to string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}
